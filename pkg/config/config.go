package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (env vars via Viper, arquivo .env opcional).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Storage StorageConfig
	Orders  OrdersConfig
	Seed    SeedConfig
}

// AppConfig configuração geral.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Company  string // cabeçalho dos relatórios
	LogLevel string
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio é usado como connection string completa.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString DATABASE_URL se definido, senão o DSN montado.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN connection string com a senha codificada (caracteres especiais).
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig Redis é opcional: Addr vazio desliga publicação e trava de idempotência.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// StorageConfig driver de persistência: postgres ou memory.
type StorageConfig struct {
	Driver string
}

// OrdersConfig numeração das ordens de saída.
type OrdersConfig struct {
	NumberPrefix string
}

// SeedConfig administrador inicial criado pelo cmd/seed (e no boot com STORAGE_DRIVER=memory).
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func (c SeedConfig) Enabled() bool { return c.AdminEmail != "" && c.AdminPassword != "" }

// Load lê a configuração. Variáveis de ambiente têm prioridade sobre os arquivos.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // arquivo opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "estoque-tarugos"),
			Company:  getString(v, "APP_COMPANY", "Sistema de Estoque"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "estoque_tarugos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "estoque-tarugos"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Channel:  getString(v, "REDIS_CHANNEL", "estoque:eventos"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getString(v, "STORAGE_DRIVER", "postgres")),
		},
		Orders: OrdersConfig{
			NumberPrefix: getString(v, "ORDER_NUMBER_PREFIX", "OS"),
		},
		Seed: SeedConfig{
			AdminEmail:    getString(v, "SEED_ADMIN_EMAIL", ""),
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", ""),
			AdminName:     getString(v, "SEED_ADMIN_NAME", "Administrador"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: STORAGE_DRIVER inválido %q (postgres|memory)", c.Storage.Driver)
	}
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET obrigatório em produção")
	}
	if c.Orders.NumberPrefix == "" {
		return fmt.Errorf("config: ORDER_NUMBER_PREFIX vazio")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}
