package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/jhoicas/estoque-tarugos/internal/application/auth"
	"github.com/jhoicas/estoque-tarugos/internal/application/events"
	"github.com/jhoicas/estoque-tarugos/internal/application/inventory"
	"github.com/jhoicas/estoque-tarugos/internal/application/movement"
	"github.com/jhoicas/estoque-tarugos/internal/application/ordem"
	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/application/report"
	"github.com/jhoicas/estoque-tarugos/internal/application/tower"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/estoque-tarugos/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/estoque-tarugos/internal/infrastructure/redis"
	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/estoque-tarugos/internal/interfaces/http"
	"github.com/jhoicas/estoque-tarugos/pkg/config"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

// trava de idempotência de POST /api/ordens
const idempotencyTTL = 30 * time.Second

type storage struct {
	tx    ports.TxRunner
	users repository.UserRepository
	logs  repository.ReportLogRepository
	seq   ports.SequenceGenerator
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicação")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir armazenamento")
	}
	defer store.close()

	broker := events.NewBroker(64)
	defer broker.Close()
	var publisher ports.EventPublisher = broker

	var guard *infraredis.IdempotencyGuard
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis, log.Named("redis"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexão com redis")
		}
		defer client.Close()

		// eventos desta instância vão para o broker local e para o canal; o relay traz os das outras
		origin := uuid.NewString()
		publisher = events.Multi{broker, infraredis.NewPublisher(client, cfg.Redis.Channel, origin)}
		go func() {
			if err := infraredis.Relay(ctx, client, cfg.Redis.Channel, origin, broker, log.Named("redis")); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("relay de eventos encerrado")
			}
		}()
		guard = infraredis.NewIdempotencyGuard(client, "estoque:idem:", idempotencyTTL)
	}

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	userUC := auth.NewUserUseCase(store.users, log)

	if cfg.Storage.Driver == "memory" && cfg.Seed.Enabled() {
		if _, err := userUC.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName); err != nil {
			log.Fatal().Err(err).Msg("criar administrador inicial")
		}
	}

	deps := httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		TowerUC:    tower.NewUseCase(store.tx, publisher, log),
		LedgerUC:   inventory.NewLedgerUseCase(store.tx, publisher, log),
		OrdemUC:    ordem.NewUseCase(store.tx, store.seq, publisher, log),
		MovementUC: movement.NewUseCase(store.tx),
		ReportUC: report.NewUseCase(store.tx, store.logs,
			infrapdf.NewMarotoPDFGenerator(cfg.App.Company), xlsx.NewExcelGenerator(), log),
		Events:    broker,
		JWTSecret: cfg.JWT.Secret,
	}
	if guard != nil {
		deps.Idempotency = guard
	}

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// sem WriteTimeout: /api/events mantém a conexão aberta
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque de Tarugos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	// fecha os streams SSE antes do shutdown do fiber
	broker.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		s := memory.NewStore()
		return &storage{
			tx:    s,
			users: memory.NewUserRepository(s),
			logs:  memory.NewReportLogRepository(s),
			seq:   memory.NewSequence(cfg.Orders.NumberPrefix, nil),
			close: func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:    postgres.NewTxRunner(pool),
		users: postgres.NewUserRepository(pool),
		logs:  postgres.NewReportLogRepository(pool),
		seq:   postgres.NewSequenceGenerator(pool, cfg.Orders.NumberPrefix),
		close: pool.Close,
	}, nil
}
