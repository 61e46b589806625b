// migrate aplica os scripts goose embutidos em internal/infrastructure/postgres/migrations.
//
// Uso: go run ./cmd/migrate [up|down|status|version|redo|reset]
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/estoque-tarugos/pkg/config"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

// gooseLogger encaminha a saída do goose para o zerolog.
type gooseLogger struct{ log *logger.Logger }

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "aviso: .env não encontrado, usando apenas variáveis de ambiente: %v\n", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	flag.Parse()
	command := "up"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir conexão")
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("dialeto goose")
	}

	if err := goose.RunContext(context.Background(), command, db, ".", args...); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migração falhou")
	}
	log.Info().Str("command", command).Msg("migração concluída")
}
