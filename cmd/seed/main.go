// seed cria o administrador inicial e, opcionalmente, carrega itens de uma planilha CSV.
//
// Uso: go run ./cmd/seed [-itens estoque.csv]
// Administrador: SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD e SEED_ADMIN_NAME.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/estoque-tarugos/internal/application/auth"
	"github.com/jhoicas/estoque-tarugos/internal/application/inventory"
	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-tarugos/pkg/config"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

func main() {
	itemsPath := flag.String("itens", "", "planilha CSV (separador ';') com a carga inicial de itens")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	if !cfg.Seed.Enabled() {
		log.Fatal().Msg("defina SEED_ADMIN_EMAIL e SEED_ADMIN_PASSWORD")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	created, err := auth.NewUserUseCase(users, log).EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName)
	if err != nil {
		log.Fatal().Err(err).Msg("criar administrador")
	}
	if !created {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador já existe")
	}

	if *itemsPath == "" {
		return
	}
	raw, err := os.ReadFile(*itemsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir planilha")
	}
	drafts, err := readItemsCSV(raw)
	if err != nil {
		log.Fatal().Err(err).Str("arquivo", *itemsPath).Msg("ler planilha")
	}
	admin, err := users.FindByEmail(ctx, cfg.Seed.AdminEmail)
	if err != nil || admin == nil {
		log.Fatal().Err(err).Msg("ler administrador")
	}

	// uma única transação: a planilha entra inteira ou nada entra
	ledger := inventory.NewLedgerUseCase(postgres.NewTxRunner(pool), nil, log)
	items, err := ledger.AddBatch(ctx, admin.Actor(), drafts)
	if err != nil {
		log.Fatal().Err(err).Msg("carga de itens")
	}
	log.Info().Int("itens", len(items)).Str("arquivo", *itemsPath).Msg("carga inicial concluída")
}
