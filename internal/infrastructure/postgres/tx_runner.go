package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia a transação, executa fn com repositórios presos à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translate(err, "commit transaction")
	}
	return nil
}

// Repos repositórios sobre o pool, para leituras fora de transação.
func (r *TxRunner) Repos() ports.Repos {
	return reposFor(r.pool)
}

func reposFor(q Querier) ports.Repos {
	return ports.Repos{
		Items:     NewItemRepository(q),
		Ordens:    NewOrdemRepository(q),
		Movements: NewMovementRepository(q),
		Tower:     NewTowerRepository(q),
	}
}
