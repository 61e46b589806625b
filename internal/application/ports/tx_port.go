package ports

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

// Repos repositórios atados a uma mesma transação (ou ao pool, fora dela).
type Repos struct {
	Items     repository.InventoryItemRepository
	Ordens    repository.OrdemSaidaRepository
	Movements repository.StockMovementRepository
	Tower     repository.TowerConfigRepository
}

// TxRunner executa fn dentro de uma transação: commit se fn retornar nil, rollback caso contrário.
// Repos() devolve os repositórios fora de transação, para leituras.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
	Repos() Repos
}
