package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// MovementFilter filtros do histórico de movimentações.
type MovementFilter struct {
	ItemID string
	Tipo   entity.MovementType
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// StockMovementRepository somente inclusão e consulta; não há update nem delete.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, int, error)
}
