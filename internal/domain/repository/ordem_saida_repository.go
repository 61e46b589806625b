package repository

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// OrdemFilter filtros da listagem de ordens.
type OrdemFilter struct {
	Status entity.OrdemStatus
	Search string // trecho do número da ordem
	Limit  int
	Offset int
}

// OrdemSaidaRepository porto de persistência de ordens de saída e suas linhas.
type OrdemSaidaRepository interface {
	Create(ctx context.Context, ordem *entity.OrdemSaida) error
	GetByID(ctx context.Context, id string) (*entity.OrdemSaida, error)
	GetForUpdate(ctx context.Context, id string) (*entity.OrdemSaida, error)
	UpdateHeader(ctx context.Context, ordem *entity.OrdemSaida) error
	UpdateLine(ctx context.Context, line *entity.OrdemSaidaItem) error
	List(ctx context.Context, filter OrdemFilter) ([]*entity.OrdemSaida, int, error)
	// ReservedByItem soma das linhas de ordens não encerradas para o item.
	ReservedByItem(ctx context.Context, itemID string) (int, error)
}
