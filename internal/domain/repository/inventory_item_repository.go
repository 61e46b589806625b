package repository

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// ItemFilter filtros da busca de itens. Limit 0 = sem limite.
type ItemFilter struct {
	Search     string
	Tipo       entity.ItemType
	Acabamento string
	Tempera    entity.Tempera
	Status     entity.ItemStatus
	Column     string
	Limit      int
	Offset     int
}

// InventoryItemRepository define o porto de persistência para InventoryItem.
// GetByID e GetForUpdate devolvem (nil, nil) quando o item não existe.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloqueia a linha até o fim da transação (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// Update grava se a versão lida ainda for a atual; incrementa item.Version.
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.InventoryItem, int, error)
	// CountByPosition quantidade de itens por posição ocupada.
	CountByPosition(ctx context.Context) (map[entity.StoragePosition]int, error)
}
