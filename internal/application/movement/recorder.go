package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

// Entry dados de uma movimentação a registrar.
type Entry struct {
	Item        *entity.InventoryItem
	Tipo        entity.MovementType
	Quantidade  int
	Observacoes string
	Actor       entity.Actor
	At          time.Time
}

// Record grava a movimentação no repositório recebido (normalmente o da transação corrente).
// Deve ser chamado antes de excluir o item referenciado.
func Record(ctx context.Context, repo repository.StockMovementRepository, e Entry) (*entity.StockMovement, error) {
	if e.Item == nil {
		return nil, domain.NewValidation("item", "obrigatório")
	}
	if !e.Tipo.Valid() {
		return nil, domain.NewValidation("tipo", fmt.Sprintf("tipo de movimentação inválido %q", e.Tipo))
	}
	if e.Quantidade <= 0 {
		return nil, domain.NewValidation("quantidade", "deve ser maior que zero")
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	m := &entity.StockMovement{
		ID:          uuid.New().String(),
		ItemID:      e.Item.ID,
		Codigo:      e.Item.Codigo,
		Tipo:        e.Tipo,
		Quantidade:  e.Quantidade,
		Position:    e.Item.Position,
		Observacoes: e.Observacoes,
		Timestamp:   at,
		UserID:      e.Actor.ID,
		UserName:    e.Actor.Nome,
		UserEmail:   e.Actor.Email,
	}
	if err := repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("registrar movimentação: %w", err)
	}
	return m, nil
}
