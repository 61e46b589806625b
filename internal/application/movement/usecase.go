package movement

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

// UseCase consulta do histórico de movimentações.
type UseCase struct {
	tx ports.TxRunner
}

func NewUseCase(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// List filtra por item, tipo e intervalo de datas; mais recentes primeiro.
func (uc *UseCase) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, 0, domain.NewValidation("from", "data inicial depois da data final")
	}
	if f.Tipo != "" && !f.Tipo.Valid() {
		return nil, 0, domain.NewValidation("tipo", "tipo inválido")
	}
	return uc.tx.Repos().Movements.List(ctx, f)
}
