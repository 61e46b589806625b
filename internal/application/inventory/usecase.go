package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/application/events"
	"github.com/jhoicas/estoque-tarugos/internal/application/movement"
	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/application/tower"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

// LedgerUseCase mutações de estoque. Cada operação roda numa única transação:
// item, movimentação e validação da torre são confirmados juntos ou nada é gravado.
type LedgerUseCase struct {
	tx     ports.TxRunner
	events ports.EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

func NewLedgerUseCase(tx ports.TxRunner, pub ports.EventPublisher, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{tx: tx, events: pub, log: log.Named("estoque"), now: time.Now}
}

// WithClock relógio fixo para testes.
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// AddItem entrada de um item com movimentação "entrada".
func (uc *LedgerUseCase) AddItem(ctx context.Context, actor entity.Actor, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	items, err := uc.AddBatch(ctx, actor, []dto.CreateItemRequest{in})
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// AddBatch entrada em lote: todos os itens são gravados ou nenhum.
func (uc *LedgerUseCase) AddBatch(ctx context.Context, actor entity.Actor, in []dto.CreateItemRequest) ([]*entity.InventoryItem, error) {
	if len(in) == 0 {
		return nil, domain.NewValidation("itens", "informe ao menos um item")
	}
	now := uc.now()
	items := make([]*entity.InventoryItem, 0, len(in))
	for i, draft := range in {
		it, err := newItemFromDraft(draft, now)
		if err != nil {
			if len(in) > 1 {
				return nil, fmt.Errorf("item %d: %w", i+1, err)
			}
			return nil, err
		}
		items = append(items, it)
	}

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		cfg, err := tower.CurrentConfig(ctx, r.Tower)
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := tower.ValidatePosition(cfg, it.Position); err != nil {
				return err
			}
			if err := r.Items.Create(ctx, it); err != nil {
				return fmt.Errorf("gravar item %s: %w", it.Codigo, err)
			}
			if _, err := movement.Record(ctx, r.Movements, movement.Entry{
				Item: it, Tipo: entity.MovementEntrada, Quantidade: it.Quantidade,
				Observacoes: it.Observacoes, Actor: actor, At: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	evs := make([]entity.ChangeEvent, 0, len(items)+1)
	for _, it := range items {
		evs = append(evs, events.New(entity.EventEntityItem, entity.EventCreated, it.ID))
		uc.log.Info().Str("item_id", it.ID).Str("codigo", it.Codigo).Int("quantidade", it.Quantidade).
			Str("posicao", it.Position.String()).Str("actor_id", actor.ID).Msg("entrada de estoque")
	}
	evs = append(evs, events.New(entity.EventEntityMovimento, entity.EventCreated, ""))
	events.Emit(ctx, uc.events, uc.log, evs...)
	return items, nil
}

// UpdateItem atualização parcial. Se alguma quantidade mudar, a invariante é validada no registro resultante
// e a reservada não pode ficar abaixo do que ordens abertas seguram. Não gera movimentação.
func (uc *LedgerUseCase) UpdateItem(ctx context.Context, actor entity.Actor, id string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		it, err := r.Items.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("ler item: %w", err)
		}
		if it == nil {
			return domain.NewNotFound("item", id)
		}
		touched, err := applyPatch(it, in)
		if err != nil {
			return err
		}
		if touched {
			if err := it.CheckBuckets(); err != nil {
				return err
			}
			// item com total zero não fica no estoque; a baixa é pela retirada
			if it.Quantidade == 0 {
				return domain.NewValidation("quantidade", "deve ser ao menos 1; use a retirada para zerar o item")
			}
			held, err := r.Ordens.ReservedByItem(ctx, id)
			if err != nil {
				return fmt.Errorf("reservas do item: %w", err)
			}
			if it.QuantidadeReservada < held {
				return domain.NewValidation("quantidade_reservada",
					fmt.Sprintf("ordens abertas reservam %d unidades deste item", held))
			}
		}
		it.RefreshStatus()
		it.UpdatedAt = uc.now()
		if err := r.Items.Update(ctx, it); err != nil {
			return err
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", id).Str("status", string(out.Status)).Str("actor_id", actor.ID).Msg("item atualizado")
	events.Emit(ctx, uc.events, uc.log, events.New(entity.EventEntityItem, entity.EventUpdated, id))
	return out, nil
}

// RemoveQuantity retirada direta (disponível por padrão, ou avaria). Se o total zerar o item é excluído
// e o retorno é (nil, true, nil). A movimentação é gravada antes da exclusão.
func (uc *LedgerUseCase) RemoveQuantity(ctx context.Context, actor entity.Actor, id string, in dto.RemoveQuantityRequest) (*entity.InventoryItem, bool, error) {
	bucket := entity.Bucket(strings.ToLower(in.Balde))
	var (
		out     *entity.InventoryItem
		deleted bool
	)
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		it, err := r.Items.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("ler item: %w", err)
		}
		if it == nil {
			return domain.NewNotFound("item", id)
		}
		if err := it.Withdraw(bucket, in.Quantidade); err != nil {
			return err
		}
		now := uc.now()
		if _, err := movement.Record(ctx, r.Movements, movement.Entry{
			Item: it, Tipo: entity.MovementSaida, Quantidade: in.Quantidade,
			Observacoes: in.Observacoes, Actor: actor, At: now,
		}); err != nil {
			return err
		}
		if it.Quantidade == 0 {
			deleted = true
			return r.Items.Delete(ctx, id)
		}
		it.UpdatedAt = now
		if err := r.Items.Update(ctx, it); err != nil {
			return err
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	action := entity.EventUpdated
	if deleted {
		action = entity.EventDeleted
	}
	uc.log.Info().Str("item_id", id).Int("quantidade", in.Quantidade).Bool("excluido", deleted).Str("actor_id", actor.ID).Msg("saída de estoque")
	events.Emit(ctx, uc.events, uc.log,
		events.New(entity.EventEntityItem, action, id),
		events.New(entity.EventEntityMovimento, entity.EventCreated, ""))
	return out, deleted, nil
}

// Transfer muda o item de posição. O destino precisa existir na torre e estar vazio (ou ser a posição atual).
func (uc *LedgerUseCase) Transfer(ctx context.Context, actor entity.Actor, id string, to entity.StoragePosition) (*entity.InventoryItem, error) {
	var (
		out  *entity.InventoryItem
		from entity.StoragePosition
	)
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		cfg, err := tower.CurrentConfig(ctx, r.Tower)
		if err != nil {
			return err
		}
		if err := tower.ValidatePosition(cfg, to); err != nil {
			return err
		}
		it, err := r.Items.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("ler item: %w", err)
		}
		if it == nil {
			return domain.NewNotFound("item", id)
		}
		from = it.Position
		if to != it.Position {
			occupied, err := r.Items.CountByPosition(ctx)
			if err != nil {
				return fmt.Errorf("ocupação da torre: %w", err)
			}
			if occupied[to] > 0 {
				return &domain.PositionOccupiedError{Positions: []string{to.String()}}
			}
		}
		it.Position = to
		it.UpdatedAt = uc.now()
		if err := r.Items.Update(ctx, it); err != nil {
			return err
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", id).Str("de", from.String()).Str("para", to.String()).Str("actor_id", actor.ID).Msg("item transferido")
	events.Emit(ctx, uc.events, uc.log, events.New(entity.EventEntityItem, entity.EventUpdated, id))
	return out, nil
}

func (uc *LedgerUseCase) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := uc.tx.Repos().Items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ler item: %w", err)
	}
	if it == nil {
		return nil, domain.NewNotFound("item", id)
	}
	return it, nil
}

// Search busca sem acento em código, nome, acabamento, lote e usina, mais filtros exatos.
func (uc *LedgerUseCase) Search(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	f.Search = strings.TrimSpace(f.Search)
	f.Column = strings.ToUpper(strings.TrimSpace(f.Column))
	if f.Limit < 0 || f.Offset < 0 {
		return nil, 0, domain.NewValidation("paginacao", "limit e offset não podem ser negativos")
	}
	return uc.tx.Repos().Items.List(ctx, f)
}
