// Package ordem ciclo de vida das ordens de saída: reserva na criação,
// baixa na conclusão e devolução ao estoque no cancelamento.
package ordem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/application/events"
	"github.com/jhoicas/estoque-tarugos/internal/application/movement"
	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

type UseCase struct {
	tx     ports.TxRunner
	seq    ports.SequenceGenerator
	events ports.EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

func NewUseCase(tx ports.TxRunner, seq ports.SequenceGenerator, pub ports.EventPublisher, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, seq: seq, events: pub, log: log.Named("ordens"), now: time.Now}
}

// WithClock relógio fixo para testes.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// CriarOrdem reserva o estoque de todas as linhas e grava a ordem em separação.
// Se qualquer linha não tiver saldo disponível nada é reservado.
func (uc *UseCase) CriarOrdem(ctx context.Context, actor entity.Actor, in dto.CreateOrdemRequest) (*entity.OrdemSaida, error) {
	if len(in.Itens) == 0 {
		return nil, domain.NewValidation("itens", "a ordem precisa de ao menos uma linha")
	}
	for i, l := range in.Itens {
		if strings.TrimSpace(l.ItemID) == "" {
			return nil, domain.NewValidation(fmt.Sprintf("itens[%d].item_id", i), "obrigatório")
		}
		if l.Quantidade < 1 {
			return nil, domain.NewValidation(fmt.Sprintf("itens[%d].quantidade", i), "deve ser ao menos 1")
		}
	}

	// O número é consumido mesmo se a ordem falhar; lacunas na numeração são aceitas.
	numero, err := uc.seq.NextNumeroOrdem(ctx)
	if err != nil {
		return nil, fmt.Errorf("gerar número da ordem: %w", err)
	}

	now := uc.now()
	o := &entity.OrdemSaida{
		ID:           uuid.New().String(),
		NumeroOrdem:  numero,
		DataEmissao:  now,
		UsuarioID:    actor.ID,
		UsuarioNome:  actor.Nome,
		UsuarioEmail: actor.Email,
		Status:       entity.OrdemEmSeparacao,
		Observacoes:  strings.TrimSpace(in.Observacoes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var touched []string
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		items := newItemSet(r.Items)
		ids := make([]string, 0, len(in.Itens))
		for _, l := range in.Itens {
			ids = append(ids, l.ItemID)
		}
		if err := items.lock(ctx, ids...); err != nil {
			return err
		}
		for _, l := range in.Itens {
			it, err := items.get(ctx, l.ItemID)
			if err != nil {
				return err
			}
			if err := it.Reserve(l.Quantidade); err != nil {
				return err
			}
			o.Itens = append(o.Itens, entity.OrdemSaidaItem{
				ID:          uuid.New().String(),
				OrdemID:     o.ID,
				ItemID:      it.ID,
				Codigo:      firstNonEmpty(l.Codigo, it.Codigo),
				Tipo:        firstNonEmpty(l.Tipo, string(it.Tipo)),
				Quantidade:  l.Quantidade,
				Position:    it.Position,
				Empresa:     strings.TrimSpace(l.Empresa),
				Observacoes: strings.TrimSpace(l.Observacoes),
				CreatedAt:   now,
			})
		}
		if err := items.flush(ctx, now); err != nil {
			return err
		}
		if err := r.Ordens.Create(ctx, o); err != nil {
			return fmt.Errorf("gravar ordem %s: %w", numero, err)
		}
		note := fmt.Sprintf("Ordem de Saída %s - %s", numero, entity.OrdemEmSeparacao.Label())
		for _, l := range o.Itens {
			if _, err := movement.Record(ctx, r.Movements, movement.Entry{
				Item: items.byID[l.ItemID], Tipo: entity.MovementSaida, Quantidade: l.Quantidade,
				Observacoes: note, Actor: actor, At: now,
			}); err != nil {
				return err
			}
		}
		touched = items.ids()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("ordem_id", o.ID).Str("numero", numero).Int("linhas", len(o.Itens)).Str("actor_id", actor.ID).Msg("ordem criada")
	evs := []entity.ChangeEvent{events.New(entity.EventEntityOrdem, entity.EventCreated, o.ID)}
	for _, id := range touched {
		evs = append(evs, events.New(entity.EventEntityItem, entity.EventUpdated, id))
	}
	evs = append(evs, events.New(entity.EventEntityMovimento, entity.EventCreated, ""))
	events.Emit(ctx, uc.events, uc.log, evs...)
	return o, nil
}

// AtualizarOrdem edita observações e linhas de uma ordem não encerrada.
// Mudança de quantidade ajusta a reserva pela diferença e registra a movimentação do ajuste.
func (uc *UseCase) AtualizarOrdem(ctx context.Context, actor entity.Actor, id string, in dto.UpdateOrdemRequest) (*entity.OrdemSaida, error) {
	var (
		out     *entity.OrdemSaida
		touched []string
	)
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		o, err := r.Ordens.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("ler ordem: %w", err)
		}
		if o == nil {
			return domain.NewNotFound("ordem_saida", id)
		}
		if err := o.CanModify(); err != nil {
			return err
		}
		now := uc.now()
		items := newItemSet(r.Items)
		var ids []string
		for _, patch := range in.Itens {
			if line, ok := o.Line(patch.ID); ok && patch.Quantidade != nil && *patch.Quantidade != line.Quantidade {
				ids = append(ids, line.ItemID)
			}
		}
		if err := items.lock(ctx, ids...); err != nil {
			return err
		}
		for _, patch := range in.Itens {
			line, ok := o.Line(patch.ID)
			if !ok {
				return domain.NewNotFound("ordem_saida_item", patch.ID)
			}
			if err := uc.applyLine(ctx, r, items, o, line, patch, actor, now); err != nil {
				return err
			}
			if err := r.Ordens.UpdateLine(ctx, line); err != nil {
				return fmt.Errorf("gravar linha %s: %w", line.ID, err)
			}
		}
		if err := items.flush(ctx, now); err != nil {
			return err
		}
		if in.Observacoes != nil {
			o.Observacoes = strings.TrimSpace(*in.Observacoes)
		}
		o.UpdatedAt = now
		if err := r.Ordens.UpdateHeader(ctx, o); err != nil {
			return fmt.Errorf("gravar ordem: %w", err)
		}
		out = o
		touched = items.ids()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("ordem_id", id).Str("numero", out.NumeroOrdem).Str("actor_id", actor.ID).Msg("ordem atualizada")
	evs := []entity.ChangeEvent{events.New(entity.EventEntityOrdem, entity.EventUpdated, id)}
	for _, itemID := range touched {
		evs = append(evs, events.New(entity.EventEntityItem, entity.EventUpdated, itemID))
	}
	events.Emit(ctx, uc.events, uc.log, evs...)
	return out, nil
}

func (uc *UseCase) applyLine(ctx context.Context, r ports.Repos, items *itemSet, o *entity.OrdemSaida,
	line *entity.OrdemSaidaItem, patch dto.UpdateOrdemLine, actor entity.Actor, now time.Time) error {
	if patch.Codigo != nil {
		c := strings.TrimSpace(*patch.Codigo)
		if c == "" {
			return domain.NewValidation("codigo", "não pode ficar vazio")
		}
		line.Codigo = c
	}
	if patch.Tipo != nil {
		line.Tipo = strings.TrimSpace(*patch.Tipo)
	}
	if patch.Empresa != nil {
		line.Empresa = strings.TrimSpace(*patch.Empresa)
	}
	if patch.Observacoes != nil {
		line.Observacoes = strings.TrimSpace(*patch.Observacoes)
	}
	if patch.Quantidade == nil || *patch.Quantidade == line.Quantidade {
		return nil
	}
	if *patch.Quantidade < 1 {
		return domain.NewValidation("quantidade", "deve ser ao menos 1")
	}

	delta := *patch.Quantidade - line.Quantidade
	it, err := items.get(ctx, line.ItemID)
	if err != nil {
		return err
	}
	tipo := entity.MovementSaida
	if delta > 0 {
		err = it.Reserve(delta)
	} else {
		tipo = entity.MovementEntrada
		err = it.Release(-delta)
	}
	if err != nil {
		return err
	}
	line.Quantidade = *patch.Quantidade
	_, err = movement.Record(ctx, r.Movements, movement.Entry{
		Item: it, Tipo: tipo, Quantidade: abs(delta),
		Observacoes: fmt.Sprintf("Ordem de Saída %s - quantidade ajustada para %d", o.NumeroOrdem, line.Quantidade),
		Actor:       actor, At: now,
	})
	return err
}

// AtualizarStatus aplica a transição e o efeito no estoque na mesma transação.
// Repetir o status atual, voltar de status ou sair de um encerrado devolve TerminalOrderError.
func (uc *UseCase) AtualizarStatus(ctx context.Context, actor entity.Actor, id string, to entity.OrdemStatus) (*entity.OrdemSaida, error) {
	var (
		out     *entity.OrdemSaida
		updated []string
		deleted []string
	)
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		o, err := r.Ordens.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("ler ordem: %w", err)
		}
		if o == nil {
			return domain.NewNotFound("ordem_saida", id)
		}
		if err := o.CheckTransition(to); err != nil {
			return err
		}
		now := uc.now()
		items := newItemSet(r.Items)
		if to == entity.OrdemConcluida || to == entity.OrdemCancelada {
			ids := make([]string, 0, len(o.Itens))
			for _, l := range o.Itens {
				ids = append(ids, l.ItemID)
			}
			if err := items.lock(ctx, ids...); err != nil {
				return err
			}
		}

		switch to {
		case entity.OrdemConcluida:
			note := fmt.Sprintf("Ordem de Saída %s concluída", o.NumeroOrdem)
			for _, l := range o.Itens {
				it, err := items.get(ctx, l.ItemID)
				if err != nil {
					return err
				}
				if err := it.Consume(l.Quantidade); err != nil {
					return err
				}
				// a movimentação precisa existir antes da exclusão do item
				if _, err := movement.Record(ctx, r.Movements, movement.Entry{
					Item: it, Tipo: entity.MovementSaida, Quantidade: l.Quantidade,
					Observacoes: note, Actor: actor, At: now,
				}); err != nil {
					return err
				}
			}
		case entity.OrdemCancelada:
			note := fmt.Sprintf("Ordem de Saída %s cancelada - Item devolvido ao estoque", o.NumeroOrdem)
			for _, l := range o.Itens {
				it, err := items.get(ctx, l.ItemID)
				if err != nil {
					return err
				}
				if err := it.Release(l.Quantidade); err != nil {
					return err
				}
				if _, err := movement.Record(ctx, r.Movements, movement.Entry{
					Item: it, Tipo: entity.MovementEntrada, Quantidade: l.Quantidade,
					Observacoes: note, Actor: actor, At: now,
				}); err != nil {
					return err
				}
			}
		}

		if deleted, err = items.deleteEmpty(ctx); err != nil {
			return err
		}
		if err := items.flush(ctx, now); err != nil {
			return err
		}
		o.Status = to
		o.UpdatedAt = now
		if err := r.Ordens.UpdateHeader(ctx, o); err != nil {
			return fmt.Errorf("gravar ordem: %w", err)
		}
		out = o
		updated = items.ids()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("ordem_id", id).Str("numero", out.NumeroOrdem).Str("status", string(to)).
		Strs("itens_excluidos", deleted).Str("actor_id", actor.ID).Msg("status da ordem alterado")
	evs := []entity.ChangeEvent{events.New(entity.EventEntityOrdem, entity.EventUpdated, id)}
	for _, itemID := range updated {
		evs = append(evs, events.New(entity.EventEntityItem, entity.EventUpdated, itemID))
	}
	for _, itemID := range deleted {
		evs = append(evs, events.New(entity.EventEntityItem, entity.EventDeleted, itemID))
	}
	if to == entity.OrdemConcluida || to == entity.OrdemCancelada {
		evs = append(evs, events.New(entity.EventEntityMovimento, entity.EventCreated, ""))
	}
	events.Emit(ctx, uc.events, uc.log, evs...)
	return out, nil
}

func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.OrdemSaida, error) {
	o, err := uc.tx.Repos().Ordens.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ler ordem: %w", err)
	}
	if o == nil {
		return nil, domain.NewNotFound("ordem_saida", id)
	}
	return o, nil
}

// List mais recentes primeiro.
func (uc *UseCase) List(ctx context.Context, f repository.OrdemFilter) ([]*entity.OrdemSaida, int, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, domain.NewValidation("status", "status inválido: "+string(f.Status))
	}
	f.Search = strings.TrimSpace(f.Search)
	return uc.tx.Repos().Ordens.List(ctx, f)
}

func firstNonEmpty(v, fallback string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return fallback
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
