package tower

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-tarugos/internal/application/events"
	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

// UseCase configuração e ocupação da torre de armazenagem.
type UseCase struct {
	tx     ports.TxRunner
	events ports.EventPublisher
	log    *logger.Logger
}

func NewUseCase(tx ports.TxRunner, pub ports.EventPublisher, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, events: pub, log: log.Named("torre")}
}

// CurrentConfig configuração gravada ou a padrão (A–H × 1–4) se nada foi gravado.
func CurrentConfig(ctx context.Context, repo repository.TowerConfigRepository) (entity.TowerConfig, error) {
	cfg, err := repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("ler configuração da torre: %w", err)
	}
	if len(cfg) == 0 {
		return entity.DefaultTowerConfig(), nil
	}
	return cfg, nil
}

// ValidatePosition erro de validação se a posição não existir na configuração.
func ValidatePosition(cfg entity.TowerConfig, p entity.StoragePosition) error {
	if !cfg.Contains(p) {
		return domain.NewValidation("posicao", fmt.Sprintf("posição %s não existe na torre", p))
	}
	return nil
}

func (uc *UseCase) Get(ctx context.Context) (entity.TowerConfig, error) {
	return CurrentConfig(ctx, uc.tx.Repos().Tower)
}

// Configure substitui a configuração. Posições removidas precisam estar vazias;
// se alguma estiver ocupada nada é gravado e o erro lista todas elas.
func (uc *UseCase) Configure(ctx context.Context, actor entity.Actor, next entity.TowerConfig) (entity.TowerConfig, error) {
	norm, err := next.Normalize()
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		current, err := r.Tower.GetForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("ler configuração da torre: %w", err)
		}
		if len(current) == 0 {
			current = entity.DefaultTowerConfig()
		}
		occupied, err := r.Items.CountByPosition(ctx)
		if err != nil {
			return fmt.Errorf("ocupação da torre: %w", err)
		}
		var blocked []string
		for _, p := range current.Removed(norm) {
			if occupied[p] > 0 {
				blocked = append(blocked, p.String())
			}
		}
		if len(blocked) > 0 {
			return &domain.PositionOccupiedError{Positions: blocked}
		}
		return r.Tower.Replace(ctx, norm)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("actor_id", actor.ID).Strs("colunas", norm.Columns()).Msg("torre reconfigurada")
	events.Emit(ctx, uc.events, uc.log, events.New(entity.EventEntityTorre, entity.EventUpdated, "config"))
	return norm, nil
}

// PositionOverview ocupação de uma posição configurada.
type PositionOverview struct {
	Position entity.StoragePosition
	Items    []*entity.InventoryItem
}

func (p PositionOverview) Occupied() bool { return len(p.Items) > 0 }

// Overview todas as posições configuradas, em ordem, com os itens de cada uma.
func (uc *UseCase) Overview(ctx context.Context) ([]PositionOverview, error) {
	repos := uc.tx.Repos()
	cfg, err := CurrentConfig(ctx, repos.Tower)
	if err != nil {
		return nil, err
	}
	items, _, err := repos.Items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("listar itens: %w", err)
	}
	byPos := make(map[entity.StoragePosition][]*entity.InventoryItem)
	for _, it := range items {
		byPos[it.Position] = append(byPos[it.Position], it)
	}
	var out []PositionOverview
	for p := range cfg.Positions() {
		out = append(out, PositionOverview{Position: p, Items: byPos[p]})
	}
	return out, nil
}
