package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.TowerConfigRepository = (*TowerRepo)(nil)

// TowerRepo configuração da torre numa linha única (tower_config.id = 1).
// Escritores de item leem com FOR SHARE; Configure lê com FOR UPDATE e espera por eles.
type TowerRepo struct {
	q Querier
}

func NewTowerRepository(q Querier) *TowerRepo {
	return &TowerRepo{q: q}
}

func (r *TowerRepo) Get(ctx context.Context) (entity.TowerConfig, error) {
	return r.load(ctx, "FOR SHARE")
}

func (r *TowerRepo) GetForUpdate(ctx context.Context) (entity.TowerConfig, error) {
	return r.load(ctx, "FOR UPDATE")
}

func (r *TowerRepo) load(ctx context.Context, lock string) (entity.TowerConfig, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT config FROM tower_config WHERE id = 1 `+lock).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return entity.TowerConfig{}, nil
		}
		return nil, fmt.Errorf("get torre: %w", err)
	}
	cfg := entity.TowerConfig{}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode torre: %w", err)
	}
	return cfg, nil
}

func (r *TowerRepo) Replace(ctx context.Context, cfg entity.TowerConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode torre: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO tower_config (id, config, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET config = EXCLUDED.config, updated_at = now()`, raw)
	if err != nil {
		return translate(err, "replace torre")
	}
	return nil
}
