package memory

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.TowerConfigRepository = (*TowerRepo)(nil)

type TowerRepo struct{ b binding }

func (r *TowerRepo) Get(_ context.Context) (entity.TowerConfig, error) {
	var out entity.TowerConfig
	r.b.read(func(st *state) { out = st.tower.Clone() })
	return out, nil
}

func (r *TowerRepo) GetForUpdate(ctx context.Context) (entity.TowerConfig, error) {
	return r.Get(ctx)
}

func (r *TowerRepo) Replace(_ context.Context, cfg entity.TowerConfig) error {
	return r.b.write(func(st *state) error {
		st.tower = cfg.Clone()
		return nil
	})
}
