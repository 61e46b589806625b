package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

type MovementRepo struct{ b binding }

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.b.write(func(st *state) error {
		if m.ItemID != "" {
			if _, ok := st.items[m.ItemID]; !ok {
				return fkViolation("stock_movements.item_id", m.ItemID)
			}
		}
		c := *m
		st.movements = append(st.movements, &c)
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var out []*entity.StockMovement
	r.b.read(func(st *state) {
		for _, m := range st.movements {
			if f.ItemID != "" && m.ItemID != f.ItemID {
				continue
			}
			if f.Tipo != "" && m.Tipo != f.Tipo {
				continue
			}
			if f.From != nil && m.Timestamp.Before(*f.From) {
				continue
			}
			if f.To != nil && m.Timestamp.After(*f.To) {
				continue
			}
			c := *m
			out = append(out, &c)
		}
	})
	// mais recentes primeiro; empate mantém a ordem de inclusão invertida
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b *entity.StockMovement) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	total := len(out)
	return paginate(out, f.Limit, f.Offset), total, nil
}
