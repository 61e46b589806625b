package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/pkg/textnorm"
)

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

type ItemRepo struct{ b binding }

func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		st.items[item.ID] = item.Clone()
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.b.read(func(st *state) { out = st.items[id].Clone() })
	return out, nil
}

// GetForUpdate em memória o lock é a própria transação serializada.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.b.write(func(st *state) error {
		cur, ok := st.items[item.ID]
		if !ok || cur.Version != item.Version {
			return domain.NewConcurrency("item", item.ID)
		}
		item.Version++
		st.items[item.ID] = item.Clone()
		return nil
	})
}

// Delete remove o item e desvincula as movimentações (ON DELETE SET NULL).
func (r *ItemRepo) Delete(_ context.Context, id string) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return domain.NewNotFound("item", id)
		}
		delete(st.items, id)
		for i, m := range st.movements {
			if m.ItemID == id {
				c := *m
				c.ItemID = ""
				st.movements[i] = &c
			}
		}
		return nil
	})
}

func (r *ItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var out []*entity.InventoryItem
	term := textnorm.Fold(f.Search)
	r.b.read(func(st *state) {
		for _, it := range st.items {
			if matchItem(it, f, term) {
				out = append(out, it.Clone())
			}
		}
	})
	slices.SortFunc(out, func(a, b *entity.InventoryItem) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Codigo, b.Codigo)
	})
	total := len(out)
	return paginate(out, f.Limit, f.Offset), total, nil
}

func (r *ItemRepo) CountByPosition(_ context.Context) (map[entity.StoragePosition]int, error) {
	out := make(map[entity.StoragePosition]int)
	r.b.read(func(st *state) {
		for _, it := range st.items {
			out[it.Position]++
		}
	})
	return out, nil
}

func matchItem(it *entity.InventoryItem, f repository.ItemFilter, term string) bool {
	if f.Tipo != "" && it.Tipo != f.Tipo {
		return false
	}
	if f.Acabamento != "" && !strings.EqualFold(it.Acabamento, f.Acabamento) {
		return false
	}
	if f.Tempera != "" && it.Attributes.Tempera != f.Tempera {
		return false
	}
	if f.Status != "" && it.Status != f.Status {
		return false
	}
	if f.Column != "" && it.Position.Column != strings.ToUpper(f.Column) {
		return false
	}
	if term != "" {
		key := textnorm.Key(it.Codigo, it.Nome, it.Acabamento, it.LoteID, it.Usina)
		if !strings.Contains(key, term) {
			return false
		}
	}
	return true
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
