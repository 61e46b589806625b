package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.OrdemSaidaRepository = (*OrdemRepo)(nil)

type OrdemRepo struct{ b binding }

func (r *OrdemRepo) Create(_ context.Context, o *entity.OrdemSaida) error {
	return r.b.write(func(st *state) error {
		for _, cur := range st.ordens {
			if cur.ID == o.ID || cur.NumeroOrdem == o.NumeroOrdem {
				return domain.ErrDuplicate
			}
		}
		st.ordens[o.ID] = o.Clone()
		return nil
	})
}

func (r *OrdemRepo) GetByID(_ context.Context, id string) (*entity.OrdemSaida, error) {
	var out *entity.OrdemSaida
	r.b.read(func(st *state) { out = st.ordens[id].Clone() })
	return out, nil
}

func (r *OrdemRepo) GetForUpdate(ctx context.Context, id string) (*entity.OrdemSaida, error) {
	return r.GetByID(ctx, id)
}

func (r *OrdemRepo) UpdateHeader(_ context.Context, o *entity.OrdemSaida) error {
	return r.b.write(func(st *state) error {
		cur, ok := st.ordens[o.ID]
		if !ok {
			return domain.NewNotFound("ordem_saida", o.ID)
		}
		cur.Status = o.Status
		cur.Observacoes = o.Observacoes
		cur.UpdatedAt = o.UpdatedAt
		return nil
	})
}

func (r *OrdemRepo) UpdateLine(_ context.Context, line *entity.OrdemSaidaItem) error {
	return r.b.write(func(st *state) error {
		cur, ok := st.ordens[line.OrdemID]
		if !ok {
			return domain.NewNotFound("ordem_saida", line.OrdemID)
		}
		l, ok := cur.Line(line.ID)
		if !ok {
			return domain.NewNotFound("ordem_saida_item", line.ID)
		}
		*l = *line
		return nil
	})
}

func (r *OrdemRepo) List(_ context.Context, f repository.OrdemFilter) ([]*entity.OrdemSaida, int, error) {
	var out []*entity.OrdemSaida
	search := strings.ToUpper(strings.TrimSpace(f.Search))
	r.b.read(func(st *state) {
		for _, o := range st.ordens {
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if search != "" && !strings.Contains(strings.ToUpper(o.NumeroOrdem), search) {
				continue
			}
			out = append(out, o.Clone())
		}
	})
	slices.SortFunc(out, func(a, b *entity.OrdemSaida) int {
		if c := b.DataEmissao.Compare(a.DataEmissao); c != 0 {
			return c
		}
		return strings.Compare(b.NumeroOrdem, a.NumeroOrdem)
	})
	total := len(out)
	return paginate(out, f.Limit, f.Offset), total, nil
}

func (r *OrdemRepo) ReservedByItem(_ context.Context, itemID string) (int, error) {
	sum := 0
	r.b.read(func(st *state) {
		for _, o := range st.ordens {
			if o.Status.IsTerminal() {
				continue
			}
			for _, l := range o.Itens {
				if l.ItemID == itemID {
					sum += l.Quantidade
				}
			}
		}
	})
	return sum, nil
}
