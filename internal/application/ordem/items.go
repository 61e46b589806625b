package ordem

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

// itemSet itens lidos com bloqueio dentro da transação. Várias linhas do mesmo item
// operam sobre a mesma cópia e o item é gravado uma única vez.
type itemSet struct {
	repo  repository.InventoryItemRepository
	byID  map[string]*entity.InventoryItem
	order []string
	gone  map[string]bool
}

func newItemSet(repo repository.InventoryItemRepository) *itemSet {
	return &itemSet{repo: repo, byID: make(map[string]*entity.InventoryItem), gone: make(map[string]bool)}
}

func (s *itemSet) get(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if it, ok := s.byID[id]; ok {
		return it, nil
	}
	it, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ler item %s: %w", id, err)
	}
	if it == nil {
		return nil, domain.NewNotFound("item", id)
	}
	s.byID[id] = it
	s.order = append(s.order, id)
	return it, nil
}

// lock trava os itens em ordem crescente de id, sem repetição. Duas transações que pedem
// os mesmos itens em ordens diferentes esperam uma pela outra em vez de entrar em deadlock.
func (s *itemSet) lock(ctx context.Context, ids ...string) error {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	for _, id := range slices.Compact(sorted) {
		if _, err := s.get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// deleteEmpty exclui os itens que zeraram.
func (s *itemSet) deleteEmpty(ctx context.Context) ([]string, error) {
	var out []string
	for _, id := range s.order {
		if s.byID[id].Quantidade != 0 {
			continue
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("excluir item %s: %w", id, err)
		}
		s.gone[id] = true
		out = append(out, id)
	}
	return out, nil
}

func (s *itemSet) flush(ctx context.Context, now time.Time) error {
	for _, id := range s.order {
		if s.gone[id] {
			continue
		}
		it := s.byID[id]
		if err := it.CheckBuckets(); err != nil {
			return err
		}
		it.UpdatedAt = now
		if err := s.repo.Update(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// ids itens gravados (não excluídos), na ordem em que foram lidos.
func (s *itemSet) ids() []string {
	out := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if !s.gone[id] {
			out = append(out, id)
		}
	}
	return out
}
