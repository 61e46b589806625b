// Package memory implementa os repositórios em memória com a mesma semântica
// transacional do PostgreSQL: cada Run trabalha sobre uma cópia e só a publica no commit.
// Usado nos testes e com STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	items     map[string]*entity.InventoryItem
	ordens    map[string]*entity.OrdemSaida
	movements []*entity.StockMovement
	tower     entity.TowerConfig
}

func newState() *state {
	return &state{
		items:  make(map[string]*entity.InventoryItem),
		ordens: make(map[string]*entity.OrdemSaida),
	}
}

func (s *state) clone() *state {
	c := &state{
		items:     make(map[string]*entity.InventoryItem, len(s.items)),
		ordens:    make(map[string]*entity.OrdemSaida, len(s.ordens)),
		movements: append([]*entity.StockMovement(nil), s.movements...),
		tower:     s.tower.Clone(),
	}
	for id, it := range s.items {
		c.items[id] = it.Clone()
	}
	for id, o := range s.ordens {
		c.ordens[id] = o.Clone()
	}
	return c
}

// Store estado compartilhado. Transações são serializadas pelo mutex.
type Store struct {
	mu sync.RWMutex
	st *state

	// usuários e logs de relatório não participam das transações do estoque.
	aux        sync.Mutex
	users      map[string]*entity.Profile
	reportLogs []*entity.ReportLog
}

func NewStore() *Store {
	return &Store{st: newState(), users: make(map[string]*entity.Profile)}
}

// Run executa fn sobre uma cópia do estado; a cópia substitui o estado somente se fn retornar nil.
// fn não deve chamar Repos() do próprio Store.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(s.repos(work)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repos repositórios fora de transação.
func (s *Store) Repos() ports.Repos {
	return s.repos(nil)
}

func (s *Store) repos(tx *state) ports.Repos {
	b := binding{store: s, tx: tx}
	return ports.Repos{
		Items:     &ItemRepo{b},
		Ordens:    &OrdemRepo{b},
		Movements: &MovementRepo{b},
		Tower:     &TowerRepo{b},
	}
}

// binding liga um repositório ao estado de uma transação ou ao estado vivo.
type binding struct {
	store *Store
	tx    *state
}

func (b binding) read(fn func(st *state)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	fn(b.store.st)
}

func (b binding) write(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	work := b.store.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	b.store.st = work
	return nil
}

// Snapshot cópia do estado atual, para asserções em testes.
func (s *Store) Snapshot() (items map[string]*entity.InventoryItem, ordens map[string]*entity.OrdemSaida, movements []*entity.StockMovement) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.st.clone()
	return c.items, c.ordens, c.movements
}
