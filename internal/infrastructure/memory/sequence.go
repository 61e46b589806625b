package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

var _ ports.SequenceGenerator = (*Sequence)(nil)

// Sequence numerador em memória, um contador por ano.
type Sequence struct {
	mu      sync.Mutex
	prefix  string
	now     func() time.Time
	current map[int]int64
}

func NewSequence(prefix string, now func() time.Time) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{prefix: prefix, now: now, current: make(map[int]int64)}
}

func (s *Sequence) NextNumeroOrdem(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	year := s.now().Year()
	s.current[year]++
	return entity.FormatNumeroOrdem(s.prefix, year, s.current[year]), nil
}
