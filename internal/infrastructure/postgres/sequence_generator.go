package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

var _ ports.SequenceGenerator = (*SequenceGenerator)(nil)

const sequenceOrdemSaida = "ordem_saida"

// SequenceGenerator contador por ano em sys_sequences. O upsert é atômico e roda fora da
// transação da ordem: um número consumido por uma ordem que falhou não volta.
type SequenceGenerator struct {
	q      Querier
	prefix string
	now    func() time.Time
}

func NewSequenceGenerator(q Querier, prefix string) *SequenceGenerator {
	return &SequenceGenerator{q: q, prefix: prefix, now: time.Now}
}

func (g *SequenceGenerator) NextNumeroOrdem(ctx context.Context) (string, error) {
	year := g.now().Year()
	var next int64
	err := g.q.QueryRow(ctx, `
		INSERT INTO sys_sequences (sequence_type, year, current_val)
		VALUES ($1, $2, 1)
		ON CONFLICT (sequence_type, year)
		DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val`, sequenceOrdemSaida, year).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("next numero ordem: %w", err)
	}
	return entity.FormatNumeroOrdem(g.prefix, year, next), nil
}
