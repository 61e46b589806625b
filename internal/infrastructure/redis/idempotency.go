package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
)

// IdempotencyGuard trava por chave de idempotência. Enquanto a trava existir,
// outra requisição com a mesma chave é rejeitada com domain.ErrConflict.
type IdempotencyGuard struct {
	locker *redislock.Client
	prefix string
	ttl    time.Duration
}

func NewIdempotencyGuard(client goredis.UniversalClient, prefix string, ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{locker: redislock.New(client), prefix: prefix, ttl: ttl}
}

// Acquire obtém a trava da chave. Não liberada, ela expira sozinha após o TTL e um reenvio
// com a mesma chave dentro da janela é rejeitado; release devolve a chave antes disso.
func (g *IdempotencyGuard) Acquire(ctx context.Context, key string) (release func(context.Context) error, err error) {
	lock, err := g.locker.Obtain(ctx, g.prefix+key, g.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: requisição %q já recebida", domain.ErrConflict, key)
	}
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}
