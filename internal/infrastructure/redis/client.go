// Package redis publica eventos de alteração e guarda contra envio duplicado usando Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/estoque-tarugos/pkg/config"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

const connectAttempts = 5

// NewClient conecta com algumas tentativas e backoff exponencial (máx. 30s).
func NewClient(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = client.Ping(ctx).Err(); err == nil {
			log.Info().Str("addr", cfg.Addr).Int("attempt", attempt).Msg("conectado ao redis")
			return client, nil
		}
		sleep := min(time.Second*time.Duration(1<<attempt), 30*time.Second)
		log.Warn().Err(err).Str("addr", cfg.Addr).Int("attempt", attempt).Dur("retry_in", sleep).Msg("falha ao conectar no redis")
		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
	_ = client.Close()
	return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
}
