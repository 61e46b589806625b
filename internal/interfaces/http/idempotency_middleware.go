package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// HeaderIdempotencyKey cabeçalho enviado pelo cliente em operações de criação.
const HeaderIdempotencyKey = "Idempotency-Key"

// idempotencyGuard implementado por *redis.IdempotencyGuard.
type idempotencyGuard interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// Idempotency rejeita com 409 uma segunda requisição com a mesma chave enquanto a trava durar.
// Se a primeira falhar (erro ou status fora de 2xx) a chave é liberada para o reenvio corrigido.
// Sem chave no cabeçalho, ou sem guard configurado, a requisição segue normalmente.
func Idempotency(guard idempotencyGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if guard == nil || key == "" {
			return c.Next()
		}
		release, err := guard.Acquire(c.UserContext(), GetUserID(c)+":"+key)
		if err != nil {
			return writeError(c, err)
		}
		err = c.Next()
		if status := c.Response().StatusCode(); err != nil || status < 200 || status > 299 {
			if rerr := release(c.UserContext()); rerr != nil {
				log.Warn().Err(rerr).Str("key", key).Msg("liberar chave de idempotência")
			}
		}
		return err
	}
}
