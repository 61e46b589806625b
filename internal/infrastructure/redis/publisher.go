package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// envelope Origin identifica a instância que publicou, para o relay não reentregar o próprio evento.
type envelope struct {
	Origin string             `json:"origin"`
	Event  entity.ChangeEvent `json:"event"`
}

func encode(origin string, ev entity.ChangeEvent) ([]byte, error) {
	return json.Marshal(envelope{Origin: origin, Event: ev})
}

func decode(payload string) (envelope, error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return envelope{}, err
	}
	if env.Event.Entity == "" || env.Event.Action == "" {
		return envelope{}, fmt.Errorf("evento incompleto")
	}
	return env, nil
}

// Publisher publica ChangeEvent em JSON num canal pub/sub.
type Publisher struct {
	client  goredis.UniversalClient
	channel string
	origin  string
}

func NewPublisher(client goredis.UniversalClient, channel, origin string) *Publisher {
	return &Publisher{client: client, channel: channel, origin: origin}
}

func (p *Publisher) Publish(ctx context.Context, ev entity.ChangeEvent) error {
	payload, err := encode(p.origin, ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}

// Relay assina o canal e entrega em local os eventos publicados por outras instâncias.
// Bloqueia até ctx ser cancelado.
func Relay(ctx context.Context, client goredis.UniversalClient, channel, origin string, local ports.EventPublisher, log *logger.Logger) error {
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("assinar %s: %w", channel, err)
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			env, err := decode(msg.Payload)
			if err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("evento inválido no redis")
				continue
			}
			if env.Origin == origin {
				continue
			}
			if err := local.Publish(ctx, env.Event); err != nil {
				log.Warn().Err(err).Str("entity", env.Event.Entity).Msg("repassar evento")
			}
		}
	}
}
