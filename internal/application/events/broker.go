// Package events distribui notificações de alteração depois do commit.
package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

var _ ports.EventPublisher = (*Broker)(nil)

// Broker fan-out em processo para assinantes (ex. conexões SSE).
// Assinante lento perde eventos em vez de travar quem publica.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]chan entity.ChangeEvent
	next   int
	buffer int
	closed bool
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{subs: make(map[int]chan entity.ChangeEvent), buffer: buffer}
}

// Subscribe devolve o canal de eventos e a função que cancela a assinatura.
func (b *Broker) Subscribe() (<-chan entity.ChangeEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan entity.ChangeEvent, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

func (b *Broker) Publish(_ context.Context, ev entity.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

// Subscribers quantidade de assinantes ativos.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close encerra todos os assinantes.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Multi publica em todos; erros são agregados.
type Multi []ports.EventPublisher

func (m Multi) Publish(ctx context.Context, ev entity.ChangeEvent) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New monta um ChangeEvent com horário atual.
func New(entityName, action, id string) entity.ChangeEvent {
	return entity.ChangeEvent{Entity: entityName, Action: action, ID: id, At: time.Now().UTC()}
}

// Emit publica eventos já confirmados. Falha de publicação não desfaz a operação: vira warn.
func Emit(ctx context.Context, pub ports.EventPublisher, log *logger.Logger, evs ...entity.ChangeEvent) {
	if pub == nil {
		return
	}
	for _, ev := range evs {
		if err := pub.Publish(ctx, ev); err != nil && log != nil {
			log.Warn().Err(err).Str("entity", ev.Entity).Str("action", ev.Action).Str("id", ev.ID).Msg("publicar evento")
		}
	}
}
