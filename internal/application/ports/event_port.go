package ports

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// EventPublisher publica alterações já confirmadas.
type EventPublisher interface {
	Publish(ctx context.Context, ev entity.ChangeEvent) error
}
