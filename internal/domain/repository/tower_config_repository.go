package repository

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// TowerConfigRepository configuração persistida da torre. Get devolve mapa vazio se nada foi gravado.
type TowerConfigRepository interface {
	// Get lê com lock compartilhado quando dentro de transação.
	Get(ctx context.Context) (entity.TowerConfig, error)
	// GetForUpdate lê bloqueando novas leituras compartilhadas até o commit.
	GetForUpdate(ctx context.Context) (entity.TowerConfig, error)
	Replace(ctx context.Context, cfg entity.TowerConfig) error
}
