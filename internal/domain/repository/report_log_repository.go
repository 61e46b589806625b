package repository

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// ReportLogRepository registro de relatórios gerados.
type ReportLogRepository interface {
	Create(ctx context.Context, l *entity.ReportLog) error
	List(ctx context.Context, limit int) ([]*entity.ReportLog, error)
}
