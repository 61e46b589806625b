package memory

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.ReportLogRepository = (*ReportLogRepo)(nil)

type ReportLogRepo struct{ s *Store }

func NewReportLogRepository(s *Store) *ReportLogRepo { return &ReportLogRepo{s: s} }

func (r *ReportLogRepo) Create(_ context.Context, l *entity.ReportLog) error {
	r.s.aux.Lock()
	defer r.s.aux.Unlock()
	c := *l
	r.s.reportLogs = append(r.s.reportLogs, &c)
	return nil
}

// List mais recentes primeiro.
func (r *ReportLogRepo) List(_ context.Context, limit int) ([]*entity.ReportLog, error) {
	r.s.aux.Lock()
	defer r.s.aux.Unlock()
	out := make([]*entity.ReportLog, 0, len(r.s.reportLogs))
	for i := len(r.s.reportLogs) - 1; i >= 0; i-- {
		c := *r.s.reportLogs[i]
		out = append(out, &c)
	}
	return paginate(out, limit, 0), nil
}
