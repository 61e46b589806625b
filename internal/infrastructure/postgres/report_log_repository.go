package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.ReportLogRepository = (*ReportLogRepo)(nil)

type ReportLogRepo struct {
	pool *pgxpool.Pool
}

func NewReportLogRepository(pool *pgxpool.Pool) *ReportLogRepo {
	return &ReportLogRepo{pool: pool}
}

func (r *ReportLogRepo) Create(ctx context.Context, l *entity.ReportLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO report_logs (id, report_type, user_id, user_name, user_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.ReportType, l.UserID, l.UserName, l.UserEmail, l.Timestamp)
	if err != nil {
		return translate(err, "insert report log")
	}
	return nil
}

func (r *ReportLogRepo) List(ctx context.Context, limit int) ([]*entity.ReportLog, error) {
	q := builder().
		Select("id", "report_type", "user_id", "user_name", "user_email", "created_at").
		From("report_logs").
		OrderBy("created_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list report logs: %w", err)
	}
	var rows []struct {
		ID         string    `db:"id"`
		ReportType string    `db:"report_type"`
		UserID     string    `db:"user_id"`
		UserName   string    `db:"user_name"`
		UserEmail  string    `db:"user_email"`
		CreatedAt  time.Time `db:"created_at"`
	}
	if err := pgxscan.Select(ctx, r.pool, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list report logs: %w", err)
	}
	out := make([]*entity.ReportLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.ReportLog{
			ID:         row.ID,
			ReportType: row.ReportType,
			UserID:     row.UserID,
			UserName:   row.UserName,
			UserEmail:  row.UserEmail,
			Timestamp:  row.CreatedAt,
		})
	}
	return out, nil
}
