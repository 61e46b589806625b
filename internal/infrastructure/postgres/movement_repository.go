package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

type movementRow struct {
	ID             string    `db:"id"`
	ItemID         *string   `db:"item_id"`
	Codigo         string    `db:"codigo"`
	Tipo           string    `db:"tipo"`
	Quantidade     int       `db:"quantidade"`
	PositionColumn string    `db:"position_column"`
	PositionFloor  int       `db:"position_floor"`
	Observacoes    string    `db:"observacoes"`
	UserID         string    `db:"user_id"`
	UserName       string    `db:"user_name"`
	UserEmail      string    `db:"user_email"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r movementRow) toEntity() *entity.StockMovement {
	m := &entity.StockMovement{
		ID:          r.ID,
		Codigo:      r.Codigo,
		Tipo:        entity.MovementType(r.Tipo),
		Quantidade:  r.Quantidade,
		Position:    entity.NewStoragePosition(r.PositionColumn, r.PositionFloor),
		Observacoes: r.Observacoes,
		Timestamp:   r.CreatedAt,
		UserID:      r.UserID,
		UserName:    r.UserName,
		UserEmail:   r.UserEmail,
	}
	if r.ItemID != nil {
		m.ItemID = *r.ItemID
	}
	return m
}

// MovementRepo histórico somente inclusão (stock_movements).
type MovementRepo struct {
	q Querier
}

func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	var itemID any
	if m.ItemID != "" {
		itemID = m.ItemID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements
			(id, item_id, codigo, tipo, quantidade, position_column, position_floor,
			 observacoes, user_id, user_name, user_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, itemID, m.Codigo, string(m.Tipo), m.Quantidade, m.Position.Column, m.Position.Floor,
		m.Observacoes, m.UserID, m.UserName, m.UserEmail, m.Timestamp,
	)
	if err != nil {
		return translate(err, "insert movimentação")
	}
	return nil
}

func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	q := builder().Select(
		"id", "item_id", "codigo", "tipo", "quantidade", "position_column", "position_floor",
		"observacoes", "user_id", "user_name", "user_email", "created_at",
	).From("stock_movements")
	if f.ItemID != "" {
		q = q.Where(squirrel.Eq{"item_id": f.ItemID})
	}
	if f.Tipo != "" {
		q = q.Where(squirrel.Eq{"tipo": string(f.Tipo)})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *f.To})
	}

	countSQL, countArgs, err := builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count movimentações: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movimentações: %w", err)
	}

	q = q.OrderBy("created_at DESC", "seq DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list movimentações: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list movimentações: %w", err)
	}
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, total, nil
}
