package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type profileRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r profileRow) toEntity() *entity.Profile {
	return &entity.Profile{
		ID:           r.ID,
		Email:        r.Email,
		FullName:     r.FullName,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		Status:       entity.UserStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const profileSelect = `SELECT id, email, full_name, password_hash, role, status, created_at, updated_at FROM profiles`

// UserRepo implementação de UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, p *entity.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, email, full_name, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Email, p.FullName, p.PasswordHash, p.Role, string(p.Status), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return r.findOne(ctx, profileSelect+` WHERE id = $1`, id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.findOne(ctx, profileSelect+` WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg string) (*entity.Profile, error) {
	var row profileRow
	if err := pgxscan.Get(ctx, r.pool, &row, query, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return row.toEntity(), nil
}

// List pendentes primeiro, depois os mais recentes.
func (r *UserRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	var rows []profileRow
	err := pgxscan.Select(ctx, r.pool, &rows, profileSelect+`
		ORDER BY CASE status
			WHEN 'pending' THEN 0 WHEN 'approved' THEN 1 WHEN 'inactive' THEN 2 ELSE 3 END,
			created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	out := make([]*entity.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *UserRepo) UpdateStatus(ctx context.Context, id string, status entity.UserStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		if pgCode(err) == "22P02" {
			return domain.ErrUserNotFound
		}
		return translate(err, "update profile status")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
