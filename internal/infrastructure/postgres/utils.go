package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
)

// Querier pool ou tx; também satisfaz pgxscan.Querier.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// builder squirrel com placeholders $n.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// isUniqueViolation verifica se o erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isNoRows linha inexistente ou id que não é UUID válido (22P02).
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translate converte erros do PostgreSQL nos erros de domínio.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case "23505": // unique_violation
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case "23503": // foreign_key_violation
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case "23514": // check_violation
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		return domain.NewValidation(pgErr.ConstraintName, "valor fora do permitido")
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return fmt.Errorf("%s: %w", op, domain.ErrConcurrency)
	}
	return fmt.Errorf("%s: %w", op, err)
}
