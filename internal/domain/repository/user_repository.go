package repository

import (
	"context"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// UserRepository define o porto de persistência para Profile.
type UserRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)
	List(ctx context.Context) ([]*entity.Profile, error)
	UpdateStatus(ctx context.Context, id string, status entity.UserStatus) error
}
