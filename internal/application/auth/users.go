package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

// UserUseCase administração de usuários.
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log.Named("usuarios")}
}

// List pendentes primeiro.
func (uc *UserUseCase) List(ctx context.Context) ([]*entity.Profile, error) {
	return uc.repo.List(ctx)
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("usuario", id)
	}
	return p, nil
}

// UpdateStatus aprova, rejeita, desativa ou reativa um cadastro. O administrador não altera o próprio status.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, admin entity.Actor, id string, to entity.UserStatus) (*entity.Profile, error) {
	if !to.Valid() {
		return nil, domain.NewValidation("status", "status inválido: "+string(to))
	}
	if admin.ID == id {
		return nil, fmt.Errorf("%w: não é possível alterar o próprio status", domain.ErrForbidden)
	}
	p, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s para %s", domain.ErrConflict, p.Status, to)
	}
	if err := uc.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", id).Str("de", string(p.Status)).Str("para", string(to)).Str("admin_id", admin.ID).Msg("status do usuário alterado")
	p.Status = to
	return p, nil
}

// IsApproved consultado a cada requisição autenticada.
func (uc *UserUseCase) IsApproved(ctx context.Context, id string) (bool, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return p != nil && p.Status == entity.UserApproved, nil
}

// EnsureAdmin cria o administrador aprovado se o email ainda não existir. Devolve false quando já existia.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, email, password, fullName string) (bool, error) {
	existing, err := uc.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	p, err := NewProfile(email, password, fullName, entity.RoleAdmin, entity.UserApproved)
	if err != nil {
		return false, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return false, fmt.Errorf("criar administrador: %w", err)
	}
	uc.log.Info().Str("user_id", p.ID).Str("email", p.Email).Msg("administrador inicial criado")
	return true, nil
}
