package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/pkg/jwt"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase cadastro e login.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
	log    *logger.Logger
}

func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, log: log.Named("auth")}
}

// Register cria o usuário com status pendente; um administrador precisa aprovar antes do primeiro login.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*entity.Profile, error) {
	p, err := NewProfile(in.Email, in.Password, in.FullName, entity.RoleUser, entity.UserPending)
	if err != nil {
		return nil, err
	}
	existing, err := uc.users.FindByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if err := uc.users.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", p.ID).Str("email", p.Email).Msg("cadastro pendente de aprovação")
	return p, nil
}

// Login confere email/senha e emite o JWT. Só usuários aprovados entram.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (string, *entity.Profile, error) {
	p, err := uc.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return "", nil, err
	}
	if p == nil {
		return "", nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	switch p.Status {
	case entity.UserApproved:
	case entity.UserPending:
		return "", nil, domain.ErrPendingApproval
	default:
		return "", nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID: p.ID,
		Name:   p.Actor().Nome,
		Email:  p.Email,
		Role:   p.Role,
	})
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

// NewProfile valida os dados e gera o hash bcrypt da senha. Usado também pelo seed.
func NewProfile(email, password, fullName, role string, status entity.UserStatus) (*entity.Profile, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidation("email", "email inválido")
	}
	if len(password) < 8 {
		return nil, domain.NewValidation("password", "mínimo de 8 caracteres")
	}
	if role != entity.RoleAdmin && role != entity.RoleUser {
		return nil, domain.NewValidation("role", "papel inválido: "+role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewValidation("password", "máximo de 72 bytes")
		}
		return nil, err
	}
	now := time.Now()
	return &entity.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
