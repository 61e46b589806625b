package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo perfis guardados no Store.
type UserRepo struct{ s *Store }

func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, p *entity.Profile) error {
	r.s.aux.Lock()
	defer r.s.aux.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, p.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *p
	r.s.users[p.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	r.s.aux.Lock()
	defer r.s.aux.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.Profile, error) {
	r.s.aux.Lock()
	defer r.s.aux.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.Profile, error) {
	r.s.aux.Lock()
	defer r.s.aux.Unlock()
	out := make([]*entity.Profile, 0, len(r.s.users))
	for _, u := range r.s.users {
		c := *u
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *entity.Profile) int {
		if d := a.Status.SortRank() - b.Status.SortRank(); d != 0 {
			return d
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *UserRepo) UpdateStatus(_ context.Context, id string, status entity.UserStatus) error {
	r.s.aux.Lock()
	defer r.s.aux.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}
