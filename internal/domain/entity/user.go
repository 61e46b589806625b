package entity

import "time"

// Papéis válidos para Profile.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserStatus situação do cadastro.
type UserStatus string

const (
	UserPending  UserStatus = "pending"
	UserApproved UserStatus = "approved"
	UserRejected UserStatus = "rejected"
	UserInactive UserStatus = "inactive"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserPending, UserApproved, UserRejected, UserInactive:
		return true
	}
	return false
}

// SortRank ordem de exibição na administração: pendentes primeiro.
func (s UserStatus) SortRank() int {
	switch s {
	case UserPending:
		return 0
	case UserApproved:
		return 1
	case UserInactive:
		return 2
	case UserRejected:
		return 3
	}
	return 4
}

// CanTransitionTo transições que o administrador pode aplicar.
func (s UserStatus) CanTransitionTo(to UserStatus) bool {
	switch s {
	case UserPending:
		return to == UserApproved || to == UserRejected
	case UserApproved:
		return to == UserInactive
	case UserInactive, UserRejected:
		return to == UserApproved
	}
	return false
}

// Profile usuário do sistema.
type Profile struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string // bcrypt
	Role         string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor quem executa a operação; vai gravado em ordens e movimentações.
type Actor struct {
	ID    string
	Nome  string
	Email string
}

func (p *Profile) Actor() Actor {
	nome := p.FullName
	if nome == "" {
		nome = p.Email
	}
	return Actor{ID: p.ID, Nome: nome, Email: p.Email}
}
