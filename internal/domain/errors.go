package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrInsufficientStock  = errors.New("estoque insuficiente")
	ErrQuantityMismatch   = errors.New("soma das quantidades diferente do total")
	ErrPositionOccupied   = errors.New("posição ocupada")
	ErrTerminalOrder      = errors.New("transição de status não permitida")
	ErrConcurrency        = errors.New("registro alterado por outra operação")
	ErrPendingApproval    = errors.New("cadastro aguardando aprovação")
)

// ValidationError entrada malformada ou fora do domínio permitido.
type ValidationError struct {
	Field string
	Msg   string
}

func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// QuantityMismatchError a soma disponível + reservada + avaria não bate com a quantidade total.
type QuantityMismatchError struct {
	Sum   int
	Total int
}

func (e *QuantityMismatchError) Error() string {
	return fmt.Sprintf("soma das quantidades (%d) diferente da quantidade total (%d)", e.Sum, e.Total)
}

func (e *QuantityMismatchError) Is(target error) bool { return target == ErrQuantityMismatch }

// InsufficientStockError pedido maior que o saldo do balde consultado.
type InsufficientStockError struct {
	Codigo    string
	Requested int
	Available int
}

func NewInsufficientStock(codigo string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{Codigo: codigo, Requested: requested, Available: available}
}

// Shortfall quantidade que falta para atender o pedido.
func (e *InsufficientStockError) Shortfall() int {
	if e.Requested <= e.Available {
		return 0
	}
	return e.Requested - e.Available
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para %s: solicitado %d, disponível %d", e.Codigo, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// PositionOccupiedError posições que ainda têm itens e não podem ser removidas ou reutilizadas.
type PositionOccupiedError struct {
	Positions []string
}

func (e *PositionOccupiedError) Error() string {
	return "posições ocupadas: " + strings.Join(e.Positions, ", ")
}

func (e *PositionOccupiedError) Is(target error) bool { return target == ErrPositionOccupied }

// TerminalOrderError transição de status inválida ou edição de ordem encerrada.
type TerminalOrderError struct {
	NumeroOrdem string
	From        string
	To          string
}

func (e *TerminalOrderError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("ordem %s está %s e não pode ser alterada", e.NumeroOrdem, e.From)
	}
	return fmt.Sprintf("ordem %s: transição %s -> %s não permitida", e.NumeroOrdem, e.From, e.To)
}

func (e *TerminalOrderError) Is(target error) bool { return target == ErrTerminalOrder }

// NotFoundError entidade referenciada não existe.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s não encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConcurrencyError a versão lida não é mais a versão gravada.
type ConcurrencyError struct {
	Entity string
	ID     string
}

func NewConcurrency(entity, id string) *ConcurrencyError {
	return &ConcurrencyError{Entity: entity, ID: id}
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("%s %s foi alterado por outra operação, tente novamente", e.Entity, e.ID)
}

func (e *ConcurrencyError) Is(target error) bool { return target == ErrConcurrency }
