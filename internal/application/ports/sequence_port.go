package ports

import "context"

// SequenceGenerator gera números de ordem únicos (OS-AAAA-NNNNN).
// É chamado fora da transação de negócio; números perdidos em rollback não são reaproveitados.
type SequenceGenerator interface {
	NextNumeroOrdem(ctx context.Context) (string, error)
}
