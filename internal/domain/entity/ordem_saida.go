package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
)

// OrdemStatus ciclo de vida da ordem de saída.
type OrdemStatus string

const (
	OrdemEmSeparacao     OrdemStatus = "em_separacao"
	OrdemAguardandoEnvio OrdemStatus = "aguardando_envio"
	OrdemConcluida       OrdemStatus = "concluida"
	OrdemCancelada       OrdemStatus = "cancelada"
)

func (s OrdemStatus) Valid() bool {
	switch s {
	case OrdemEmSeparacao, OrdemAguardandoEnvio, OrdemConcluida, OrdemCancelada:
		return true
	}
	return false
}

// IsTerminal concluída e cancelada não aceitam mais mudanças.
func (s OrdemStatus) IsTerminal() bool {
	return s == OrdemConcluida || s == OrdemCancelada
}

// Label rótulo usado em relatórios e movimentações.
func (s OrdemStatus) Label() string {
	switch s {
	case OrdemEmSeparacao:
		return "Em Separação"
	case OrdemAguardandoEnvio:
		return "Aguardando Envio"
	case OrdemConcluida:
		return "Concluída"
	case OrdemCancelada:
		return "Cancelada"
	}
	return string(s)
}

// CanTransitionTo tabela de transições permitidas.
func (s OrdemStatus) CanTransitionTo(to OrdemStatus) bool {
	switch s {
	case OrdemEmSeparacao:
		return to == OrdemAguardandoEnvio || to == OrdemConcluida || to == OrdemCancelada
	case OrdemAguardandoEnvio:
		return to == OrdemConcluida || to == OrdemCancelada
	}
	return false
}

// OrdemSaida documento de retirada de estoque com suas linhas.
type OrdemSaida struct {
	ID           string
	NumeroOrdem  string
	DataEmissao  time.Time
	UsuarioID    string
	UsuarioNome  string
	UsuarioEmail string
	Status       OrdemStatus
	Observacoes  string
	Itens        []OrdemSaidaItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrdemSaidaItem linha da ordem. Codigo, Tipo e Position são cópias do item no momento da criação.
type OrdemSaidaItem struct {
	ID          string
	OrdemID     string
	ItemID      string
	Codigo      string
	Tipo        string
	Quantidade  int
	Position    StoragePosition
	Empresa     string
	Observacoes string
	CreatedAt   time.Time
}

// CanModify ordens encerradas não podem ser editadas.
func (o *OrdemSaida) CanModify() error {
	if o.Status.IsTerminal() {
		return &domain.TerminalOrderError{NumeroOrdem: o.NumeroOrdem, From: string(o.Status)}
	}
	return nil
}

// CheckTransition valida a mudança de status contra a tabela.
func (o *OrdemSaida) CheckTransition(to OrdemStatus) error {
	if !to.Valid() {
		return domain.NewValidation("status", "status inválido: "+string(to))
	}
	if !o.Status.CanTransitionTo(to) {
		return &domain.TerminalOrderError{NumeroOrdem: o.NumeroOrdem, From: string(o.Status), To: string(to)}
	}
	return nil
}

// Line busca linha pelo id.
func (o *OrdemSaida) Line(id string) (*OrdemSaidaItem, bool) {
	for i := range o.Itens {
		if o.Itens[i].ID == id {
			return &o.Itens[i], true
		}
	}
	return nil, false
}

// Clone cópia com slice de linhas independente.
func (o *OrdemSaida) Clone() *OrdemSaida {
	if o == nil {
		return nil
	}
	c := *o
	c.Itens = append([]OrdemSaidaItem(nil), o.Itens...)
	return &c
}

// FormatNumeroOrdem PREFIXO-ANO-NNNNN, ex. OS-2026-00042.
func FormatNumeroOrdem(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, seq)
}
