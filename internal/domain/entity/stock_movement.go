package entity

import "time"

// MovementType entrada ou saída.
type MovementType string

const (
	MovementEntrada MovementType = "entrada"
	MovementSaida   MovementType = "saida"
)

func (t MovementType) Valid() bool {
	return t == MovementEntrada || t == MovementSaida
}

// StockMovement registro de auditoria, somente inclusão.
// ItemID fica vazio quando o item foi excluído depois; Codigo guarda a referência.
type StockMovement struct {
	ID          string
	ItemID      string
	Codigo      string
	Tipo        MovementType
	Quantidade  int
	Position    StoragePosition
	Observacoes string
	Timestamp   time.Time
	UserID      string
	UserName    string
	UserEmail   string
}
