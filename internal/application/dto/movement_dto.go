package dto

import "time"

// ListMovementsQuery filtros de GET /api/movimentos. Datas em RFC3339 ou AAAA-MM-DD.
type ListMovementsQuery struct {
	ItemID string `query:"item_id"`
	Tipo   string `query:"tipo" validate:"omitempty,oneof=entrada saida"`
	From   string `query:"from"`
	To     string `query:"to"`
	PageRequest
}

// MovementResponse movimentação registrada.
type MovementResponse struct {
	ID          string      `json:"id"`
	ItemID      string      `json:"item_id,omitempty"`
	Codigo      string      `json:"codigo"`
	Tipo        string      `json:"tipo"`
	Quantidade  int         `json:"quantidade"`
	Posicao     PositionDTO `json:"posicao"`
	Observacoes string      `json:"observacoes,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	UserID      string      `json:"user_id"`
	UserName    string      `json:"user_name"`
	UserEmail   string      `json:"user_email"`
}
