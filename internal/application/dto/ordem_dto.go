package dto

import "time"

// CreateOrdemLine linha de uma nova ordem. Codigo/Tipo vazios são copiados do item.
type CreateOrdemLine struct {
	ItemID      string `json:"item_id" validate:"required"`
	Codigo      string `json:"codigo,omitempty"`
	Tipo        string `json:"tipo,omitempty"`
	Quantidade  int    `json:"quantidade" validate:"min=1"`
	Empresa     string `json:"empresa,omitempty" validate:"max=200"`
	Observacoes string `json:"observacoes,omitempty"`
}

// CreateOrdemRequest cabeçalho e linhas.
type CreateOrdemRequest struct {
	Observacoes string            `json:"observacoes,omitempty"`
	Itens       []CreateOrdemLine `json:"itens" validate:"required,min=1,dive"`
}

// UpdateOrdemLine alteração de uma linha existente.
type UpdateOrdemLine struct {
	ID          string  `json:"id" validate:"required"`
	Codigo      *string `json:"codigo,omitempty"`
	Tipo        *string `json:"tipo,omitempty"`
	Quantidade  *int    `json:"quantidade,omitempty" validate:"omitempty,min=1"`
	Empresa     *string `json:"empresa,omitempty"`
	Observacoes *string `json:"observacoes,omitempty"`
}

// UpdateOrdemRequest edição de ordem não encerrada.
type UpdateOrdemRequest struct {
	Observacoes *string           `json:"observacoes,omitempty"`
	Itens       []UpdateOrdemLine `json:"itens,omitempty" validate:"dive"`
}

// UpdateOrdemStatusRequest mudança de status.
type UpdateOrdemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=em_separacao aguardando_envio concluida cancelada"`
}

// ListOrdensQuery filtros de GET /api/ordens.
type ListOrdensQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=em_separacao aguardando_envio concluida cancelada"`
	Busca  string `query:"busca"`
	PageRequest
}

// OrdemLineResponse linha da ordem.
type OrdemLineResponse struct {
	ID          string      `json:"id"`
	ItemID      string      `json:"item_id"`
	Codigo      string      `json:"codigo"`
	Tipo        string      `json:"tipo"`
	Quantidade  int         `json:"quantidade"`
	Posicao     PositionDTO `json:"posicao"`
	Empresa     string      `json:"empresa,omitempty"`
	Observacoes string      `json:"observacoes,omitempty"`
}

// OrdemResponse ordem com linhas.
type OrdemResponse struct {
	ID           string              `json:"id"`
	NumeroOrdem  string              `json:"numero_ordem"`
	DataEmissao  time.Time           `json:"data_emissao"`
	UsuarioID    string              `json:"usuario_id"`
	UsuarioNome  string              `json:"usuario_nome"`
	UsuarioEmail string              `json:"usuario_email"`
	Status       string              `json:"status"`
	StatusLabel  string              `json:"status_label"`
	Observacoes  string              `json:"observacoes,omitempty"`
	Itens        []OrdemLineResponse `json:"itens"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
