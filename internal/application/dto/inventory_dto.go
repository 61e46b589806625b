package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionDTO posição na torre.
type PositionDTO struct {
	Coluna string `json:"coluna" validate:"required,len=1,alpha"`
	Andar  int    `json:"andar" validate:"min=1,max=99"`
}

// CreateItemRequest entrada de um item. Baldes omitidos: disponível = quantidade - reservada - avaria.
type CreateItemRequest struct {
	Codigo               string           `json:"codigo" validate:"required,max=64"`
	Nome                 string           `json:"nome" validate:"max=200"`
	Tipo                 string           `json:"tipo" validate:"required,oneof=tarugo lingote"`
	Largura              *decimal.Decimal `json:"largura,omitempty"`
	Altura               *decimal.Decimal `json:"altura,omitempty"`
	Espessura            *decimal.Decimal `json:"espessura,omitempty"`
	Polegada             *decimal.Decimal `json:"polegada,omitempty"`
	Tempera              string           `json:"tempera,omitempty" validate:"omitempty,oneof=H14 H16 H18 H24 H26 O T6"`
	Acabamento           string           `json:"acabamento,omitempty" validate:"max=100"`
	PesoBruto            *decimal.Decimal `json:"peso_bruto,omitempty"`
	PesoLiquido          *decimal.Decimal `json:"peso_liquido,omitempty"`
	Quantidade           int              `json:"quantidade" validate:"min=1"`
	QuantidadeDisponivel *int             `json:"quantidade_disponivel,omitempty" validate:"omitempty,min=0"`
	QuantidadeReservada  *int             `json:"quantidade_reservada,omitempty" validate:"omitempty,min=0"`
	QuantidadeAvaria     *int             `json:"quantidade_avaria,omitempty" validate:"omitempty,min=0"`
	Posicao              PositionDTO      `json:"posicao"`
	Observacoes          string           `json:"observacoes,omitempty"`
	ObservacaoDisponivel string           `json:"observacao_disponivel,omitempty"`
	ObservacaoReservado  string           `json:"observacao_reservado,omitempty"`
	ObservacaoAvaria     string           `json:"observacao_avaria,omitempty"`
	LoteID               string           `json:"lote_id,omitempty" validate:"max=64"`
	Usina                string           `json:"usina,omitempty" validate:"max=100"`
}

// CreateBatchRequest entrada em lote: tudo ou nada.
type CreateBatchRequest struct {
	Itens []CreateItemRequest `json:"itens" validate:"required,min=1,dive"`
}

// UpdateItemRequest atualização parcial; campos nil não mudam. A posição muda só por transferência.
type UpdateItemRequest struct {
	Codigo               *string          `json:"codigo,omitempty" validate:"omitempty,min=1,max=64"`
	Nome                 *string          `json:"nome,omitempty" validate:"omitempty,max=200"`
	Tipo                 *string          `json:"tipo,omitempty" validate:"omitempty,oneof=tarugo lingote"`
	Largura              *decimal.Decimal `json:"largura,omitempty"`
	Altura               *decimal.Decimal `json:"altura,omitempty"`
	Espessura            *decimal.Decimal `json:"espessura,omitempty"`
	Polegada             *decimal.Decimal `json:"polegada,omitempty"`
	Tempera              *string          `json:"tempera,omitempty" validate:"omitempty,oneof=H14 H16 H18 H24 H26 O T6"`
	Acabamento           *string          `json:"acabamento,omitempty"`
	PesoBruto            *decimal.Decimal `json:"peso_bruto,omitempty"`
	PesoLiquido          *decimal.Decimal `json:"peso_liquido,omitempty"`
	Quantidade           *int             `json:"quantidade,omitempty" validate:"omitempty,min=0"`
	QuantidadeDisponivel *int             `json:"quantidade_disponivel,omitempty" validate:"omitempty,min=0"`
	QuantidadeReservada  *int             `json:"quantidade_reservada,omitempty" validate:"omitempty,min=0"`
	QuantidadeAvaria     *int             `json:"quantidade_avaria,omitempty" validate:"omitempty,min=0"`
	Observacoes          *string          `json:"observacoes,omitempty"`
	ObservacaoDisponivel *string          `json:"observacao_disponivel,omitempty"`
	ObservacaoReservado  *string          `json:"observacao_reservado,omitempty"`
	ObservacaoAvaria     *string          `json:"observacao_avaria,omitempty"`
	LoteID               *string          `json:"lote_id,omitempty"`
	Usina                *string          `json:"usina,omitempty"`
}

// RemoveQuantityRequest retirada direta de estoque.
type RemoveQuantityRequest struct {
	Quantidade  int    `json:"quantidade"`
	Balde       string `json:"balde,omitempty" validate:"omitempty,oneof=disponivel avaria"`
	Observacoes string `json:"observacoes,omitempty"`
}

// TransferRequest nova posição do item.
type TransferRequest struct {
	Posicao PositionDTO `json:"posicao"`
}

// SearchItemsQuery filtros de GET /api/itens.
type SearchItemsQuery struct {
	Busca      string `query:"busca"`
	Tipo       string `query:"tipo" validate:"omitempty,oneof=tarugo lingote"`
	Acabamento string `query:"acabamento"`
	Tempera    string `query:"tempera" validate:"omitempty,oneof=H14 H16 H18 H24 H26 O T6"`
	Status     string `query:"status" validate:"omitempty,oneof=disponivel indisponivel reservado avaria"`
	Coluna     string `query:"coluna" validate:"omitempty,len=1,alpha"`
	PageRequest
}

// ItemResponse item completo.
type ItemResponse struct {
	ID                   string           `json:"id"`
	Codigo               string           `json:"codigo"`
	Nome                 string           `json:"nome"`
	Tipo                 string           `json:"tipo"`
	Largura              *decimal.Decimal `json:"largura,omitempty"`
	Altura               *decimal.Decimal `json:"altura,omitempty"`
	Espessura            *decimal.Decimal `json:"espessura,omitempty"`
	Polegada             *decimal.Decimal `json:"polegada,omitempty"`
	Tempera              string           `json:"tempera,omitempty"`
	Acabamento           string           `json:"acabamento,omitempty"`
	PesoBruto            *decimal.Decimal `json:"peso_bruto,omitempty"`
	PesoLiquido          *decimal.Decimal `json:"peso_liquido,omitempty"`
	Quantidade           int              `json:"quantidade"`
	QuantidadeDisponivel int              `json:"quantidade_disponivel"`
	QuantidadeReservada  int              `json:"quantidade_reservada"`
	QuantidadeAvaria     int              `json:"quantidade_avaria"`
	Posicao              PositionDTO      `json:"posicao"`
	Status               string           `json:"status"`
	Observacoes          string           `json:"observacoes,omitempty"`
	ObservacaoDisponivel string           `json:"observacao_disponivel,omitempty"`
	ObservacaoReservado  string           `json:"observacao_reservado,omitempty"`
	ObservacaoAvaria     string           `json:"observacao_avaria,omitempty"`
	LoteID               string           `json:"lote_id,omitempty"`
	Usina                string           `json:"usina,omitempty"`
	Version              int64            `json:"version"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// RemoveQuantityResponse Excluido indica que o item zerou e foi removido.
type RemoveQuantityResponse struct {
	Excluido bool          `json:"excluido"`
	Item     *ItemResponse `json:"item,omitempty"`
}
