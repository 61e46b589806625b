package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// FloorsInput aceita [1,2,3] ou "1-3, 5".
type FloorsInput []int

func (f *FloorsInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		floors, err := entity.ParseFloors(s)
		if err != nil {
			return err
		}
		*f = floors
		return nil
	}
	var floors []int
	if err := json.Unmarshal(b, &floors); err != nil {
		return fmt.Errorf("andares: esperado lista ou texto: %w", err)
	}
	*f = floors
	return nil
}

// TowerConfigRequest nova configuração da torre.
type TowerConfigRequest struct {
	Colunas map[string]FloorsInput `json:"colunas" validate:"required,min=1"`
}

// ToConfig converte para o tipo de domínio (ainda sem normalizar).
func (r TowerConfigRequest) ToConfig() entity.TowerConfig {
	cfg := make(entity.TowerConfig, len(r.Colunas))
	for col, floors := range r.Colunas {
		cfg[col] = []int(floors)
	}
	return cfg
}

// TowerConfigResponse configuração atual e lista de posições válidas.
type TowerConfigResponse struct {
	Colunas  map[string][]int `json:"colunas"`
	Posicoes []string         `json:"posicoes"`
	Total    int              `json:"total"`
}

// ItemSummary resumo do item na visão da torre.
type ItemSummary struct {
	ID         string `json:"id"`
	Codigo     string `json:"codigo"`
	Tipo       string `json:"tipo"`
	Quantidade int    `json:"quantidade"`
	Status     string `json:"status"`
}

// PositionOverviewResponse ocupação de uma posição.
type PositionOverviewResponse struct {
	Posicao string        `json:"posicao"`
	Coluna  string        `json:"coluna"`
	Andar   int           `json:"andar"`
	Ocupada bool          `json:"ocupada"`
	Itens   []ItemSummary `json:"itens"`
}
