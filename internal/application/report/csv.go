package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

var csvHeader = []string{
	"codigo", "nome", "tipo", "tempera", "largura", "altura", "espessura", "polegada",
	"acabamento", "peso_bruto", "peso_liquido", "quantidade", "disponivel", "reservada",
	"avaria", "posicao", "status", "lote_id", "usina", "observacoes",
}

// itemsCSV separador ";" e BOM UTF-8 para abrir direto no Excel em pt-BR.
func itemsCSV(items []*entity.InventoryItem) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, it := range items {
		rec := []string{
			it.Codigo, it.Nome, string(it.Tipo), string(it.Attributes.Tempera),
			dec(it.Attributes.Largura), dec(it.Attributes.Altura), dec(it.Attributes.Espessura), dec(it.Attributes.Polegada),
			it.Acabamento, dec(it.PesoBruto), dec(it.PesoLiquido),
			strconv.Itoa(it.Quantidade), strconv.Itoa(it.QuantidadeDisponivel),
			strconv.Itoa(it.QuantidadeReservada), strconv.Itoa(it.QuantidadeAvaria),
			it.Position.String(), string(it.Status), it.LoteID, it.Usina, it.Observacoes,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func dec(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
