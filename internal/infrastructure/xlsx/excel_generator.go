// Package xlsx gera planilhas com excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/report"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// SheetMovements nome da aba de movimentações.
const SheetMovements = "Movimentações"

var movementHeader = []any{"Data", "Tipo", "Código", "Quantidade", "Posição", "Observações", "Usuário", "Email"}

var _ report.SpreadsheetRenderer = (*ExcelGenerator)(nil)

type ExcelGenerator struct{}

func NewExcelGenerator() *ExcelGenerator { return &ExcelGenerator{} }

// MovementsXLSX uma linha por movimentação; a linha 1 é o cabeçalho e fica congelada.
func (g *ExcelGenerator) MovementsXLSX(_ context.Context, ms []*entity.StockMovement, meta report.Meta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetMovements); err != nil {
		return nil, fmt.Errorf("xlsx: renomear aba: %w", err)
	}
	header := movementHeader
	if err := f.SetSheetRow(SheetMovements, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabeçalho: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2980B9"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(SheetMovements, "A1", "H1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr("dd/mm/yyyy hh:mm")})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, m := range ms {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{
			m.Timestamp, tipoLabel(m.Tipo), m.Codigo, m.Quantidade, m.Position.String(),
			m.Observacoes, m.UserName, m.UserEmail,
		}
		if err := f.SetSheetRow(SheetMovements, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: linha %d: %w", i+2, err)
		}
		if err := f.SetCellStyle(SheetMovements, cell, cell, dateStyle); err != nil {
			return nil, fmt.Errorf("xlsx: linha %d: %w", i+2, err)
		}
	}

	widths := map[string]float64{"A": 18, "B": 10, "C": 16, "D": 12, "E": 10, "F": 50, "G": 22, "H": 28}
	for c, w := range widths {
		if err := f.SetColWidth(SheetMovements, c, c, w); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(SheetMovements, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   meta.Title,
		Creator: meta.GeneratedBy.Nome,
		Created: meta.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: gravar: %w", err)
	}
	return buf.Bytes(), nil
}

func tipoLabel(t entity.MovementType) string {
	if t == entity.MovementEntrada {
		return "Entrada"
	}
	return "Saída"
}

func ptr[T any](v T) *T { return &v }
