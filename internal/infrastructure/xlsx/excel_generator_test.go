package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/report"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/xlsx"
)

func TestMovementsXLSX(t *testing.T) {
	at := time.Date(2026, 6, 1, 10, 15, 0, 0, time.UTC)
	ms := []*entity.StockMovement{
		{Codigo: "TR-1", Tipo: entity.MovementEntrada, Quantidade: 10, Position: entity.NewStoragePosition("A", 1),
			Timestamp: at, UserName: "Operador", UserEmail: "op@empresa.com"},
		{Codigo: "TR-1", Tipo: entity.MovementSaida, Quantidade: 4, Position: entity.NewStoragePosition("A", 1),
			Observacoes: "Ordem de Saída OS-2026-00001 - Em Separação", Timestamp: at.Add(time.Hour), UserName: "Operador"},
	}

	b, err := xlsx.NewExcelGenerator().MovementsXLSX(context.Background(), ms, report.Meta{Title: "Movimentações", GeneratedAt: at})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsx.SheetMovements)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Código", rows[0][2])
	assert.Equal(t, "Entrada", rows[1][1])
	assert.Equal(t, "10", rows[1][3])
	assert.Equal(t, "Saída", rows[2][1])
	assert.Equal(t, "A1", rows[2][4])
	assert.Equal(t, "Ordem de Saída OS-2026-00001 - Em Separação", rows[2][5])
}

func TestMovementsXLSX_Vazio(t *testing.T) {
	b, err := xlsx.NewExcelGenerator().MovementsXLSX(context.Background(), nil, report.Meta{GeneratedAt: time.Now()})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(xlsx.SheetMovements)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
