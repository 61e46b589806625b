package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-tarugos/internal/application/report"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/pdf"
)

var meta = report.Meta{
	Title:       "Relatório de Estoque",
	GeneratedBy: entity.Actor{ID: "u1", Nome: "Operador", Email: "op@empresa.com"},
	GeneratedAt: time.Date(2026, 4, 2, 14, 30, 0, 0, time.UTC),
}

func TestOrdemPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Alumínio Forte")
	o := &entity.OrdemSaida{
		NumeroOrdem: "OS-2026-00012",
		DataEmissao: meta.GeneratedAt,
		UsuarioNome: "Operador",
		Status:      entity.OrdemEmSeparacao,
		Observacoes: "Retirar no portão 2",
		Itens: []entity.OrdemSaidaItem{
			{Codigo: "TR-6063", Tipo: "tarugo", Quantidade: 4, Position: entity.NewStoragePosition("A", 1), Empresa: "Metalúrgica Sul"},
			{Codigo: "LG-1050", Tipo: "lingote", Quantidade: 1, Position: entity.NewStoragePosition("C", 3)},
		},
	}

	b, err := g.OrdemPDF(context.Background(), o, meta)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestInventoryPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("")
	w := decimal.RequireFromString("152.4")
	items := []*entity.InventoryItem{
		{Codigo: "TR-1", Tipo: entity.ItemTypeTarugo, Quantidade: 10, QuantidadeDisponivel: 6, QuantidadeReservada: 4,
			Attributes: entity.ItemAttributes{Largura: &w, Tempera: entity.TemperaT6}, Position: entity.NewStoragePosition("B", 2),
			Status: entity.ItemStatusDisponivel},
		{Codigo: "TR-2", Tipo: entity.ItemTypeTarugo, Quantidade: 2, QuantidadeAvaria: 2, Position: entity.NewStoragePosition("B", 3),
			Status: entity.ItemStatusAvaria},
	}

	b, err := g.InventoryPDF(context.Background(), items, meta)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	empty, err := g.InventoryPDF(context.Background(), nil, meta)
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
