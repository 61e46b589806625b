// Package pdf gera os relatórios em PDF com maroto v2.
//
// Layout da ordem de saída (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Sistema de Estoque          │  ORDEM DE SAÍDA Nº + Data     │
//	│  Emitido por / Status                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Código | Material | Qtde | Posição | Empresa/Obs   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Observações gerais                                         │
//	│  Retirado por ____________      Liberado por ____________   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	mentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-tarugos/internal/application/report"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 41, Green: 128, Blue: 185}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ report.PDFRenderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.PDFRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator company vai no cabeçalho de todos os documentos.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: nonEmpty(company, "Sistema de Estoque")}
}

// OrdemPDF documento de retirada com as linhas da ordem.
func (g *MarotoPDFGenerator) OrdemPDF(_ context.Context, o *entity.OrdemSaida, meta report.Meta) ([]byte, error) {
	m := maroto.New(g.config(pagesize.A4, orientation.Vertical, "Ordem de Saída "+o.NumeroOrdem, meta))

	m.AddRows(g.headerRow("ORDEM DE SAÍDA", o.NumeroOrdem, o.DataEmissao.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(12).Add(col.New(12).Add(
		text.New("Emitido por: "+nonEmpty(o.UsuarioNome, "N/A"), props.Text{Size: 9, Top: 1}),
		text.New(fmt.Sprintf("Email: %s   |   Status: %s", nonEmpty(o.UsuarioEmail, "N/A"), o.Status.Label()),
			props.Text{Size: 8, Top: 6, Color: colorGray}),
	)))

	m.AddRows(tableHeader([]column{
		{"Código", 2, align.Left}, {"Material", 2, align.Left}, {"Qtde", 1, align.Center},
		{"Posição", 2, align.Center}, {"Empresa/Observação", 5, align.Left},
	}))
	for i, l := range o.Itens {
		r := row.New(7).Add(
			cell(l.Codigo, 2, align.Left),
			cell(nonEmpty(l.Tipo, "N/A"), 2, align.Left),
			cell(strconv.Itoa(l.Quantidade), 1, align.Center),
			cell(l.Position.String(), 2, align.Center),
			cell(joinNonEmpty(l.Empresa, l.Observacoes), 5, align.Left),
		)
		m.AddRows(stripe(r, i))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if o.Observacoes != "" {
		m.AddRows(row.New(14).Add(col.New(12).Add(
			text.New("Observações Gerais:", props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
			text.New(o.Observacoes, props.Text{Size: 8, Top: 8}),
		)))
	}

	m.AddRows(row.New(25))
	m.AddRows(row.New(12).Add(
		col.New(5).Add(
			line.New(props.Line{Thickness: 0.3}),
			text.New("Retirado por:", props.Text{Size: 9, Top: 2}),
		),
		col.New(2),
		col.New(5).Add(
			line.New(props.Line{Thickness: 0.3}),
			text.New("Liberado por:", props.Text{Size: 9, Top: 2}),
		),
	))
	m.AddRows(footerRow(meta))

	return generate(m)
}

// InventoryPDF posição do estoque, uma linha por item, em paisagem.
func (g *MarotoPDFGenerator) InventoryPDF(_ context.Context, items []*entity.InventoryItem, meta report.Meta) ([]byte, error) {
	m := maroto.New(g.config(pagesize.A4, orientation.Horizontal, meta.Title, meta))

	m.AddRows(g.headerRow("RELATÓRIO DE ESTOQUE", fmt.Sprintf("%d itens", len(items)), meta.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeader([]column{
		{"Código", 2, align.Left}, {"Tipo", 1, align.Left}, {"Medidas", 2, align.Left}, {"Têmpera", 1, align.Center},
		{"Posição", 1, align.Center}, {"Total", 1, align.Right}, {"Disp.", 1, align.Right},
		{"Res.", 1, align.Right}, {"Avaria", 1, align.Right}, {"Status", 1, align.Center},
	}))
	var total, disp, res, av int
	for i, it := range items {
		r := row.New(7).Add(
			cell(it.Codigo, 2, align.Left),
			cell(string(it.Tipo), 1, align.Left),
			cell(dimensions(it.Attributes), 2, align.Left),
			cell(nonEmpty(string(it.Attributes.Tempera), "-"), 1, align.Center),
			cell(it.Position.String(), 1, align.Center),
			cell(strconv.Itoa(it.Quantidade), 1, align.Right),
			cell(strconv.Itoa(it.QuantidadeDisponivel), 1, align.Right),
			cell(strconv.Itoa(it.QuantidadeReservada), 1, align.Right),
			cell(strconv.Itoa(it.QuantidadeAvaria), 1, align.Right),
			cell(string(it.Status), 1, align.Center),
		)
		m.AddRows(stripe(r, i))
		total += it.Quantidade
		disp += it.QuantidadeDisponivel
		res += it.QuantidadeReservada
		av += it.QuantidadeAvaria
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	bold := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1}))
	}
	m.AddRows(row.New(7).Add(
		col.New(7).Add(text.New("TOTAIS", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Color: colorPrimary})),
		bold(strconv.Itoa(total), 1), bold(strconv.Itoa(disp), 1), bold(strconv.Itoa(res), 1), bold(strconv.Itoa(av), 1),
		col.New(1),
	))
	m.AddRows(footerRow(meta))

	return generate(m)
}

// ── Seções ────────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) config(size pagesize.Type, o orientation.Type, title string, meta report.Meta) *mentity.Config {
	return config.NewBuilder().
		WithPageSize(size).
		WithOrientation(o).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(meta.GeneratedBy.Nome, g.company), true).
		WithCreator(g.company, true).
		Build()
}

// headerRow: empresa (esq.) e título + número + data (dir.).
func (g *MarotoPDFGenerator) headerRow(title, number, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Controle de tarugos e lingotes", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Data: "+date, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

type column struct {
	label string
	size  int
	align align.Type
}

func tableHeader(cols []column) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

// stripe zebra nas linhas pares.
func stripe(r core.Row, i int) core.Row {
	if i%2 == 1 {
		return r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

func footerRow(meta report.Meta) core.Row {
	by := nonEmpty(meta.GeneratedBy.Nome, meta.GeneratedBy.Email)
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Gerado por %s em %s", nonEmpty(by, "N/A"), meta.GeneratedAt.Format("02/01/2006 15:04")),
			props.Text{Size: 7, Color: colorGray, Top: 4, Align: align.Right}),
	))
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return nonEmpty(b, "-")
	case b == "":
		return a
	}
	return a + " / " + b
}

// dimensions "L x A x E" com as medidas presentes, ou a polegada.
func dimensions(a entity.ItemAttributes) string {
	var out string
	for _, d := range []*decimal.Decimal{a.Largura, a.Altura, a.Espessura} {
		if d == nil {
			continue
		}
		if out != "" {
			out += " x "
		}
		out += d.String()
	}
	if a.Polegada != nil {
		if out != "" {
			out += " "
		}
		out += a.Polegada.String() + "\""
	}
	return nonEmpty(out, "-")
}
