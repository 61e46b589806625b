package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-tarugos/internal/application/report"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

var gerente = entity.Actor{ID: "g1", Nome: "Gerente", Email: "gerente@empresa.com"}

type pdfMock struct{ mock.Mock }

func (m *pdfMock) InventoryPDF(ctx context.Context, items []*entity.InventoryItem, meta report.Meta) ([]byte, error) {
	args := m.Called(ctx, items, meta)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *pdfMock) OrdemPDF(ctx context.Context, o *entity.OrdemSaida, meta report.Meta) ([]byte, error) {
	args := m.Called(ctx, o, meta)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type sheetMock struct{ mock.Mock }

func (m *sheetMock) MovementsXLSX(ctx context.Context, ms []*entity.StockMovement, meta report.Meta) ([]byte, error) {
	args := m.Called(ctx, ms, meta)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func seed(t *testing.T, s *memory.Store) {
	t.Helper()
	ctx := context.Background()
	for i, cod := range []string{"TR-1", "TR-2"} {
		it := &entity.InventoryItem{ID: cod, Codigo: cod, Nome: "Tarugo; 6063", Tipo: entity.ItemTypeTarugo,
			Quantidade: 5, QuantidadeDisponivel: 5, Position: entity.NewStoragePosition("A", i+1), CreatedAt: time.Now()}
		it.RefreshStatus()
		require.NoError(t, s.Repos().Items.Create(ctx, it))
	}
}

func TestInventoryPDF_RegistraLog(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	logs := memory.NewReportLogRepository(s)
	pdf := new(pdfMock)
	pdf.On("InventoryPDF", mock.Anything, mock.MatchedBy(func(items []*entity.InventoryItem) bool { return len(items) == 2 }),
		mock.MatchedBy(func(m report.Meta) bool { return m.GeneratedBy == gerente })).
		Return([]byte("%PDF-1.3"), nil).Once()
	uc := report.NewUseCase(s, logs, pdf, new(sheetMock), logger.Nop())

	f, err := uc.InventoryPDF(context.Background(), gerente, repository.ItemFilter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, report.ContentTypePDF, f.ContentType)
	assert.Equal(t, []byte("%PDF-1.3"), f.Data)
	pdf.AssertExpectations(t)

	got, err := uc.Logs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entity.ReportInventoryPDF, got[0].ReportType)
	assert.Equal(t, gerente.Email, got[0].UserEmail)
}

func TestOrdemPDF(t *testing.T) {
	s := memory.NewStore()
	o := &entity.OrdemSaida{ID: "o1", NumeroOrdem: "OS-2026-00003", Status: entity.OrdemEmSeparacao}
	require.NoError(t, s.Repos().Ordens.Create(context.Background(), o))
	pdf := new(pdfMock)
	pdf.On("OrdemPDF", mock.Anything, mock.MatchedBy(func(got *entity.OrdemSaida) bool { return got.ID == "o1" }), mock.Anything).
		Return([]byte("pdf"), nil).Once()
	uc := report.NewUseCase(s, memory.NewReportLogRepository(s), pdf, new(sheetMock), logger.Nop())

	f, err := uc.OrdemPDF(context.Background(), gerente, "o1")
	require.NoError(t, err)
	assert.Equal(t, "ordem-OS-2026-00003.pdf", f.Name)

	_, err = uc.OrdemPDF(context.Background(), gerente, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	pdf.AssertExpectations(t)
}

func TestMovementsXLSX_IntervaloEErro(t *testing.T) {
	s := memory.NewStore()
	sheet := new(sheetMock)
	sheet.On("MovementsXLSX", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("disco cheio")).Once()
	logs := memory.NewReportLogRepository(s)
	uc := report.NewUseCase(s, logs, new(pdfMock), sheet, logger.Nop())

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)
	_, err := uc.MovementsXLSX(context.Background(), gerente, repository.MovementFilter{From: &from, To: &to})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.MovementsXLSX(context.Background(), gerente, repository.MovementFilter{})
	require.Error(t, err)

	got, err := logs.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got, "relatório que falhou não é registrado")
	sheet.AssertExpectations(t)
}

func TestItemsCSV(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	uc := report.NewUseCase(s, memory.NewReportLogRepository(s), new(pdfMock), new(sheetMock), logger.Nop())

	f, err := uc.ItemsCSV(context.Background(), gerente, repository.ItemFilter{})
	require.NoError(t, err)
	assert.Equal(t, report.ContentTypeCSV, f.ContentType)
	require.True(t, bytes.HasPrefix(f.Data, []byte("\ufeff")))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(f.Data, []byte("\ufeff"))))
	r.Comma = ';'
	recs, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "codigo", recs[0][0])
	assert.Equal(t, "Tarugo; 6063", recs[1][1])
	assert.Equal(t, "disponivel", recs[1][16])
}
