// Package report gera os relatórios de estoque, ordens e movimentações e registra quem os gerou.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

// File relatório pronto para download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

type UseCase struct {
	tx    ports.TxRunner
	logs  repository.ReportLogRepository
	pdf   PDFRenderer
	sheet SpreadsheetRenderer
	log   *logger.Logger
	now   func() time.Time
}

func NewUseCase(tx ports.TxRunner, logs repository.ReportLogRepository, pdf PDFRenderer, sheet SpreadsheetRenderer, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, logs: logs, pdf: pdf, sheet: sheet, log: log.Named("relatorios"), now: time.Now}
}

// InventoryPDF posição atual do estoque com os mesmos filtros da busca de itens.
func (uc *UseCase) InventoryPDF(ctx context.Context, actor entity.Actor, f repository.ItemFilter) (*File, error) {
	items, err := uc.allItems(ctx, f)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	data, err := uc.pdf.InventoryPDF(ctx, items, Meta{Title: "Relatório de Estoque", GeneratedBy: actor, GeneratedAt: now})
	if err != nil {
		return nil, fmt.Errorf("relatório de estoque: %w", err)
	}
	uc.record(ctx, actor, entity.ReportInventoryPDF, now)
	return &File{Name: "estoque-" + now.Format("2006-01-02") + ".pdf", ContentType: ContentTypePDF, Data: data}, nil
}

// OrdemPDF documento de uma ordem de saída com espaço para assinaturas.
func (uc *UseCase) OrdemPDF(ctx context.Context, actor entity.Actor, id string) (*File, error) {
	o, err := uc.tx.Repos().Ordens.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ler ordem: %w", err)
	}
	if o == nil {
		return nil, domain.NewNotFound("ordem_saida", id)
	}
	now := uc.now()
	data, err := uc.pdf.OrdemPDF(ctx, o, Meta{Title: "Ordem de Saída", GeneratedBy: actor, GeneratedAt: now})
	if err != nil {
		return nil, fmt.Errorf("pdf da ordem %s: %w", o.NumeroOrdem, err)
	}
	uc.record(ctx, actor, entity.ReportOrdemPDF, now)
	return &File{Name: "ordem-" + o.NumeroOrdem + ".pdf", ContentType: ContentTypePDF, Data: data}, nil
}

// MovementsXLSX entradas e saídas no intervalo informado.
func (uc *UseCase) MovementsXLSX(ctx context.Context, actor entity.Actor, f repository.MovementFilter) (*File, error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, domain.NewValidation("from", "data inicial depois da data final")
	}
	f.Limit, f.Offset = 0, 0
	ms, _, err := uc.tx.Repos().Movements.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar movimentações: %w", err)
	}
	now := uc.now()
	data, err := uc.sheet.MovementsXLSX(ctx, ms, Meta{Title: "Movimentações", GeneratedBy: actor, GeneratedAt: now, From: f.From, To: f.To})
	if err != nil {
		return nil, fmt.Errorf("planilha de movimentações: %w", err)
	}
	uc.record(ctx, actor, entity.ReportMovementXLSX, now)
	return &File{Name: "movimentacoes-" + now.Format("2006-01-02") + ".xlsx", ContentType: ContentTypeXLSX, Data: data}, nil
}

// ItemsCSV exportação simples dos itens filtrados.
func (uc *UseCase) ItemsCSV(ctx context.Context, actor entity.Actor, f repository.ItemFilter) (*File, error) {
	items, err := uc.allItems(ctx, f)
	if err != nil {
		return nil, err
	}
	data, err := itemsCSV(items)
	if err != nil {
		return nil, fmt.Errorf("csv de itens: %w", err)
	}
	now := uc.now()
	uc.record(ctx, actor, entity.ReportItemsCSV, now)
	return &File{Name: "itens-" + now.Format("2006-01-02") + ".csv", ContentType: ContentTypeCSV, Data: data}, nil
}

// Logs últimos relatórios gerados.
func (uc *UseCase) Logs(ctx context.Context, limit int) ([]*entity.ReportLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return uc.logs.List(ctx, limit)
}

func (uc *UseCase) allItems(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	f.Limit, f.Offset = 0, 0
	items, _, err := uc.tx.Repos().Items.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar itens: %w", err)
	}
	return items, nil
}

// record falha ao registrar não impede o download.
func (uc *UseCase) record(ctx context.Context, actor entity.Actor, kind string, at time.Time) {
	l := &entity.ReportLog{
		ID:         uuid.New().String(),
		ReportType: kind,
		UserID:     actor.ID,
		UserName:   actor.Nome,
		UserEmail:  actor.Email,
		Timestamp:  at,
	}
	if err := uc.logs.Create(ctx, l); err != nil {
		uc.log.Warn().Err(err).Str("report_type", kind).Str("actor_id", actor.ID).Msg("registrar relatório")
		return
	}
	uc.log.Info().Str("report_type", kind).Str("actor_id", actor.ID).Msg("relatório gerado")
}
