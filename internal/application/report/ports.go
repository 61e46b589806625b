package report

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// Meta cabeçalho comum dos relatórios.
type Meta struct {
	Title       string
	GeneratedBy entity.Actor
	GeneratedAt time.Time
	From, To    *time.Time
}

// PDFRenderer porta de saída para relatórios em PDF (implementado com maroto).
type PDFRenderer interface {
	InventoryPDF(ctx context.Context, items []*entity.InventoryItem, meta Meta) ([]byte, error)
	OrdemPDF(ctx context.Context, o *entity.OrdemSaida, meta Meta) ([]byte, error)
}

// SpreadsheetRenderer porta de saída para planilhas (implementado com excelize).
type SpreadsheetRenderer interface {
	MovementsXLSX(ctx context.Context, ms []*entity.StockMovement, meta Meta) ([]byte, error)
}
