package entity

import "time"

// Tipos de relatório registrados.
const (
	ReportInventoryPDF = "estoque_pdf"
	ReportOrdemPDF     = "ordem_saida_pdf"
	ReportMovementXLSX = "movimentacoes_xlsx"
	ReportItemsCSV     = "itens_csv"
)

// ReportLog quem gerou qual relatório e quando.
type ReportLog struct {
	ID         string
	ReportType string
	UserID     string
	UserName   string
	UserEmail  string
	Timestamp  time.Time
}
