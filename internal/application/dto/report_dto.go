package dto

import (
	"time"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// ReportItemsQuery mesmos filtros da busca de itens, sem paginação.
type ReportItemsQuery struct {
	Busca      string `query:"busca"`
	Tipo       string `query:"tipo" validate:"omitempty,oneof=tarugo lingote"`
	Acabamento string `query:"acabamento"`
	Tempera    string `query:"tempera" validate:"omitempty,oneof=H14 H16 H18 H24 H26 O T6"`
	Status     string `query:"status" validate:"omitempty,oneof=disponivel indisponivel reservado avaria"`
	Coluna     string `query:"coluna" validate:"omitempty,len=1,alpha"`
}

// ReportLogResponse quem gerou qual relatório.
type ReportLogResponse struct {
	ID         string    `json:"id"`
	ReportType string    `json:"report_type"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserEmail  string    `json:"user_email"`
	Timestamp  time.Time `json:"timestamp"`
}

func FromReportLog(l *entity.ReportLog) ReportLogResponse {
	return ReportLogResponse{
		ID:         l.ID,
		ReportType: l.ReportType,
		UserID:     l.UserID,
		UserName:   l.UserName,
		UserEmail:  l.UserEmail,
		Timestamp:  l.Timestamp,
	}
}
