package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/application/report"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

// ReportHandler downloads de relatórios.
type ReportHandler struct {
	uc *report.UseCase
}

func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryPDF godoc
// @Summary      Relatório de estoque em PDF
// @Tags         relatorios
// @Security     Bearer
// @Produce      application/pdf
// @Param        busca   query  string  false  "Texto livre"
// @Param        tipo    query  string  false  "tarugo | lingote"
// @Param        status  query  string  false  "Status"
// @Success      200
// @Router       /api/relatorios/estoque.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	f, err := reportItemFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	file, err := h.uc.InventoryPDF(c.UserContext(), GetActor(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// ItemsCSV godoc
// @Summary      Itens em CSV
// @Tags         relatorios
// @Security     Bearer
// @Produce      text/csv
// @Success      200
// @Router       /api/relatorios/itens.csv [get]
func (h *ReportHandler) ItemsCSV(c *fiber.Ctx) error {
	f, err := reportItemFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	file, err := h.uc.ItemsCSV(c.UserContext(), GetActor(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// OrdemPDF godoc
// @Summary      Ordem de saída em PDF
// @Tags         relatorios
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da ordem"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/relatorios/ordens/{id}.pdf [get]
func (h *ReportHandler) OrdemPDF(c *fiber.Ctx) error {
	file, err := h.uc.OrdemPDF(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// MovementsXLSX godoc
// @Summary      Movimentações em planilha
// @Tags         relatorios
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from     query  string  false  "Data inicial"
// @Param        to       query  string  false  "Data final"
// @Param        item_id  query  string  false  "ID do item"
// @Param        tipo     query  string  false  "entrada | saida"
// @Success      200
// @Router       /api/relatorios/movimentos.xlsx [get]
func (h *ReportHandler) MovementsXLSX(c *fiber.Ctx) error {
	var q dto.ListMovementsQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	f, err := movementFilter(q)
	if err != nil {
		return writeError(c, err)
	}
	file, err := h.uc.MovementsXLSX(c.UserContext(), GetActor(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// Logs godoc
// @Summary      Últimos relatórios gerados
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Limite"  default(100)
// @Success      200  {array}  dto.ReportLogResponse
// @Router       /api/relatorios/logs [get]
func (h *ReportHandler) Logs(c *fiber.Ctx) error {
	logs, err := h.uc.Logs(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ReportLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.FromReportLog(l))
	}
	return c.JSON(out)
}

func reportItemFilter(c *fiber.Ctx) (repository.ItemFilter, error) {
	var q dto.ReportItemsQuery
	if err := parseQuery(c, &q); err != nil {
		return repository.ItemFilter{}, err
	}
	return repository.ItemFilter{
		Search:     q.Busca,
		Tipo:       entity.ItemType(q.Tipo),
		Acabamento: q.Acabamento,
		Tempera:    entity.Tempera(q.Tempera),
		Status:     entity.ItemStatus(q.Status),
		Column:     q.Coluna,
	}, nil
}

func sendFile(c *fiber.Ctx, f *report.File) error {
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}
