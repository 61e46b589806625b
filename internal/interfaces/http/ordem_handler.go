package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/application/ordem"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

// OrdemHandler ordens de saída.
type OrdemHandler struct {
	uc *ordem.UseCase
}

func NewOrdemHandler(uc *ordem.UseCase) *OrdemHandler {
	return &OrdemHandler{uc: uc}
}

// Create godoc
// @Summary      Criar ordem de saída (reserva os itens)
// @Tags         ordens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Chave contra envio duplicado"
// @Param        body  body  dto.CreateOrdemRequest  true  "Linhas da ordem"
// @Success      201   {object}  dto.OrdemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ordens [post]
func (h *OrdemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrdemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.CriarOrdem(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromOrdem(o))
}

// GetByID godoc
// @Summary      Obter ordem com as linhas
// @Tags         ordens
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da ordem"
// @Success      200  {object}  dto.OrdemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordens/{id} [get]
func (h *OrdemHandler) GetByID(c *fiber.Ctx) error {
	o, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrdem(o))
}

// List godoc
// @Summary      Listar ordens (mais recentes primeiro)
// @Tags         ordens
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Status"
// @Param        busca   query  string  false  "Trecho do número da ordem"
// @Param        limit   query  int     false  "Limite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.OrdemResponse]
// @Router       /api/ordens [get]
func (h *OrdemHandler) List(c *fiber.Ctx) error {
	var q dto.ListOrdensQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	q.DefaultPage()
	ordens, total, err := h.uc.List(c.UserContext(), repository.OrdemFilter{
		Status: entity.OrdemStatus(q.Status),
		Search: q.Busca,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.OrdemResponse, 0, len(ordens))
	for _, o := range ordens {
		out = append(out, dto.FromOrdem(o))
	}
	return c.JSON(dto.ListResponse[dto.OrdemResponse]{
		Items: out,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	})
}

// Update godoc
// @Summary      Editar ordem não encerrada
// @Tags         ordens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da ordem"
// @Param        body  body  dto.UpdateOrdemRequest  true  "Observações e linhas"
// @Success      200   {object}  dto.OrdemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ordens/{id} [patch]
func (h *OrdemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrdemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.AtualizarOrdem(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrdem(o))
}

// UpdateStatus godoc
// @Summary      Mudar status da ordem
// @Description  concluida consome a reserva; cancelada devolve ao estoque disponível.
// @Tags         ordens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da ordem"
// @Param        body  body  dto.UpdateOrdemStatusRequest  true  "Novo status"
// @Success      200   {object}  dto.OrdemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ordens/{id}/status [patch]
func (h *OrdemHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrdemStatusRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.AtualizarStatus(c.UserContext(), GetActor(c), c.Params("id"), entity.OrdemStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrdem(o))
}
