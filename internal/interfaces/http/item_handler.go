package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/application/inventory"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

// ItemHandler entradas, edição, retiradas e transferências de itens.
type ItemHandler struct {
	uc *inventory.LedgerUseCase
}

func NewItemHandler(uc *inventory.LedgerUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Dar entrada em um item
// @Tags         itens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Dados do item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/itens [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	it, err := h.uc.AddItem(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromItem(it))
}

// CreateBatch godoc
// @Summary      Entrada em lote (tudo ou nada)
// @Tags         itens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Itens"
// @Success      201   {array}   dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/itens/lote [post]
func (h *ItemHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.AddBatch(c.UserContext(), GetActor(c), in.Itens)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromItems(items))
}

// GetByID godoc
// @Summary      Obter item
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	it, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromItem(it))
}

// Search godoc
// @Summary      Buscar itens
// @Tags         itens
// @Security     Bearer
// @Produce      json
// @Param        busca       query  string  false  "Texto livre (código, nome, acabamento, lote, usina)"
// @Param        tipo        query  string  false  "tarugo | lingote"
// @Param        tempera     query  string  false  "Têmpera"
// @Param        status      query  string  false  "Status"
// @Param        coluna      query  string  false  "Coluna da torre"
// @Param        limit       query  int     false  "Limite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.ItemResponse]
// @Router       /api/itens [get]
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	var q dto.SearchItemsQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	q.DefaultPage()
	items, total, err := h.uc.Search(c.UserContext(), itemFilter(q))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.ItemResponse]{
		Items: dto.FromItems(items),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	})
}

func itemFilter(q dto.SearchItemsQuery) repository.ItemFilter {
	return repository.ItemFilter{
		Search:     q.Busca,
		Tipo:       entity.ItemType(q.Tipo),
		Acabamento: q.Acabamento,
		Tempera:    entity.Tempera(q.Tempera),
		Status:     entity.ItemStatus(q.Status),
		Column:     q.Coluna,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
}

// Update godoc
// @Summary      Editar item (parcial)
// @Tags         itens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do item"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos alterados"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	it, err := h.uc.UpdateItem(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromItem(it))
}

// RemoveQuantity godoc
// @Summary      Retirar quantidade do estoque
// @Description  Debita o balde disponível (padrão) ou avaria. Item zerado é excluído.
// @Tags         itens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do item"
// @Param        body  body  dto.RemoveQuantityRequest  true  "Quantidade"
// @Success      200   {object}  dto.RemoveQuantityResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/itens/{id}/saida [post]
func (h *ItemHandler) RemoveQuantity(c *fiber.Ctx) error {
	var in dto.RemoveQuantityRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	it, deleted, err := h.uc.RemoveQuantity(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.RemoveQuantityResponse{Excluido: deleted}
	if !deleted {
		resp := dto.FromItem(it)
		out.Item = &resp
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir item de posição
// @Tags         itens
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do item"
// @Param        body  body  dto.TransferRequest  true  "Nova posição"
// @Success      200   {object}  dto.ItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/itens/{id}/transferir [post]
func (h *ItemHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	it, err := h.uc.Transfer(c.UserContext(), GetActor(c), c.Params("id"), in.Posicao.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromItem(it))
}
