package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/application/tower"
)

// TowerHandler configuração e ocupação da torre.
type TowerHandler struct {
	uc *tower.UseCase
}

func NewTowerHandler(uc *tower.UseCase) *TowerHandler {
	return &TowerHandler{uc: uc}
}

// Get godoc
// @Summary      Configuração atual da torre
// @Tags         torre
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TowerConfigResponse
// @Router       /api/torre [get]
func (h *TowerHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTowerConfig(cfg))
}

// Configure godoc
// @Summary      Substituir a configuração da torre
// @Description  Andares aceitam lista [1,2,3] ou texto "1-4, 6". Posições ocupadas não podem ser removidas.
// @Tags         torre
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TowerConfigRequest  true  "colunas -> andares"
// @Success      200   {object}  dto.TowerConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/torre [put]
func (h *TowerHandler) Configure(c *fiber.Ctx) error {
	var in dto.TowerConfigRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	cfg, err := h.uc.Configure(c.UserContext(), GetActor(c), in.ToConfig())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTowerConfig(cfg))
}

// Overview godoc
// @Summary      Ocupação de cada posição configurada
// @Tags         torre
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PositionOverviewResponse
// @Router       /api/torre/posicoes [get]
func (h *TowerHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.uc.Overview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PositionOverviewResponse, 0, len(overview))
	for _, p := range overview {
		items := make([]dto.ItemSummary, 0, len(p.Items))
		for _, it := range p.Items {
			items = append(items, dto.ItemSummary{
				ID:         it.ID,
				Codigo:     it.Codigo,
				Tipo:       string(it.Tipo),
				Quantidade: it.Quantidade,
				Status:     string(it.Status),
			})
		}
		out = append(out, dto.PositionOverviewResponse{
			Posicao: p.Position.String(),
			Coluna:  p.Position.Column,
			Andar:   p.Position.Floor,
			Ocupada: p.Occupied(),
			Itens:   items,
		})
	}
	return c.JSON(out)
}
