package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/auth"
	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// UserHandler administração de usuários (somente admin).
type UserHandler struct {
	uc *auth.UserUseCase
}

func NewUserHandler(uc *auth.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuários (pendentes primeiro)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromProfile(u))
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprovar, rejeitar, inativar ou reativar usuário
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do usuário"
// @Param        body  body  dto.UpdateUserStatusRequest  true  "novo status"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/usuarios/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateUserStatusRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.UpdateStatus(c.UserContext(), GetActor(c), c.Params("id"), entity.UserStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromProfile(p))
}
