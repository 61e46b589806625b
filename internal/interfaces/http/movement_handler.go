package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/application/movement"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

// MovementHandler histórico de entradas e saídas.
type MovementHandler struct {
	uc *movement.UseCase
}

func NewMovementHandler(uc *movement.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List godoc
// @Summary      Histórico de movimentações
// @Tags         movimentos
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "ID do item"
// @Param        tipo     query  string  false  "entrada | saida"
// @Param        from     query  string  false  "Data inicial (AAAA-MM-DD ou RFC3339)"
// @Param        to       query  string  false  "Data final (AAAA-MM-DD ou RFC3339)"
// @Param        limit    query  int     false  "Limite"  default(50)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/movimentos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.ListMovementsQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	q.DefaultPage()
	f, err := movementFilter(q)
	if err != nil {
		return writeError(c, err)
	}
	ms, total, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(dto.ListResponse[dto.MovementResponse]{
		Items: out,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	})
}

func movementFilter(q dto.ListMovementsQuery) (repository.MovementFilter, error) {
	f := repository.MovementFilter{
		ItemID: q.ItemID,
		Tipo:   entity.MovementType(q.Tipo),
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	from, err := parseDate(q.From, false)
	if err != nil {
		return f, badRequest("INVALID_QUERY", "from: data inválida", nil)
	}
	to, err := parseDate(q.To, true)
	if err != nil {
		return f, badRequest("INVALID_QUERY", "to: data inválida", nil)
	}
	f.From, f.To = from, to
	return f, nil
}

// parseDate aceita RFC3339 ou AAAA-MM-DD; com endOfDay a data simples cobre o dia inteiro.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
