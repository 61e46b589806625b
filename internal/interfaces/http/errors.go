package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
)

// writeError traduz erros de domínio em status HTTP + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(reqErr.status).JSON(reqErr.body)
	}

	var (
		validation   *domain.ValidationError
		mismatch     *domain.QuantityMismatchError
		insufficient *domain.InsufficientStockError
		occupied     *domain.PositionOccupiedError
		terminal     *domain.TerminalOrderError
		notFound     *domain.NotFoundError
	)

	switch {
	case errors.As(err, &validation):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", validation.Error(),
			map[string]string{validation.Field: validation.Msg})
	case errors.As(err, &mismatch):
		return respond(c, fiber.StatusUnprocessableEntity, "QUANTITY_MISMATCH", mismatch.Error(), map[string]string{
			"soma":       strconv.Itoa(mismatch.Sum),
			"quantidade": strconv.Itoa(mismatch.Total),
		})
	case errors.As(err, &insufficient):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", insufficient.Error(), map[string]string{
			"codigo":     insufficient.Codigo,
			"solicitado": strconv.Itoa(insufficient.Requested),
			"disponivel": strconv.Itoa(insufficient.Available),
			"faltante":   strconv.Itoa(insufficient.Shortfall()),
		})
	case errors.As(err, &occupied):
		details := make(map[string]string, len(occupied.Positions))
		for _, p := range occupied.Positions {
			details[p] = "ocupada"
		}
		return respond(c, fiber.StatusConflict, "POSITION_OCCUPIED", occupied.Error(), details)
	case errors.As(err, &terminal):
		return respond(c, fiber.StatusConflict, "INVALID_TRANSITION", terminal.Error(), nil)
	case errors.As(err, &notFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", notFound.Error(), nil)
	case errors.Is(err, domain.ErrConcurrency):
		return respond(c, fiber.StatusConflict, "CONCURRENT_UPDATE", err.Error(), nil)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "EMAIL_EXISTS", "o email já está cadastrado", nil)
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciais inválidas", nil)
	case errors.Is(err, domain.ErrPendingApproval):
		return respond(c, fiber.StatusForbidden, "PENDING_APPROVAL", "cadastro aguardando aprovação do administrador", nil)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err.Error(), nil)
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("erro interno")
	return respond(c, fiber.StatusInternalServerError, "INTERNAL", "erro interno, tente novamente", nil)
}

// requestError corpo ou query malformados, detectados antes do caso de uso.
type requestError struct {
	status int
	body   dto.ErrorResponse
}

func (e *requestError) Error() string { return e.body.Message }

func badRequest(code, msg string, details map[string]string) error {
	return &requestError{status: fiber.StatusBadRequest, body: dto.ErrorResponse{Code: code, Message: msg, Details: details}}
}

func respond(c *fiber.Ctx, status int, code, msg string, details map[string]string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg, Details: details})
}
