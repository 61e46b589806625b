package http

import (
	"context"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/pkg/jwt"
)

// Chaves de c.Locals preenchidas pelo AuthMiddleware.
const (
	LocalUserID    = "user_id"
	LocalUserName  = "user_name"
	LocalUserEmail = "user_email"
	LocalRole      = "role"
)

// AuthMiddleware valida o Bearer Token JWT e guarda a identidade em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "header Authorization obrigatório")
		}
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return unauthorized(c, "MISSING_TOKEN", "token vazio")
		}
		id, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido ou expirado")
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalUserName, id.Name)
		c.Locals(LocalUserEmail, id.Email)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetActor quem executa a requisição; vai para ordens, movimentações e relatórios.
func GetActor(c *fiber.Ctx) entity.Actor {
	nome := localString(c, LocalUserName)
	email := localString(c, LocalUserEmail)
	if nome == "" {
		nome = email
	}
	return entity.Actor{ID: GetUserID(c), Nome: nome, Email: email}
}

// RequireRole deve vir depois do AuthMiddleware.
// Token sem papel -> 401 MISSING_ROLE; papel fora da lista -> 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "MISSING_ROLE", "token sem papel de usuário")
		}
		if !slices.Contains(roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "papel '" + role + "' sem permissão para esta operação",
			})
		}
		return c.Next()
	}
}

// approvalChecker implementado por *auth.UserUseCase.
type approvalChecker interface {
	IsApproved(ctx context.Context, id string) (bool, error)
}

// RequireApproved confere a cada requisição se o cadastro continua aprovado:
// um usuário inativado perde o acesso mesmo com token válido.
func RequireApproved(checker approvalChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetUserID(c)
		if id == "" {
			return unauthorized(c, "UNAUTHORIZED", "usuário não identificado no token")
		}
		ok, err := checker.IsApproved(c.UserContext(), id)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "APPROVAL_CHECK_FAILED",
				Message: "não foi possível verificar o cadastro, tente novamente",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "NOT_APPROVED",
				Message: "cadastro não aprovado ou inativo",
			})
		}
		return c.Next()
	}
}
