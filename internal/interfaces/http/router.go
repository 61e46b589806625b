package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-tarugos/internal/application/auth"
	"github.com/jhoicas/estoque-tarugos/internal/application/inventory"
	"github.com/jhoicas/estoque-tarugos/internal/application/movement"
	"github.com/jhoicas/estoque-tarugos/internal/application/ordem"
	"github.com/jhoicas/estoque-tarugos/internal/application/report"
	"github.com/jhoicas/estoque-tarugos/internal/application/tower"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// RouterDeps dependências do roteador. Idempotency nil desliga a proteção contra envio duplicado.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *auth.UserUseCase
	TowerUC     *tower.UseCase
	LedgerUC    *inventory.LedgerUseCase
	OrdemUC     *ordem.UseCase
	MovementUC  *movement.UseCase
	ReportUC    *report.UseCase
	Events      eventSource
	Idempotency idempotencyGuard
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Demais rotas: token válido e cadastro aprovado
	protected := api.Group("", AuthMiddleware(deps.JWTSecret), RequireApproved(deps.UserUC))
	adminOnly := RequireRole(entity.RoleAdmin)

	towerHandler := NewTowerHandler(deps.TowerUC)
	protected.Get("/torre", towerHandler.Get)
	protected.Put("/torre", adminOnly, towerHandler.Configure)
	protected.Get("/torre/posicoes", towerHandler.Overview)

	itemHandler := NewItemHandler(deps.LedgerUC)
	itens := protected.Group("/itens")
	itens.Get("/", itemHandler.Search)
	itens.Post("/", itemHandler.Create)
	itens.Post("/lote", itemHandler.CreateBatch)
	itens.Get("/:id", itemHandler.GetByID)
	itens.Patch("/:id", itemHandler.Update)
	itens.Post("/:id/saida", itemHandler.RemoveQuantity)
	itens.Post("/:id/transferir", itemHandler.Transfer)

	movementHandler := NewMovementHandler(deps.MovementUC)
	protected.Get("/movimentos", movementHandler.List)

	ordemHandler := NewOrdemHandler(deps.OrdemUC)
	ordens := protected.Group("/ordens")
	ordens.Get("/", ordemHandler.List)
	ordens.Post("/", Idempotency(deps.Idempotency), ordemHandler.Create)
	ordens.Get("/:id", ordemHandler.GetByID)
	ordens.Patch("/:id", ordemHandler.Update)
	ordens.Patch("/:id/status", ordemHandler.UpdateStatus)

	reportHandler := NewReportHandler(deps.ReportUC)
	relatorios := protected.Group("/relatorios")
	relatorios.Get("/estoque.pdf", reportHandler.InventoryPDF)
	relatorios.Get("/itens.csv", reportHandler.ItemsCSV)
	relatorios.Get("/movimentos.xlsx", reportHandler.MovementsXLSX)
	relatorios.Get("/ordens/:id.pdf", reportHandler.OrdemPDF)
	relatorios.Get("/logs", adminOnly, reportHandler.Logs)

	if deps.Events != nil {
		protected.Get("/events", NewEventsHandler(deps.Events).Stream)
	}

	userHandler := NewUserHandler(deps.UserUC)
	admin := protected.Group("/admin", adminOnly)
	admin.Get("/usuarios", userHandler.List)
	admin.Patch("/usuarios/:id/status", userHandler.UpdateStatus)
}
