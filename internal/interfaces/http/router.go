package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jlvilasoler/hashrate-app/internal/application/auth"
	"github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/application/reports"
	"github.com/jlvilasoler/hashrate-app/internal/application/users"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *users.UserUseCase
	ClientUC   *billing.ClientUseCase
	DocumentUC *billing.DocumentUseCase
	PDFUC      *billing.PDFUseCase
	SummaryUC  *reports.SummaryUseCase
	ExportUC   *reports.ExportUseCase
	// ReadClients habilita POST /api/clients/import.
	ReadClients ClientReader
	UserRepo    repository.UserRepository
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	errs := errorMapper{log: log.Component("http")}

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y usuario vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), CurrentUser(deps.UserRepo))
	admins := RequireRole(entity.AdminRoles...)
	editors := RequireRole(entity.EditorRoles...)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)

	// Users (sólo administradores)
	userHandler := NewUserHandler(deps.UserUC, errs)
	protected.Get("/users/activity", admins, userHandler.Activity)
	protected.Get("/users", admins, userHandler.List)
	protected.Post("/users", admins, userHandler.Create)
	protected.Put("/users/:id", admins, userHandler.Update)
	protected.Delete("/users/:id", admins, userHandler.Delete)

	// Clients
	clientHandler := NewClientHandler(deps.ClientUC, deps.DocumentUC, deps.ReadClients, errs)
	protected.Get("/clients", clientHandler.List)
	protected.Post("/clients", editors, clientHandler.Create)
	if deps.ReadClients != nil {
		protected.Post("/clients/import", admins, clientHandler.Import)
	}
	protected.Get("/clients/:id", clientHandler.GetByID)
	protected.Put("/clients/:id", editors, clientHandler.Update)
	protected.Delete("/clients/:id", admins, clientHandler.Delete)
	protected.Get("/clients/:id/open-invoices", clientHandler.OpenInvoices)

	// Documents
	docHandler := NewDocumentHandler(deps.DocumentUC, deps.PDFUC, errs)
	protected.Get("/catalog", docHandler.Catalog)
	protected.Get("/documents", docHandler.List)
	protected.Post("/documents", editors, docHandler.Create)
	protected.Get("/documents/next-number", docHandler.NextNumber)
	protected.Get("/documents/:id", docHandler.GetByID)
	protected.Delete("/documents/:id", admins, docHandler.Delete)
	protected.Get("/documents/:id/items", docHandler.DraftItems)
	protected.Get("/documents/:id/pdf", docHandler.DownloadPDF)

	// Reports
	reportHandler := NewReportHandler(deps.SummaryUC, deps.ExportUC, errs)
	protected.Get("/reports/summary", reportHandler.Summary)
	if deps.ExportUC != nil {
		protected.Get("/reports/export", editors, reportHandler.Export)
	}
}
