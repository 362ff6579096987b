// @title                       HRS Facturación API
// @version                     1.0
// @description                 Emisión de facturas, recibos y notas de crédito con numeración correlativa por tipo.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jlvilasoler/hashrate-app/internal/application/auth"
	"github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/application/reports"
	"github.com/jlvilasoler/hashrate-app/internal/application/users"
	"github.com/jlvilasoler/hashrate-app/internal/bootstrap"
	infrapdf "github.com/jlvilasoler/hashrate-app/internal/infrastructure/pdf"
	"github.com/jlvilasoler/hashrate-app/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jlvilasoler/hashrate-app/internal/interfaces/http"
	"github.com/jlvilasoler/hashrate-app/pkg/config"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := bootstrap.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.Close()

	authUC := auth.NewAuthUseCase(store.Users, store.Activity, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if err := authUC.EnsureDefaultUsers(ctx, auth.DefaultUsersFrom(cfg.Auth.DefaultUsers, cfg.Auth.DefaultPassword)); err != nil {
		log.Fatal().Err(err).Msg("usuarios por defecto")
	}
	userUC := users.NewUserUseCase(store.Users, store.Activity, log)

	clientUC := billing.NewClientUseCase(store.Clients, log)
	documentUC := billing.NewDocumentUseCase(store.Tx, store.Documents, store.Clients, nil, log)

	// PDF: representación gráfica con los datos del emisor
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Issuer)
	pdfUC := billing.NewPDFUseCase(store.Documents, store.Clients, pdfGenerator)
	summaryUC := reports.NewSummaryUseCase(store.Reports)
	exportUC := reports.NewExportUseCase(documentUC, spreadsheet.NewHistoryExporter())

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:       cfg.App.Name,
		CORSOrigin: cfg.HTTP.CORSOrigin,
		Docs:       true,
	}, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ClientUC:    clientUC,
		DocumentUC:  documentUC,
		PDFUC:       pdfUC,
		SummaryUC:   summaryUC,
		ExportUC:    exportUC,
		ReadClients: spreadsheet.ReadClients,
		UserRepo:    store.Users,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
