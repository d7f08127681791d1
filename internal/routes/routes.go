package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/audit"
	"github.com/pedroriq/sissuporte/internal/cache"
	"github.com/pedroriq/sissuporte/internal/config"
	"github.com/pedroriq/sissuporte/internal/handlers"
	infraRepo "github.com/pedroriq/sissuporte/internal/infra/repository"
	"github.com/pedroriq/sissuporte/internal/middleware"
	"github.com/pedroriq/sissuporte/internal/storage"
	ucRelatorio "github.com/pedroriq/sissuporte/internal/usecase/relatorio"
	ucSuporte "github.com/pedroriq/sissuporte/internal/usecase/suporte"
)

// Deps são os colaboradores externos opcionais: sem storage o chamado
// entra sem print, sem cache o dashboard consulta o banco sempre.
type Deps struct {
	Uploader storage.Uploader
	Cache    cache.Cache
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger, deps Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	suporteRepo := infraRepo.NewSuporteGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================
	createTicketUC := ucSuporte.NewCreateTicket(
		suporteRepo,
		deps.Uploader,
		auditDispatcher,
		log,
		cfg.Timezone,
	)

	submitPublicUC := ucSuporte.NewSubmitPublicRequest(
		suporteRepo,
		deps.Uploader,
		auditDispatcher,
		log,
		cfg.Timezone,
	)

	listTicketsUC := ucSuporte.NewListTickets(suporteRepo)

	dashboardUC := ucRelatorio.NewDashboardStats(
		suporteRepo,
		deps.Cache,
		log,
		cfg.Timezone,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher, log)
	userHandler := handlers.NewUserHandler(db, log)
	clientHandler := handlers.NewClientHandler(db, auditDispatcher, log)
	emailHandler := handlers.NewEmailHandler(db, auditDispatcher, log)
	suporteHandler := handlers.NewSuporteHandler(db, createTicketUC, listTicketsUC, auditDispatcher, log)
	publicHandler := handlers.NewPublicHandler(db, submitPublicUC, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC, log)
	reportHandler := handlers.NewReportHandler(db, suporteRepo, log, cfg.Timezone)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICO: login + página de solicitação
		// ------------------------------
		api.POST("/login", authHandler.Login)
		api.GET("/clientes/slug/:slug", publicHandler.GetClienteBySlug)
		api.POST("/suportes/solicitar", publicHandler.CreateSolicitacao)

		// ------------------------------
		// PRIVADO
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/usuarios", userHandler.Register)
			secured.PUT("/usuarios/:id", userHandler.UpdateProfile)
			secured.PUT("/usuarios/:id/senha", userHandler.ChangePassword)

			secured.GET("/dashboard/stats", dashboardHandler.Stats)

			secured.GET("/clientes", clientHandler.List)
			secured.POST("/clientes", clientHandler.Create)
			secured.GET("/clientes/:id", clientHandler.Get)
			secured.PUT("/clientes/:id", clientHandler.Update)
			secured.DELETE("/clientes/:id", clientHandler.Delete)

			secured.GET("/clientes/:id/emails", emailHandler.ListByClient)
			secured.GET("/clientes/:id/emails/csv", emailHandler.ExportCSV)
			secured.POST("/clientes/:id/emails/importar", emailHandler.ImportCSV)
			secured.POST("/emails", emailHandler.Create)
			secured.PUT("/emails/:id", emailHandler.Update)
			secured.DELETE("/emails/:id", emailHandler.Delete)

			secured.GET("/suportes", suporteHandler.List)
			secured.POST("/suportes", suporteHandler.Create)
			secured.PUT("/suportes/:id", suporteHandler.Update)

			secured.GET("/relatorios/suportes", reportHandler.SuportesPDF)
		}
	}
}
