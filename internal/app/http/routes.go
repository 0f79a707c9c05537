package httpEngine

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"qms-server/configs"
	"qms-server/internal/ai/cache"
	"qms-server/internal/ai/gateway"
	"qms-server/internal/ai/tools"
	"qms-server/internal/controllers"
	"qms-server/internal/logics"
	"qms-server/internal/repositories"
	"qms-server/internal/utils"
)

// RegisterRoutes registers every route the server exposes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "QMS Audit Management API",
			"version": "1.0.0",
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	auditService := logics.NewAuditService(repositories.DBS.Postgres, configs.Logger)

	aiCfg := configs.Configs.AI
	gw, err := gateway.NewGoogleAIGateway(
		context.Background(),
		aiCfg.GoogleAPIKey,
		aiCfg.Model,
		time.Duration(aiCfg.TimeoutSeconds)*time.Second,
		configs.Logger,
	)
	if err != nil {
		configs.Logger.Fatal("Failed to initialize AI gateway", zap.Error(err))
	}

	var responseCache tools.ResponseCache
	if aiCfg.CacheEnabled && repositories.DBS.Redis != nil {
		ttlHours := aiCfg.CacheTTLHours
		if ttlHours <= 0 {
			ttlHours = 24
		}
		responseCache = cache.NewRedisCache(repositories.DBS.Redis, time.Duration(ttlHours)*time.Hour, configs.Logger)
	}

	toolService := tools.NewService(gw, auditService, responseCache, configs.Logger)

	var emailService *utils.EmailService
	if emailCfg := configs.Configs.Email; emailCfg.SmtpHost != "" {
		emailService = utils.NewEmailService(
			emailCfg.SmtpHost,
			emailCfg.SmtpPort,
			emailCfg.Username,
			emailCfg.Password,
			emailCfg.SenderEmail,
		)
	}

	// Audit mutations flush cached analyses; without a cache the
	// controller skips the call.
	var invalidator controllers.AnalysisCacheInvalidator
	if responseCache != nil {
		invalidator = toolService
	}

	auditController := controllers.NewAuditController(auditService, invalidator)
	aiController := controllers.NewAIController(toolService, emailService)

	e.POST("/audits", auditController.CreateAudit)
	e.GET("/audits", auditController.ListAudits)
	e.GET("/audits/:audit_id", auditController.GetAudit)
	e.PUT("/audits/:audit_id", auditController.UpdateAudit)
	e.DELETE("/audits/:audit_id", auditController.DeleteAudit)
	e.GET("/audits-summary", auditController.AuditsSummary)

	e.GET("/ai/tools", aiController.ListTools)
	e.POST("/ai/query", aiController.ExecuteQuery)
	e.POST("/ai/chat", aiController.Chat)
	e.POST("/ai/notifications/send", aiController.SendNotification)
}
