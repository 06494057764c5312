package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/store_credit_app/cmd/docs"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/middleware"
	"github.com/SscSPs/store_credit_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	adminOnly       = middleware.RequireRoles(domain.RoleAdmin)
	customerOnly    = middleware.RequireRoles(domain.RoleCustomer)
	adminOrCustomer = middleware.RequireRoles(domain.RoleAdmin, domain.RoleCustomer)
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := registerAuthRoutes(r, cfg, services.User); err != nil {
		return err
	}

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	loc := cfg.ReportTimezone
	if loc == nil {
		loc = time.Local
	}

	RegisterAccountRoutes(v1, service.Account)
	RegisterSaleRoutes(v1, service.Sale)
	RegisterPaymentRoutes(v1, service.Payment)
	registerMovementRoutes(v1, service.Movement)
	registerReportingRoutes(v1, service.Reporting, loc)
	registerUserRoutes(v1, service.User)
	registerProductRoutes(v1, service.Product)
	registerNotificationRoutes(v1, service.Notification)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
