package app

import (
	"database/sql"
	"os"

	"go-erp/internal/apiclient"
	"go-erp/internal/auth"
	"go-erp/internal/bootstrap"
	"go-erp/internal/catalog"
	"go-erp/internal/config"
	"go-erp/internal/messaging/kafka"
	"go-erp/internal/middleware"
	"go-erp/internal/payment"
	"go-erp/internal/payroll"
	"go-erp/internal/rbac"
	"go-erp/internal/rbac/infra"
	"go-erp/internal/sepay"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.AppConfig,
	stores *infrastructure,
	logger *zap.Logger,
) error {
	// --- Clients ---
	erpClient := apiclient.New(cfg.ERPBaseURL, cfg.ERPTimeout, logger)

	// --- RBAC Core ---
	rbacService, err := newRBACService(cfg, logger)
	if err != nil {
		return err
	}
	authMW := middleware.AuthMiddleware(cfg.JWTSecret)

	// --- Services ---
	authService := auth.NewService(erpClient, logger)
	paymentService := newPaymentService(cfg, erpClient, stores.sqlDB, stores.gormDB, logger)
	payrollService := payroll.NewService(payroll.NewGateway(erpClient), stores.rdb, cfg.Rules.Tax, logger)
	catalogModules := catalog.Modules(erpClient, stores.rdb, cfg.ListCacheTTL, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)
	paymentHandler := payment.NewHandler(paymentService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		rbac.RegisterRoutes(api.Group("", authMW), rbacHandler)
		payment.RegisterRoutes(api, paymentHandler, rbacService, authMW, stores.rdb)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, authMW, stores.rdb)
		for _, m := range catalogModules {
			m.RegisterRoutes(api, rbacService, authMW)
		}
	}

	return nil
}

func newRBACService(cfg *config.AppConfig, logger *zap.Logger) (rbac.Service, error) {
	modelPath := cfg.RBACModelFile
	if _, err := os.Stat(modelPath); err != nil {
		logger.Warn("rbac model file not found, using built-in model", zap.String("path", modelPath))
		modelPath = ""
	}

	enforcer, err := infra.NewEnforcer(modelPath)
	if err != nil {
		return nil, err
	}

	svc := rbac.NewService(rbac.NewFileRepository(cfg.RBACPolicyFile), enforcer, logger)
	if err := svc.LoadPolicy(); err != nil {
		return nil, err
	}
	return svc, nil
}

func newPaymentService(
	cfg *config.AppConfig,
	erpClient *apiclient.Client,
	sqlDB *sql.DB,
	gormDB *gorm.DB,
	logger *zap.Logger,
) payment.Service {
	feed := sepay.NewClient(cfg.SepayBaseURL, cfg.SepayToken, cfg.ERPTimeout, logger)

	return payment.NewService(
		sqlDB,
		payment.NewRepository(gormDB),
		kafka.NewOutboxRepository(sqlDB),
		payment.NewERPGateway(erpClient),
		feed,
		bootstrap.NewStdoutAuditLogger(logger),
		payment.Config{
			Tolerance:     cfg.Rules.MatchTolerance,
			AccountNumber: cfg.SepayAccountNumber,
		},
		logger,
	)
}
