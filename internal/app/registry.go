package app

import (
	"database/sql"

	"go-commission/internal/access"
	"go-commission/internal/audit"
	"go-commission/internal/auth"
	"go-commission/internal/commission"
	"go-commission/internal/customer"
	"go-commission/internal/goal"
	"go-commission/internal/lot"
	"go-commission/internal/messaging/kafka"
	"go-commission/internal/middleware"
	"go-commission/internal/product"
	"go-commission/internal/sale"
	"go-commission/internal/shared/counter"
	"go-commission/internal/shared/storage"
	"go-commission/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	files storage.FileStorage,
	cfg Config,
	logger *zap.Logger,
) (audit.Service, error) {
	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	commissionRepo := commission.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	customerRepo := customer.NewRepository(gormDB)
	goalRepo := goal.NewRepository(gormDB)
	lotRepo := lot.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	productRepo := product.NewRepository(gormDB)
	saleRepo := sale.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- Access Core ---
	enforcer, err := access.NewEnforcer()
	if err != nil {
		return nil, err
	}
	accessService := access.NewService(enforcer, logger)

	// --- Services ---
	auditService := audit.NewService(auditRepo, logger)
	authService := auth.NewService(authRepo, cfg.JWTSecret, logger)
	commissionService := commission.NewService(db, commissionRepo, logger)
	customerService := customer.NewService(db, customerRepo, logger)
	goalService := goal.NewService(db, goalRepo, userRepo, logger)
	lotService := lot.NewService(db, lotRepo, counterRepo, files, outboxRepo, logger)
	productService := product.NewService(db, productRepo, rdb, logger)
	saleService := sale.NewService(db, saleRepo, customerService, commissionService, files, outboxRepo, logger)
	userService := user.NewService(db, userRepo, logger)

	// --- Handlers ---
	accessHandler := access.NewHandler(accessService)
	auditHandler := audit.NewHandler(auditService, logger)
	authHandler := auth.NewHandler(authService)
	commissionHandler := commission.NewHandler(commissionService)
	customerHandler := customer.NewHandler(customerService)
	goalHandler := goal.NewHandler(goalService, logger)
	lotHandler := lot.NewHandler(lotService, rdb, logger)
	productHandler := product.NewHandler(productService)
	saleHandler := sale.NewHandler(saleService, logger)
	userHandler := user.NewHandler(userService, logger)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		access.RegisterRoutes(api, accessHandler, middleware.AuthMiddlewareWithSecret(cfg.JWTSecret))
		audit.RegisterRoutes(api, auditHandler, accessService, logger)
		commission.RegisterRoutes(api, commissionHandler, accessService, logger)
		customer.RegisterRoutes(api, customerHandler, accessService, logger)
		goal.RegisterRoutes(api, goalHandler, accessService, logger)
		lot.RegisterRoutes(api, lotHandler, accessService, logger, rdb)
		product.RegisterRoutes(api, productHandler, accessService, logger)
		sale.RegisterRoutes(api, saleHandler, accessService, logger)
		user.RegisterRoutes(api, userHandler, accessService, logger)
	}

	return auditService, nil
}
