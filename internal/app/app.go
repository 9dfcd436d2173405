package app

import (
	"errors"
	"fmt"

	"go-commission/internal/audit"
	"go-commission/internal/commission"
	"go-commission/internal/customer"
	"go-commission/internal/goal"
	"go-commission/internal/lot"
	"go-commission/internal/messaging/kafka"
	"go-commission/internal/product"
	"go-commission/internal/sale"
	"go-commission/internal/shared/connection"
	"go-commission/internal/shared/counter"
	"go-commission/internal/shared/storage"
	"go-commission/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Runtime holds what the API binary needs after the router is built.
type Runtime struct {
	AuditService audit.Service
	closers      []func() error
}

func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	return errors.Join(errs...)
}

func BuildApp(router *gin.Engine) (*Runtime, error) {
	logger := zap.L().Named("app")
	cfg := LoadConfig()
	rt := &Runtime{}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, sqlDB.Close)
	logger.Info("database connection established")

	if cfg.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, redisClient.Close)
	logger.Info("redis connection established")

	files, err := newFileStorage(cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.StorageDriver == "local" {
		router.Static(cfg.MediaBaseURL, cfg.MediaRoot)
	}

	rt.AuditService, err = registerModules(router, sqlDB, gormDB, redisClient, files, cfg, logger)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&user.UserRole{},
		&user.Team{},
		&user.TeamMember{},
		&customer.Customer{},
		&product.Product{},
		&commission.Exception{},
		&sale.Sale{},
		&sale.Attachment{},
		&lot.Lot{},
		&lot.PaymentTransaction{},
		&lot.Attachment{},
		&goal.Goal{},
		&counter.Counter{},
		&kafka.OutboxRecord{},
		&audit.AuditLog{},
	); err != nil {
		return err
	}
	return goal.MigrateScopeIndex(db)
}

func newFileStorage(cfg Config, logger *zap.Logger) (storage.FileStorage, error) {
	switch cfg.StorageDriver {
	case "local":
		local, err := storage.NewLocalStorage(cfg.MediaRoot, cfg.MediaBaseURL, logger)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "s3":
		s3, err := storage.NewS3Storage(storage.S3Config{
			Endpoint:          cfg.S3Endpoint,
			Region:            cfg.S3Region,
			Bucket:            cfg.S3Bucket,
			AccessKey:         cfg.S3AccessKey,
			SecretKey:         cfg.S3SecretKey,
			UsePathStyle:      cfg.S3UsePathStyle,
			PresignExpiration: cfg.S3PresignTTL,
		}, storage.WithLogger(logger.Named("storage.s3")))
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
