package main

import (
	"os"
	"time"

	"go-commission/internal/app"
	"go-commission/internal/bootstrap"
	"go-commission/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	r := gin.Default()

	rt, err := app.BuildApp(r)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Error("close resources failed", zap.Error(err))
		}
	}()

	auditLogger := bootstrap.NewStoreAuditLogger(rt.AuditService, bootstrap.NewStdoutAuditLogger())
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:            port,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		auditLogger,
	)
}
