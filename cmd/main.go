package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpServer "github.com/dtroode/sleeptracker-server/internal/api/http/server"

	httpctx "github.com/dtroode/sleeptracker-server/internal/api/http/context"
	"github.com/dtroode/sleeptracker-server/internal/api/http/router"
	"github.com/dtroode/sleeptracker-server/internal/config"
	"github.com/dtroode/sleeptracker-server/internal/logger"
	"github.com/dtroode/sleeptracker-server/internal/model"
	"github.com/dtroode/sleeptracker-server/internal/repository/postgres"
	"github.com/dtroode/sleeptracker-server/internal/server"
	"github.com/dtroode/sleeptracker-server/internal/service"
	storage "github.com/dtroode/sleeptracker-server/internal/storage/minio"
	"github.com/dtroode/sleeptracker-server/internal/task"
	"github.com/dtroode/sleeptracker-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	onboardingRepo := postgres.NewOnboardingRepository(db)
	visitRepo := postgres.NewVisitRepository(db)
	userRepo := postgres.NewUserRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	ctxMgr := httpctx.NewManager()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	reportStore, err := storage.NewReportStore(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize report store", "error", err)
	}

	tasks := task.NewRunner(cfg.Analytics.MaxConcurrent, logger)

	analyticsService := service.NewAnalytics(visitRepo, onboardingRepo, reportStore, logger)
	onboardingService := service.NewOnboarding(onboardingRepo, analyticsService, tasks, logger)
	authService := service.NewAuth(userRepo, onboardingRepo, tokenManager, cfg.Auth.AdminSuffix, logger)

	r := router.New(onboardingService, analyticsService, authService, tokenManager, ctxMgr, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	tasks.Wait()
	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
