package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gym-console/backend/internal/config"
	"gym-console/backend/internal/domain/checkin"
	"gym-console/backend/internal/domain/enrollment"
	"gym-console/backend/internal/domain/gym"
	"gym-console/backend/internal/domain/planchange"
	"gym-console/backend/internal/domain/report"
	"gym-console/backend/internal/domain/review"
	"gym-console/backend/internal/domain/stats"
	"gym-console/backend/internal/domain/user"
	"gym-console/backend/internal/firebase"
	"gym-console/backend/internal/handlers"
	apihttp "gym-console/backend/internal/http"
	"gym-console/backend/internal/logging"
	"gym-console/backend/internal/session"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger, err := logging.New(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	clients, err := firebase.NewClients(ctx, cfg.Firebase)
	if err != nil {
		logger.Fatal("firebase init failed", zap.Error(err))
	}
	defer clients.Close()

	// Repositories
	userRepo := user.NewRepo(clients.Firestore)
	gymRepo := gym.NewRepo(clients.Firestore)
	enrollmentRepo := enrollment.NewRepo(clients.Firestore)
	planChangeRepo := planchange.NewRepo(clients.Firestore)
	reportRepo := report.NewRepo(clients.Firestore)
	reviewRepo := review.NewRepo(clients.Firestore)
	checkinRepo := checkin.NewRepo(clients.Firestore)

	// Services
	gymSvc := gym.NewService(gymRepo, userRepo, clients.Auth, logger)
	memberSvc := user.NewService(userRepo, logger)
	enrollmentSvc := enrollment.NewService(clients.Firestore, enrollmentRepo, userRepo, logger)
	planChangeSvc := planchange.NewService(clients.Firestore, planChangeRepo, logger)
	reportSvc := report.NewService(reportRepo, logger)
	statsSvc := stats.NewService(enrollmentRepo, userRepo)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:           cfg,
		Logger:        logger,
		AuthClient:    clients.Auth,
		Sessions:      session.NewLoader(userRepo, gymRepo),
		GymSvc:        gymSvc,
		MemberSvc:     memberSvc,
		EnrollmentSvc: enrollmentSvc,
		PlanChangeSvc: planChangeSvc,
		ReportSvc:     reportSvc,
		StatsSvc:      statsSvc,
		ReviewRepo:    reviewRepo,
		CheckinRepo:   checkinRepo,
		Uploads:       handlers.NewUploads(cfg.Firebase),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		logger.Info("API listening",
			zap.String("port", cfg.Server.Port),
			zap.String("project", cfg.Firebase.ProjectID))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	_ = srv.Shutdown(ctxShutdown)
}
