package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/intellixel001/suvashpanel/api/swagger"
	"github.com/intellixel001/suvashpanel/internal/apiclient"
	"github.com/intellixel001/suvashpanel/internal/credential"
	"github.com/intellixel001/suvashpanel/internal/handler"
	internalmiddleware "github.com/intellixel001/suvashpanel/internal/middleware"
	"github.com/intellixel001/suvashpanel/internal/service"
	"github.com/intellixel001/suvashpanel/internal/store"
	"github.com/intellixel001/suvashpanel/pkg/config"
	"github.com/intellixel001/suvashpanel/pkg/logger"
	corsmiddleware "github.com/intellixel001/suvashpanel/pkg/middleware/cors"
	reqidmiddleware "github.com/intellixel001/suvashpanel/pkg/middleware/requestid"
	"github.com/intellixel001/suvashpanel/pkg/response"
)

// @title Suvash Panel
// @version 0.1.0
// @description Staff dashboard server for the Suvash exam platform
// @BasePath /
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	response.LoginRoute = cfg.API.LoginRoute

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	creds, closeCreds, err := credential.Open(ctx, cfg)
	if err != nil {
		logr.Fatal("failed to open credential store", zap.String("backend", cfg.Credentials.Backend), zap.Error(err))
	}
	defer func() {
		if err := closeCreds(); err != nil {
			logr.Warn("closing credential store failed", zap.Error(err))
		}
	}()

	var metrics *service.MetricsService
	var observer apiclient.Observer
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
		observer = metrics
	}

	// The session store is the navigator but needs the client to exist first.
	var session *store.SessionStore
	client, err := apiclient.New(apiclient.Options{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.API.Timeout,
		RefreshPath: cfg.API.RefreshPath,
		LoginRoute:  cfg.API.LoginRoute,
		Store:       creds,
		Navigator:   apiclient.NavigatorFunc(func(route string) { session.RedirectToLogin(route) }),
		Observer:    observer,
		Logger:      logr.Named("apiclient"),
	})
	if err != nil {
		logr.Fatal("failed to build api client", zap.Error(err))
	}
	session = store.NewSessionStore(client, logr.Named("session"))
	tasks := store.NewTaskStore(client, logr.Named("tasks"))

	validate := service.NewValidator()
	exams := service.NewExamService(client, validate, logr, cfg.API.AdminPrefix, time.Now)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	handler.Register(r, handler.Routes{
		Credentials: creds,
		Session:     session,
		Tasks:       tasks,
		Auth:        service.NewAuthService(client, creds, session, validate, logr, cfg.API.LoginOrigin),
		Exams:       exams,
		Questions:   service.NewQuestionService(client, exams, validate, logr),
		Packages:    service.NewPackageService(client, validate, logr, cfg.API.AdminPrefix),
		TaskService: service.NewTaskService(client, tasks, logr),
		Export:      service.NewExportService(logr, nil, nil, time.Now),
		Metrics:     metrics,
		Views:       service.NewViews(),
		Logger:      logr,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "api", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
