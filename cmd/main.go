package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/senyabanana/briefs-frontend/internal/content"
	"github.com/senyabanana/briefs-frontend/internal/handlers"
	"github.com/senyabanana/briefs-frontend/internal/mailer"
	"github.com/senyabanana/briefs-frontend/internal/repository"
	"github.com/senyabanana/briefs-frontend/internal/router"
	"github.com/senyabanana/briefs-frontend/internal/router/config"
	"github.com/senyabanana/briefs-frontend/internal/services"
	"github.com/senyabanana/briefs-frontend/internal/session"
	"github.com/senyabanana/briefs-frontend/internal/templates"
)

const handlerTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("error initializing logger: %v", err)
	}
	defer logger.Sync()

	loader, err := content.NewLoader(cfg.ContentPath)
	if err != nil {
		logger.Fatal("error loading content", zap.Error(err))
	}

	client := repository.NewClient(cfg.DataAPIURL, cfg.DataAPIToken, handlerTimeout, logger)

	sesMailer, err := mailer.NewSESMailer(context.Background(), cfg.AWSRegion, cfg.InviteEmailFrom)
	if err != nil {
		logger.Fatal("error initializing mailer", zap.Error(err))
	}

	renderer, err := templates.NewRenderer(logger)
	if err != nil {
		logger.Fatal("error parsing templates", zap.Error(err))
	}
	sess := session.NewManager(cfg.SessionSecret, cfg.LoginURL)

	briefService := services.NewBriefService(client, client, client, loader)
	outcomeService := services.NewOutcomeService(client, client, client, loader)
	dashboardService := services.NewDashboardService(client, client, loader)
	questionService := services.NewQuestionService(client, client, loader)
	responseService := services.NewResponseService(client, client, client, loader)
	accountService := services.NewAccountService(client, client, sesMailer, cfg.BaseURL, logger)

	routes := router.InitRoutes(router.Handlers{
		Dashboard: handlers.NewDashboardHandler(dashboardService, sess, renderer, logger, handlerTimeout),
		Briefs:    handlers.NewBriefHandler(briefService, sess, renderer, logger, handlerTimeout),
		Questions: handlers.NewQuestionHandler(questionService, responseService, sess, renderer, logger, handlerTimeout),
		Outcomes:  handlers.NewOutcomeHandler(outcomeService, sess, renderer, logger, handlerTimeout),
		Accounts:  handlers.NewAccountHandler(accountService, sess, renderer, logger, handlerTimeout),
		Status:    handlers.NewStatusHandler(client, logger, handlerTimeout),
	}, sess, logger)

	logger.Info("server is listening", zap.String("address", cfg.ServerAddress))
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(level, format string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return zapCfg.Build()
}
