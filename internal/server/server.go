// Package server wires the process together: database, repositories, use
// cases, session manager, chat router, the Telegram long-poll loop, and a
// small gin endpoint for health and metrics.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fizzybot/internal/config"
	"fizzybot/internal/handler"
	"fizzybot/internal/repository"
	"fizzybot/internal/session"
	"fizzybot/internal/telegram"
	"fizzybot/internal/usecase"
)

type Server struct {
	Engine   *gin.Engine
	DB       *gorm.DB
	Bot      *telegram.Bot
	Sessions *session.Manager
	Config   *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	db, err := repository.Open(cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		return nil, err
	}
	log.Info("connected to database")

	cards := repository.NewCardRepository(db)
	boards := repository.NewBoardRepository(db)
	comments := repository.NewCommentRepository(db)
	events := repository.NewEventRepository(db)
	users := repository.NewUserRepository(db)

	// The bot acts as one fixed user; fail fast if the configured identity
	// does not exist in the shared database.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	operator, err := users.GetByID(ctx, cfg.AccountID, cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolving FIZZY_USER_ID: %w", err)
	}
	log.WithField("user", operator.Name).Info("acting as")

	uc := usecase.New(cards, boards, comments, events, users, cfg.BaseURL)
	sessions := session.NewManager(session.DefaultTTL)
	actor := usecase.Actor{AccountID: cfg.AccountID, UserID: cfg.UserID}
	router := handler.NewRouter(uc, sessions, actor, cfg.DefaultBoardID, cfg.AllowedUserIDs)

	bot, err := telegram.New(cfg.BotToken, router)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/healthz", healthHandler(db))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		Engine:   engine,
		DB:       db,
		Bot:      bot,
		Sessions: sessions,
		Config:   cfg,
	}, nil
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Run starts the HTTP endpoint, the session sweeper, and the Telegram
// long-poll loop, then blocks until SIGINT/SIGTERM and shuts everything
// down in reverse order.
func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.WithField("port", s.Config.ServerPort).Info("health endpoint listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("health endpoint failed")
		}
	}()

	stopSweep := make(chan struct{})
	go s.Sessions.Run(stopSweep)

	botCtx, stopBot := context.WithCancel(context.Background())
	go s.Bot.Run(botCtx)
	log.Info("bot is polling for updates")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	stopBot()
	close(stopSweep)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("health endpoint forced to shut down")
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Warn("closing database")
		}
	}
	log.Info("bye")
}
