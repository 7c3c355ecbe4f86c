package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wheelparty/internal/bot"
	"wheelparty/internal/config"
	"wheelparty/internal/db"
	"wheelparty/internal/http/handlers"
	"wheelparty/internal/http/middleware"
	"wheelparty/internal/logger"
	"wheelparty/internal/repository"
	"wheelparty/internal/service"
	"wheelparty/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version устанавливается при сборке
var Version = "dev"

func main() {
	cfg := config.Load()

	// Инициализация структурированного логгера
	jsonLogs := os.Getenv("LOG_FORMAT") == "json"
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(logLevel, jsonLogs)
	log := logger.Get()

	service.InitJWT(cfg.JWTSecret)

	// База нужна только для подсказок имен - без нее работаем на
	// статическом списке
	var nameRepo *repository.NameRepository
	if cfg.DatabaseURL != "" {
		pool := db.Connect(cfg.DatabaseURL)
		defer pool.Close()
		nameRepo = repository.NewNameRepository(pool)
	} else {
		log.Warn("DATABASE_URL не задан, подсказки имен из статического списка")
	}

	hub := ws.NewHub()

	matchService := service.NewMatchService(cfg.SpinResolveDelay, cfg.AutoSpin, cfg.AutoSpinDelay)
	defer matchService.Stop()
	matchService.SetEventCallback(hub.Broadcast)

	rosterService := service.NewRosterService(nameRepo)

	// Бот-глашатай результатов (опционально)
	var announcer *bot.Announcer
	if cfg.AnnouncerEnabled && cfg.BotToken != "" && cfg.AnnounceChatID != 0 {
		var err error
		announcer, err = bot.NewAnnouncer(cfg.BotToken, cfg.AnnounceChatID)
		if err != nil {
			log.Error("не удалось запустить announcer bot", "error", err)
		} else {
			matchService.SetFinishCallback(announcer.AnnounceResult)
			log.Info("announcer bot запущен", "chat_id", cfg.AnnounceChatID)
		}
	}

	r := gin.Default()

	// CORS для прода и связи фронта с бэкендом (разные домены)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandler(matchService, rosterService, hub)
	handlers.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	if announcer != nil {
		announcer.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
