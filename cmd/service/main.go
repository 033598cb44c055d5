package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	_ "storefront-service/docs"
	"storefront-service/internal/cache"
	"storefront-service/internal/hashing"
	"storefront-service/internal/metrics"
	"storefront-service/internal/producer"
	"storefront-service/internal/reminder"
	"storefront-service/internal/repository"
	"storefront-service/internal/router"
	"storefront-service/internal/sender"
	"storefront-service/internal/service"
	"storefront-service/internal/token"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title Storefront API
// @Version 1.0
// @Description API витрины игровых пополнений
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repo := repository.New(db)
	m := metrics.New("api")

	// Redis опционален: без него нет кэша заказов и корзин
	var (
		orderCache service.OrderCache
		cartStore  service.CartStore
	)
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second, cfg.Redis.CartTTL, log)
		if err != nil {
			log.Error("redis unavailable, continuing without cache and carts", zap.Error(err))
		} else {
			defer rc.Close()
			orderCache, cartStore = rc, rc
		}
	}

	// Kafka опциональна: без неё нет событий и e-mail уведомлений владельцу
	var (
		events   service.EventBus
		channels []service.OwnerChannel
	)
	if len(cfg.Kafka.Brokers) > 0 {
		ev := producer.NewEventProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
		defer ev.Close()
		events = ev
		if cfg.Owner.Email != "" {
			alerts := producer.NewAlertProducer(cfg.Kafka.Brokers, cfg.Kafka.AlertsTopic, cfg.Owner.Email, cfg.Owner.AlertTemplate)
			defer alerts.Close()
			channels = append(channels, alerts)
		}
	}
	if cfg.Owner.WhatsAppTo != "" {
		channels = append(channels, sender.NewWhatsAppSender(repo.ApiConfigs, cfg.Owner.WhatsAppAPI, cfg.Owner.WhatsAppTo, log))
	}
	if len(channels) == 0 {
		log.Warn("no owner alert channels configured")
	}

	notifier := service.NewNotificationService(repo, channels, m, log)
	orders := service.NewOrderService(repo, service.OrderServiceDeps{
		Notifier: notifier,
		Events:   events,
		Cache:    orderCache,
		Metrics:  m,
	}, log)

	var carts service.CartService
	if cartStore != nil {
		carts = service.NewCartService(cartStore, orders, log)
	}

	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	passwords, err := hashing.NewAdminPasswords(cfg.Admin.BcryptCost)
	if err != nil {
		log.Fatal("invalid BCRYPT_COST", zap.Error(err))
	}
	auth := service.NewAuthService(repo.Users, passwords, tokens, cfg.JWT.AccessExp, log)

	r := router.Router(router.Deps{
		Orders:        orders,
		Tracking:      service.NewTrackingService(repo, notifier, orderCache, log),
		Notifications: notifier,
		ApiConfigs:    service.NewApiConfigService(repo, log),
		Support:       service.NewSupportService(notifier, log),
		Carts:         carts,
		Auth:          auth,
		Metrics:       m,
		CORSOrigins:   cfg.CORS,
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sched *reminder.Scheduler
	if cfg.Reminder.Enabled && len(channels) > 0 {
		svc := reminder.NewService(repo.Orders, notifier, m, cfg.Reminder.PendingAfter, cfg.Reminder.BatchSize, log)
		sched = reminder.NewScheduler(svc, cfg.Reminder.Interval, log)
		sched.Start(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")
	if sched != nil {
		sched.Stop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
