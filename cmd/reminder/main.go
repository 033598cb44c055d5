package main

import (
	"context"
	"os"
	"time"

	"storefront-service/config"
	"storefront-service/internal/producer"
	"storefront-service/internal/reminder"
	"storefront-service/internal/repository"
	"storefront-service/internal/sender"
	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Разовый прогон напоминания о зависших pending-заказах (для cron)
func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()
	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repo := repository.New(db)

	var channels []service.OwnerChannel
	if len(cfg.Kafka.Brokers) > 0 && cfg.Owner.Email != "" {
		alerts := producer.NewAlertProducer(cfg.Kafka.Brokers, cfg.Kafka.AlertsTopic, cfg.Owner.Email, cfg.Owner.AlertTemplate)
		defer alerts.Close()
		channels = append(channels, alerts)
	}
	if cfg.Owner.WhatsAppTo != "" {
		channels = append(channels, sender.NewWhatsAppSender(repo.ApiConfigs, cfg.Owner.WhatsAppAPI, cfg.Owner.WhatsAppTo, log))
	}
	if len(channels) == 0 {
		log.Fatal("no owner channels configured (KAFKA_BROKERS + OWNER_EMAIL or OWNER_WHATSAPP)")
	}

	notifier := service.NewNotificationService(repo, channels, nil, log)
	svc := reminder.NewService(repo.Orders, notifier, nil, cfg.Reminder.PendingAfter, cfg.Reminder.BatchSize, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := svc.RemindStalePending(ctx)
	if err != nil {
		log.Fatal("reminder run failed", zap.Error(err))
	}
	log.Info("reminder completed", zap.Int("orders", n))
}
