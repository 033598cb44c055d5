package main

import (
	"context"
	"os"
	"time"

	"storefront-service/config"
	"storefront-service/internal/hashing"
	"storefront-service/internal/migrate"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	dbCfg := config.LoadDB(log)

	db := database.ConnectDBForMigration(&dbCfg.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()
	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateStorefrontDB(ctx, db, log, opts); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}
	log.Info("Миграция успешно завершена")

	// администратор создаётся только если заданы ADMIN_EMAIL и ADMIN_PASSWORD
	admin := config.LoadAdmin()
	if admin.Email == "" || admin.Password == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD не заданы, пропускаем создание администратора")
		return
	}
	passwords, err := hashing.NewAdminPasswords(admin.BcryptCost)
	if err != nil {
		log.Fatal("Некорректный BCRYPT_COST", zap.Error(err))
	}
	repo := repository.New(db)
	auth := service.NewAuthService(repo.Users, passwords, nil, time.Hour, log)
	created, err := auth.EnsureAdmin(ctx, admin.Email, admin.Password)
	if err != nil {
		log.Fatal("Не удалось создать администратора", zap.Error(err))
	}
	if !created {
		log.Info("Администратор уже существует", zap.String("email", admin.Email))
	}
}
