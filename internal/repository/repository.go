package repository

import "gorm.io/gorm"

type Repository struct {
	DB            *gorm.DB
	Orders        OrderRepo
	Notifications NotificationRepo
	ApiConfigs    ApiConfigRepo
	Users         UserRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:            db,
		Orders:        NewOrderRepo(db),
		Notifications: NewNotificationRepo(db),
		ApiConfigs:    NewApiConfigRepo(db),
		Users:         NewUserRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }
