package migrate

import (
	"context"

	"storefront-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto для gen_random_uuid()
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы для выборок
	CreateFKsViaSQL        bool // FK notifications -> orders
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

type step struct {
	name string
	sql  string
}

func exec(db *gorm.DB, log *zap.Logger, steps []step) error {
	for _, s := range steps {
		if err := db.Exec(s.sql).Error; err != nil {
			log.Error("Не удалось выполнить шаг миграции", zap.String("step", s.name), zap.Error(err))
			return err
		}
	}
	return nil
}

func MigrateStorefrontDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")
	db = db.WithContext(ctx)

	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
	}

	log.Info("Создание таблиц orders, notifications, api_configurations, users")
	if err := db.AutoMigrate(&models.Order{}, &models.Notification{}, &models.ApiConfiguration{}, &models.User{}); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		if err := exec(db, log, []step{
			{"set_updated_at", `
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;`},
			{"trg_orders_updated", `
DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();`},
			{"trg_api_configurations_updated", `
DROP TRIGGER IF EXISTS trg_api_configurations_updated ON api_configurations;
CREATE TRIGGER trg_api_configurations_updated
BEFORE UPDATE ON api_configurations
FOR EACH ROW EXECUTE FUNCTION set_updated_at();`},
			{"trg_users_updated", `
DROP TRIGGER IF EXISTS trg_users_updated ON users;
CREATE TRIGGER trg_users_updated
BEFORE UPDATE ON users
FOR EACH ROW EXECUTE FUNCTION set_updated_at();`},
		}); err != nil {
			return err
		}
		log.Info("Триггеры updated_at успешно созданы")
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		if err := exec(db, log, []step{
			{"chk_orders_status_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','paid','processing','completed','cancelled'));`},
			{"chk_orders_payment_method_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_payment_method_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_payment_method_allowed
  CHECK (payment_method IN ('express','paypay','unitel','iban_bai','iban_bfa','presencial'));`},
			{"chk_orders_quantity_positive", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_quantity_positive;
ALTER TABLE orders ADD CONSTRAINT chk_orders_quantity_positive CHECK (quantity >= 1);`},
			{"chk_orders_amounts_non_negative", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_amounts_non_negative;
ALTER TABLE orders ADD CONSTRAINT chk_orders_amounts_non_negative
  CHECK (product_price >= 0 AND total_amount >= 0);`},
			{"chk_notifications_type_allowed", `
ALTER TABLE notifications DROP CONSTRAINT IF EXISTS chk_notifications_type_allowed;
ALTER TABLE notifications ADD CONSTRAINT chk_notifications_type_allowed
  CHECK (type IN ('order_created','order_paid','order_processing','order_completed','order_cancelled'));`},
			{"chk_users_role_allowed", `
ALTER TABLE users DROP CONSTRAINT IF EXISTS chk_users_role_allowed;
ALTER TABLE users ADD CONSTRAINT chk_users_role_allowed CHECK (role IN ('ROLE_USER','ROLE_ADMIN'));`},
		}); err != nil {
			return err
		}
		log.Info("CHECK-ограничения успешно созданы")
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")
		if err := exec(db, log, []step{
			{"ix_orders_status_created", `
CREATE INDEX IF NOT EXISTS ix_orders_status_created ON orders (status, created_at DESC);`},
			{"ix_orders_pending_unreminded", `
CREATE INDEX IF NOT EXISTS ix_orders_pending_unreminded ON orders (created_at)
  WHERE status = 'pending' AND reminded_at IS NULL;`},
			{"ix_notifications_order_created", `
CREATE INDEX IF NOT EXISTS ix_notifications_order_created ON notifications (order_id, created_at DESC);`},
		}); err != nil {
			return err
		}
		log.Info("Индексы успешно созданы")
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")
		if err := exec(db, log, []step{
			{"fk_notifications_order", `
ALTER TABLE notifications
  DROP CONSTRAINT IF EXISTS fk_notifications_order,
  ADD CONSTRAINT fk_notifications_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
		}); err != nil {
			return err
		}
		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}
