package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"storefront-service/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Port     string
	Env      string
	DB       DB
	Redis    Redis
	Kafka    Kafka
	JWT      JWT
	Owner    Owner
	Admin    Admin
	Reminder Reminder
	CORS     []string
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
	CartTTL    time.Duration
}

type Kafka struct {
	Brokers     []string
	AlertsTopic string
	EventsTopic string
	GroupID     string
}

type JWT struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessExp time.Duration
}

// Owner: куда уходят операционные уведомления владельцу магазина
type Owner struct {
	Email         string
	WhatsAppTo    string
	WhatsAppAPI   string
	AlertTemplate string
}

type Admin struct {
	Email      string
	Password   string
	BcryptCost int
}

type Reminder struct {
	Enabled      bool
	Interval     time.Duration
	PendingAfter time.Duration
	BatchSize    int
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SSL      bool
}

type NotifierConfig struct {
	SMTP    SMTP
	TMPLDir string
	Kafka   Kafka
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: listenAddr(getEnv("APP_PORT", log)),
		Env:  getEnvDefault("ENV", "production"),
		DB:   loadDB(log),
		Redis: Redis{
			Enabled:    getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:       getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password:   getEnvDefault("REDIS_PASSWORD", ""),
			DB:         atoiDefault(getEnvDefault("REDIS_DB", "0"), 0),
			TTLSeconds: atoiDefault(getEnvDefault("CACHE_TTL_SECONDS", "60"), 60),
			CartTTL:    durationEnv("CART_TTL", "7d", log),
		},
		Kafka: Kafka{
			Brokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			AlertsTopic: getEnvDefault("KAFKA_TOPIC_ALERTS", "owner-alerts"),
			EventsTopic: getEnvDefault("KAFKA_TOPIC_EVENTS", "order-events"),
		},
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    getEnvDefault("JWT_ISSUER", "storefront"),
			Audience:  getEnvDefault("JWT_AUDIENCE", "storefront-admin"),
			AccessExp: durationEnv("ACCESS_EXP", "12h", log),
		},
		Owner: Owner{
			Email:         getEnvDefault("OWNER_EMAIL", ""),
			WhatsAppTo:    getEnvDefault("OWNER_WHATSAPP", ""),
			WhatsAppAPI:   getEnvDefault("WHATSAPP_API_URL", "https://graph.facebook.com/v21.0"),
			AlertTemplate: getEnvDefault("OWNER_ALERT_TEMPLATE", "owner_alert"),
		},
		Admin: loadAdmin(),
		Reminder: Reminder{
			Enabled:      getEnvDefault("REMINDER_ENABLED", "true") == "true",
			Interval:     durationEnv("REMINDER_INTERVAL", "15m", log),
			PendingAfter: durationEnv("REMINDER_PENDING_AFTER", "2h", log),
			BatchSize:    atoiDefault(getEnvDefault("REMINDER_BATCH_SIZE", "50"), 50),
		},
		CORS: splitAndTrim(getEnvDefault("CORS_ORIGINS", "*")),
	}
}

// listenAddr допускает APP_PORT как "8080", так и ":8080" / "0.0.0.0:8080"
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// LoadAdmin: учётка администратора для сидирования в cmd/migrate
func LoadAdmin() Admin { return loadAdmin() }

func loadAdmin() Admin {
	return Admin{
		Email:      getEnvDefault("ADMIN_EMAIL", ""),
		Password:   getEnvDefault("ADMIN_PASSWORD", ""),
		BcryptCost: atoiDefault(getEnvDefault("BCRYPT_COST", "0"), 0),
	}
}

// LoadDB: только база, для cmd/migrate
func LoadDB(log *zap.Logger) DB { return loadDB(log) }

func loadDB(log *zap.Logger) DB {
	return DB{
		Config: database.Config{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnv("DB_SSLMODE", log),
		},
	}
}

func LoadNotifier(log *zap.Logger) *NotifierConfig {
	return &NotifierConfig{
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", log),
			Port:     getEnvInt("SMTP_PORT", log),
			User:     getEnv("SMTP_USER", log),
			Password: getEnv("SMTP_PASSWORD", log),
			From:     getEnv("SMTP_FROM", log),
			SSL:      getEnvDefault("SMTP_SSL", "true") == "true",
		},
		TMPLDir: getEnvDefault("TMPL_DIR", "templates"),
		Kafka: Kafka{
			Brokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			AlertsTopic: getEnvDefault("KAFKA_TOPIC_ALERTS", "owner-alerts"),
			GroupID:     getEnv("KAFKA_GROUP_ID", log),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, log *zap.Logger) int {
	valStr := getEnv(key, log)
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Error("Ошибка преобразования переменной окружения в int", zap.String("key", key), zap.Error(err))
		panic("invalid int value for environment variable: " + key)
	}
	return val
}

// durationEnv: нулевая или отрицательная длительность не допускается (TTL 0 в redis = без срока,
// тикер с 0 паникует), поэтому невалидное значение заменяется значением по умолчанию
func durationEnv(key, def string, log *zap.Logger) time.Duration {
	raw := getEnvDefault(key, def)
	if d := parseDurationWithDays(raw); d > 0 {
		return d
	}
	log.Warn("Некорректная длительность, используется значение по умолчанию",
		zap.String("key", key), zap.String("value", raw), zap.String("default", def))
	return parseDurationWithDays(def)
}

func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0
		}
		return time.Duration(days) * 24 * time.Hour
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
