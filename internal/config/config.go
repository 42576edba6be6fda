package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string

	TelegramToken string
	StudentChatID int64

	DBDSN          string
	MigrationsPath string
	TeachersFile   string

	SlotDuration         time.Duration
	ReminderDispatchSpec string
	ReminderBatchSize    int

	HTTPAddr      string
	HTTPRateLimit int

	RedisAddr     string
	RedisPassword string

	AMQPURL   string
	AMQPQueue string

	NotifyRatePerSecond float64
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		Environment:          getString("ENV", "development"),
		TelegramToken:        os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:                os.Getenv("DB_DSN"),
		MigrationsPath:       getString("MIGRATIONS_PATH", "migrations"),
		TeachersFile:         getString("TEACHERS_FILE", "data/teachers.json"),
		ReminderDispatchSpec: getString("REMINDER_DISPATCH_SPEC", "@every 15s"),
		HTTPAddr:             os.Getenv("HTTP_ADDR"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		AMQPURL:              os.Getenv("AMQP_URL"),
		AMQPQueue:            getString("AMQP_QUEUE", "tutoring.reminders"),
	}

	var err error

	if cfg.StudentChatID, err = getInt64("STUDENT_CHAT_ID", 0); err != nil {
		return nil, err
	}

	slotMinutes, err := getInt("SLOT_DURATION_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("SLOT_DURATION_MINUTES must be positive, got %d", slotMinutes)
	}
	cfg.SlotDuration = time.Duration(slotMinutes) * time.Minute

	if cfg.ReminderBatchSize, err = getInt("REMINDER_BATCH_SIZE", 50); err != nil {
		return nil, err
	}
	if cfg.HTTPRateLimit, err = getInt("HTTP_RATE_LIMIT", 60); err != nil {
		return nil, err
	}
	if cfg.NotifyRatePerSecond, err = getFloat("NOTIFY_RATE_PER_SECOND", 20); err != nil {
		return nil, err
	}

	// Проверяем согласованность
	if cfg.TelegramToken != "" && cfg.StudentChatID == 0 {
		return nil, fmt.Errorf("STUDENT_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

// UseDatabase - включён ли PostgreSQL (иначе хранилища в памяти)
func (c *Config) UseDatabase() bool {
	return c.DBDSN != ""
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}
