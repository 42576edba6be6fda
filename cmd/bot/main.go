package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/app"
	"github.com/Freeeeeet/tutoring_bot/internal/config"
	"github.com/Freeeeeet/tutoring_bot/internal/controller"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/api"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/handlers"
	"github.com/Freeeeeet/tutoring_bot/internal/delayqueue"
	"github.com/Freeeeeet/tutoring_bot/internal/lock"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tutoring bot",
		zap.String("environment", cfg.Environment),
		zap.Bool("database", cfg.UseDatabase()),
		zap.Bool("telegram", cfg.TelegramToken != ""),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Application stopped with error", zap.Error(err))
	}
	logger.Info("👋 Shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	clock := model.RealClock{}

	// ===== Хранилища =====
	var (
		reservations service.ReservationStore
		tasks        delayqueue.TaskStore
	)
	if cfg.UseDatabase() {
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		logger.Info("✅ Connected to PostgreSQL")

		migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
		if err != nil {
			return err
		}
		if err := migrator.Run(ctx); err != nil {
			migrator.Close()
			return err
		}
		migrator.Close()

		reservations = repository.NewReservationRepository(pool)
		tasks = repository.NewReminderTaskRepository(pool)
	} else {
		logger.Warn("DB_DSN is empty, using in-memory storage")
		reservations = repository.NewMemoryReservationStore()
		tasks = repository.NewMemoryTaskStore()
	}

	// ===== Блокировки =====
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		locker = lock.NewRedisLocker(client, logger)
		logger.Info("✅ Using Redis booking lock", zap.String("addr", cfg.RedisAddr))
	}

	// ===== Бот и уведомления =====
	notifiers := delayqueue.NewMultiNotifier(logger)

	var b *bot.Bot
	if cfg.TelegramToken != "" {
		var err error
		b, err = bot.New(cfg.TelegramToken,
			bot.WithMiddlewares(handlers.StudentOnly(cfg.StudentChatID, logger)),
		)
		if err != nil {
			return fmt.Errorf("create telegram bot: %w", err)
		}
		notifiers.Add(delayqueue.NewTelegramNotifier(b, cfg.StudentChatID, cfg.NotifyRatePerSecond, logger))
	}

	if cfg.AMQPURL != "" {
		conn, err := amqp091.Dial(cfg.AMQPURL)
		if err != nil {
			return fmt.Errorf("connect to amqp: %w", err)
		}
		defer conn.Close()

		notifier, ch, err := delayqueue.NewAMQPNotifier(conn, cfg.AMQPQueue, logger)
		if err != nil {
			return err
		}
		defer ch.Close()

		notifiers.Add(notifier)
		logger.Info("✅ Publishing reminders to AMQP", zap.String("queue", cfg.AMQPQueue))
	}

	if notifiers.Len() == 0 {
		notifiers.Add(delayqueue.NewLogNotifier(logger))
	}

	// ===== Сервисы =====
	queue := delayqueue.NewQueue(tasks, notifiers, clock, cfg.ReminderBatchSize, logger)

	teacherService := service.NewTeacherService(repository.NewTeacherDirectory(cfg.TeachersFile, logger), logger)
	reminderService := service.NewReminderService(queue, clock, time.Local, logger)
	slotService := service.NewSlotService(reservations, teacherService, cfg.SlotDuration, logger)
	bookingService := service.NewBookingService(reservations, teacherService, reminderService, locker, cfg.SlotDuration, logger)

	scheduler := app.NewScheduler(queue, cfg.ReminderDispatchSpec, logger)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	// ===== Внешние интерфейсы =====
	var (
		wg   sync.WaitGroup
		errs = make(chan error, 2)
	)

	if b != nil {
		botController := controller.NewBotController(b, controller.Services{
			Teachers:  teacherService,
			Slots:     slotService,
			Booking:   bookingService,
			Reminders: reminderService,
		}, clock, logger)

		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := botController.Start(ctx); err != nil {
				errs <- fmt.Errorf("telegram bot: %w", err)
			}
		}()
	}

	if cfg.HTTPAddr != "" {
		router := api.NewRouter(&api.Controller{
			Log:       logger.Named("api"),
			Teachers:  teacherService,
			Slots:     slotService,
			Booking:   bookingService,
			Reminders: reminderService,
			Clock:     clock,
		}, cfg.HTTPRateLimit)

		server := api.NewServer(cfg.HTTPAddr, router, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.Run(ctx); err != nil {
				errs <- fmt.Errorf("http api: %w", err)
			}
		}()
	}

	if b == nil && cfg.HTTPAddr == "" {
		logger.Warn("Neither TELEGRAM_TOKEN nor HTTP_ADDR is set, only the reminder dispatcher is running")
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
		wg.Wait()
		return nil
	case err := <-errs:
		return err
	}
}
