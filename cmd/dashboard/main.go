package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutor_dashboard/internal/app"
	"github.com/Freeeeeet/tutor_dashboard/internal/config"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting tutor dashboard",
		zap.String("environment", cfg.Environment),
		zap.Int("grid_days", cfg.GridDays),
		zap.String("timezone", cfg.Location().String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Dashboard stopped with error", zap.Error(err))
	}

	logger.Info("Dashboard stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	loc := cfg.Location()
	repos := repository.NewRepositories(pool)
	txManager := repository.NewPostgresTxManager(pool)

	userService := service.NewUserService(repos.Users, logger)
	bookingService := service.NewBookingService(repos, txManager, loc, logger)
	schedulingService := service.NewSchedulingService(repos, logger)
	gridService := service.NewGridService(repos, txManager, logger)

	scheduler := app.NewScheduler(bookingService, cfg.CompletionInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	var botController *controller.BotController
	b, err := bot.New(cfg.TelegramToken,
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			botController.DefaultHandler(ctx, b, update)
		}),
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram error", zap.Error(err))
		}),
		// Правки сетки принимаются и во время её сохранения
		bot.WithWorkers(4),
	)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController = controller.NewBotController(b, controller.Services{
		Users:      userService,
		Bookings:   bookingService,
		Scheduling: schedulingService,
		Grids:      gridService,
	}, cfg.GridDays, loc, logger)

	if err := botController.RegisterHandlers(ctx); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	botController.Start(ctx)
	return nil
}
