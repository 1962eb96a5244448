// Package checker собирает сервис ежедневной проверки подписок: хранилище,
// SMTP транспорт и цикл проверки.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/control-financiero/internal/config"
	"github.com/magabrotheeeer/control-financiero/internal/lib/smtp"
	lifecycleservice "github.com/magabrotheeeer/control-financiero/internal/services/lifecycle"
	notifierservice "github.com/magabrotheeeer/control-financiero/internal/services/notifier"
	senderservice "github.com/magabrotheeeer/control-financiero/internal/services/sender"
	"github.com/magabrotheeeer/control-financiero/internal/storage/repository"
)

// App представляет приложение ежедневной проверки подписок.
type App struct {
	lifecycleService *lifecycleservice.LifecycleService
	db               *repository.Storage
	logger           *slog.Logger
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	for range 10 {
		err := db.CheckDatabaseReady(ctx)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения проверки подписок.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(ctx, db); err != nil {
		_ = db.DB.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(logger, transport)
	notifierService := notifierservice.NewNotifierService(db, senderService, logger)
	lifecycleService := lifecycleservice.NewLifecycleService(db, notifierService, logger)

	return &App{
		lifecycleService: lifecycleService,
		db:               db,
		logger:           logger,
	}, nil
}

// Run запускает цикл ежедневной проверки и ждет отмены контекста.
func (a *App) Run(ctx context.Context) error {
	go a.lifecycleService.Run(ctx)

	<-ctx.Done()

	a.logger.Info("shutting down subscription checker")
	return a.db.DB.Close()
}
