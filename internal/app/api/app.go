// Package api собирает HTTP API сервиса Control Financiero: хранилище,
// кеш, миграции, бизнес-сервисы и маршруты.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/control-financiero/internal/config"
	"github.com/magabrotheeeer/control-financiero/internal/lib/jwt"
	"github.com/magabrotheeeer/control-financiero/internal/migrations"
	adminservice "github.com/magabrotheeeer/control-financiero/internal/services/admin"
	authservice "github.com/magabrotheeeer/control-financiero/internal/services/auth"
	contactservice "github.com/magabrotheeeer/control-financiero/internal/services/contact"
	eventservice "github.com/magabrotheeeer/control-financiero/internal/services/event"
	notificationservice "github.com/magabrotheeeer/control-financiero/internal/services/notification"
	quotationservice "github.com/magabrotheeeer/control-financiero/internal/services/quotation"
	transactionservice "github.com/magabrotheeeer/control-financiero/internal/services/transaction"
	"github.com/magabrotheeeer/control-financiero/internal/storage/cache"
	"github.com/magabrotheeeer/control-financiero/internal/storage/repository"
)

// App представляет HTTP API приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// Services агрегирует бизнес-сервисы, используемые маршрутами.
type Services struct {
	Auth         *authservice.AuthService
	Contact      *contactservice.ContactService
	Transaction  *transactionservice.TransactionService
	Quotation    *quotationservice.QuotationService
	Event        *eventservice.EventService
	Notification *notificationservice.NotificationService
	Admin        *adminservice.AdminService
	Storage      *repository.Storage
}

// New создает новый экземпляр HTTP API приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	services := &Services{
		Auth:         authservice.NewAuthService(db, jwtMaker),
		Contact:      contactservice.NewContactService(db),
		Transaction:  transactionservice.NewTransactionService(db, cacheRedis, logger),
		Quotation:    quotationservice.NewQuotationService(db, logger),
		Event:        eventservice.NewEventService(db),
		Notification: notificationservice.NewNotificationService(db),
		Admin:        adminservice.NewAdminService(db, logger),
		Storage:      db,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP сервер и контролирует graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
