// Package api предоставляет маршруты основного приложения.
package api

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	adminlistaccounts "github.com/magabrotheeeer/control-financiero/internal/http/handlers/admin/listaccounts"
	adminreactivate "github.com/magabrotheeeer/control-financiero/internal/http/handlers/admin/reactivate"
	adminsuspend "github.com/magabrotheeeer/control-financiero/internal/http/handlers/admin/suspend"
	adminupdatesubscription "github.com/magabrotheeeer/control-financiero/internal/http/handlers/admin/updatesubscription"
	"github.com/magabrotheeeer/control-financiero/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/control-financiero/internal/http/handlers/auth/register"
	contactcreate "github.com/magabrotheeeer/control-financiero/internal/http/handlers/contact/create"
	contactlist "github.com/magabrotheeeer/control-financiero/internal/http/handlers/contact/list"
	contactremove "github.com/magabrotheeeer/control-financiero/internal/http/handlers/contact/remove"
	contactupdate "github.com/magabrotheeeer/control-financiero/internal/http/handlers/contact/update"
	eventcreate "github.com/magabrotheeeer/control-financiero/internal/http/handlers/event/create"
	eventlist "github.com/magabrotheeeer/control-financiero/internal/http/handlers/event/list"
	eventremove "github.com/magabrotheeeer/control-financiero/internal/http/handlers/event/remove"
	"github.com/magabrotheeeer/control-financiero/internal/http/handlers/health"
	notificationlist "github.com/magabrotheeeer/control-financiero/internal/http/handlers/notification/list"
	notificationmarkread "github.com/magabrotheeeer/control-financiero/internal/http/handlers/notification/markread"
	quotationcreate "github.com/magabrotheeeer/control-financiero/internal/http/handlers/quotation/create"
	quotationlist "github.com/magabrotheeeer/control-financiero/internal/http/handlers/quotation/list"
	quotationread "github.com/magabrotheeeer/control-financiero/internal/http/handlers/quotation/read"
	quotationupdatestatus "github.com/magabrotheeeer/control-financiero/internal/http/handlers/quotation/updatestatus"
	transactioncreate "github.com/magabrotheeeer/control-financiero/internal/http/handlers/transaction/create"
	transactionlist "github.com/magabrotheeeer/control-financiero/internal/http/handlers/transaction/list"
	transactionremove "github.com/magabrotheeeer/control-financiero/internal/http/handlers/transaction/remove"
	transactionsummary "github.com/magabrotheeeer/control-financiero/internal/http/handlers/transaction/summary"
	"github.com/magabrotheeeer/control-financiero/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, services *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, services.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, services.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, services.Storage).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(services.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/contacts", contactcreate.New(logger, services.Contact).ServeHTTP)
			r.Get("/contacts", contactlist.New(logger, services.Contact).ServeHTTP)
			r.Put("/contacts/{id}", contactupdate.New(logger, services.Contact).ServeHTTP)
			r.Delete("/contacts/{id}", contactremove.New(logger, services.Contact).ServeHTTP)

			r.Post("/transactions", transactioncreate.New(logger, services.Transaction).ServeHTTP)
			r.Get("/transactions", transactionlist.New(logger, services.Transaction).ServeHTTP)
			r.Get("/transactions/summary", transactionsummary.New(logger, services.Transaction).ServeHTTP)
			r.Delete("/transactions/{id}", transactionremove.New(logger, services.Transaction).ServeHTTP)

			r.Post("/quotations", quotationcreate.New(logger, services.Quotation).ServeHTTP)
			r.Get("/quotations", quotationlist.New(logger, services.Quotation).ServeHTTP)
			r.Get("/quotations/{id}", quotationread.New(logger, services.Quotation).ServeHTTP)
			r.Patch("/quotations/{id}/status", quotationupdatestatus.New(logger, services.Quotation).ServeHTTP)

			r.Post("/events", eventcreate.New(logger, services.Event).ServeHTTP)
			r.Get("/events", eventlist.New(logger, services.Event).ServeHTTP)
			r.Delete("/events/{id}", eventremove.New(logger, services.Event).ServeHTTP)

			r.Get("/notifications", notificationlist.New(logger, services.Notification).ServeHTTP)
			r.Patch("/notifications/{id}/read", notificationmarkread.New(logger, services.Notification).ServeHTTP)

			// Административные маршруты
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Get("/admin/accounts", adminlistaccounts.New(logger, services.Admin).ServeHTTP)
				r.Patch("/admin/accounts/{uid}/subscription", adminupdatesubscription.New(logger, services.Admin).ServeHTTP)
				r.Post("/admin/accounts/{uid}/suspend", adminsuspend.New(logger, services.Admin).ServeHTTP)
				r.Post("/admin/accounts/{uid}/reactivate", adminreactivate.New(logger, services.Admin).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
