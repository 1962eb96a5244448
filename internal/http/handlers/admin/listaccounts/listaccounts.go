// Package listaccounts реализует HTTP-обработчик списка учетных записей
// для администратора.
package listaccounts

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/control-financiero/internal/http/response"
	"github.com/magabrotheeeer/control-financiero/internal/lib/sl"
	"github.com/magabrotheeeer/control-financiero/internal/models"
)

// Service описывает интерфейс бизнес-логики списка учетных записей.
type Service interface {
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error)
}

// Handler управляет HTTP-запросами администратора на список учетных записей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// accountView — ответ без хэша пароля.
type accountView struct {
	UID                 string     `json:"uid"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	DisplayName         string     `json:"display_name"`
	Role                string     `json:"role"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
	IsSuspended         bool       `json:"is_suspended"`
	CreatedAt           time.Time  `json:"created_at"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список учетных записей
// @Description Возвращает учетные записи сервиса. Доступно только администратору.
// @Tags Admin
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список учетных записей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/accounts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.listaccounts"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	accounts, err := h.service.ListAccounts(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list accounts"))
		return
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView{
			UID:                 a.UID,
			Username:            a.Username,
			Email:               a.Email,
			DisplayName:         a.DisplayName(),
			Role:                a.Role,
			SubscriptionEndDate: a.SubscriptionEndDate,
			IsSuspended:         a.IsSuspended,
			CreatedAt:           a.CreatedAt,
		})
	}

	log.Info("accounts listed", "count", len(views))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(views),
		"accounts":   views,
	}))
}
