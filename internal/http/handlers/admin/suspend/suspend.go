// Package suspend реализует HTTP-обработчик ручной блокировки учетной записи.
package suspend

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/control-financiero/internal/http/response"
	"github.com/magabrotheeeer/control-financiero/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики блокировки учетной записи.
type Service interface {
	Suspend(ctx context.Context, accountUID string) (bool, error)
}

// Handler управляет HTTP-запросами на блокировку учетной записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Заблокировать учетную запись
// @Description Блокирует учетную запись вручную. Повторная блокировка безопасна. Доступно только администратору.
// @Tags Admin
// @Produce  json
// @Param uid path string true "UID учетной записи"
// @Success 200 {object} map[string]any "Результат блокировки"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/accounts/{uid}/suspend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.suspend"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountUID := chi.URLParam(r, "uid")
	if accountUID == "" {
		log.Error("missing account uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing account uid"))
		return
	}

	flipped, err := h.service.Suspend(r.Context(), accountUID)
	if err != nil {
		log.Error("failed to suspend account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to suspend account"))
		return
	}

	log.Info("account suspension requested", slog.String("account_uid", accountUID), slog.Bool("flipped", flipped))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account_uid": accountUID,
		"suspended":   true,
		"changed":     flipped,
	}))
}
