// Package reactivate реализует HTTP-обработчик снятия блокировки
// с учетной записи.
package reactivate

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

// Service описывает интерфейс бизнес-логики снятия блокировки.
type Service interface {
	Reactivate(ctx context.Context, accountUID string) error
}

// Handler управляет HTTP-запросами на снятие блокировки.
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
// @Summary Снять блокировку учетной записи
// @Description Снимает блокировку с учетной записи. Доступно только администратору.
// @Tags Admin
// @Produce  json
// @Param uid path string true "UID учетной записи"
// @Success 200 {object} map[string]any "Блокировка снята"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/accounts/{uid}/reactivate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.reactivate"

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

	if err := h.service.Reactivate(r.Context(), accountUID); err != nil {
		log.Error("failed to reactivate account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to reactivate account"))
		return
	}

	log.Info("account reactivated", slog.String("account_uid", accountUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account_uid": accountUID,
		"suspended":   false,
	}))
}
