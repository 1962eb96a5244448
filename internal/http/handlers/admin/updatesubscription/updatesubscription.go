// Package updatesubscription реализует HTTP-обработчик изменения срока
// подписки учетной записи администратором.
package updatesubscription

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/control-financiero/internal/http/response"
	"github.com/magabrotheeeer/control-financiero/internal/lib/sl"
)

// Request — входные данные для изменения срока подписки.
// Пустая дата снимает учетную запись с контроля срока.
type Request struct {
	EndDate string `json:"end_date" validate:"omitempty,datetime=02-01-2006"`
}

// Service описывает интерфейс бизнес-логики изменения срока подписки.
type Service interface {
	UpdateSubscriptionEndDate(ctx context.Context, accountUID, endDate string) error
}

// Handler управляет HTTP-запросами на изменение срока подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить срок подписки
// @Description Устанавливает новый срок подписки учетной записи. Пустая дата снимает запись с контроля. Доступно только администратору.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param uid path string true "UID учетной записи"
// @Param request body Request true "Новый срок подписки"
// @Success 200 {object} map[string]any "Срок подписки обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/accounts/{uid}/subscription [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.updatesubscription"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.UpdateSubscriptionEndDate(r.Context(), accountUID, req.EndDate); err != nil {
		log.Error("failed to update subscription end date", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update subscription end date"))
		return
	}

	log.Info("subscription end date updated", slog.String("account_uid", accountUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"account_uid": accountUID,
		"end_date":    req.EndDate,
	}))
}
