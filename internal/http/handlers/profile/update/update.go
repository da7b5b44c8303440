// Package update реализует HTTP-обработчик обновления профиля текущего пользователя.
//
// Обработчик принимает PUT (полное обновление) и PATCH (частичное обновление).
// Тело запроса декодируется в закрытую структуру с тремя разрешёнными полями:
// first_name, last_name и birth_date; любые другие ключи молча отбрасываются.
// Дата рождения в будущем отклоняется с ошибкой, привязанной к полю.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-commerce/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-commerce/internal/http/response"
	"github.com/magabrotheeeer/subscription-commerce/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-commerce/internal/models"
	profileservice "github.com/magabrotheeeer/subscription-commerce/internal/services/profile"
)

// Handler управляет HTTP-запросами обновления профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	Update(ctx context.Context, userUID string, req models.DummyProfileUpdate, partial bool) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновить профиль пользователя
// @Description Обновляет first_name, last_name и birth_date. PUT выполняет полное
// @Description обновление, PATCH — частичное. Остальные поля профиля изменить нельзя.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param request body models.DummyProfileUpdate true "Редактируемые поля профиля"
// @Success 200 {object} models.UserView "Обновленный профиль"
// @Failure 400 {object} response.Response "Некорректный JSON или дата рождения"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	partial := r.Method == http.MethodPatch

	user, err := h.service.Update(r.Context(), userUID, req, partial)
	if err != nil {
		switch {
		case errors.Is(err, profileservice.ErrBirthDateInFuture):
			log.Error("birth date is in the future")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.FieldError("birth_date", "Birth date cannot be in the future."))
		case errors.Is(err, profileservice.ErrInvalidBirthDate):
			log.Error("invalid birth date format")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.FieldError("birth_date", "Birth date must be a valid date in format YYYY-MM-DD."))
		default:
			log.Error("failed to update profile", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update profile"))
		}
		return
	}

	log.Info("success to update profile", slog.Bool("partial", partial))
	render.JSON(w, r, user.View())
}
