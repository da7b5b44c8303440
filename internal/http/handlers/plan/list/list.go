// Package list реализует HTTP-обработчик каталога тарифных планов.
//
// Конечная точка открытая: аутентификация не требуется. Возвращает JSON-массив
// активных планов по возрастанию цены; пустой массив — корректный результат.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-commerce/internal/http/response"
	"github.com/magabrotheeeer/subscription-commerce/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-commerce/internal/models"
)

// Handler управляет HTTP-запросами списка тарифных планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога планов.
type Service interface {
	ListActivePlans(ctx context.Context) ([]*models.Plan, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список активных тарифных планов
// @Description Возвращает все активные планы, отсортированные по возрастанию цены.
// @Tags Plans
// @Produce  json
// @Success 200 {array} models.Plan "Список планов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription-plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.ListActivePlans(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscription plans"))
		return
	}
	if plans == nil {
		plans = []*models.Plan{}
	}

	log.Info("list plans", slog.Int("count", len(plans)))
	render.JSON(w, r, plans)
}
