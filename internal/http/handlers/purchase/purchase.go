// Package purchase реализует HTTP-обработчик покупки тарифного плана.
//
// Handler принимает JSON-запрос с plan_id, извлекает UID пользователя из контекста,
// вызывает транзакцию покупки через сервис и возвращает результат в формате
// {"success": ..., ...}. Ошибки плана и баланса транслируются в коды 404 и 400.
package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-commerce/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-commerce/internal/http/response"
	"github.com/magabrotheeeer/subscription-commerce/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-commerce/internal/models"
	"github.com/magabrotheeeer/subscription-commerce/internal/storage/repository"
)

// SuccessResponse — тело успешного ответа на покупку.
type SuccessResponse struct {
	Success      bool             `json:"success"`
	Message      string           `json:"message"`
	Subscription SubscriptionInfo `json:"subscription"`
	Balance      float64          `json:"balance"`
}

// SubscriptionInfo — данные созданной подписки в ответе.
type SubscriptionInfo struct {
	ID        int64  `json:"id"`
	PlanName  string `json:"plan_name"`
	ExpiresAt string `json:"expires_at"`
}

// ErrorResponse — тело ответа с ошибкой покупки.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handler управляет HTTP-запросами на покупку подписки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики покупки
}

// Service описывает интерфейс бизнес-логики покупки подписки.
type Service interface {
	Purchase(ctx context.Context, userUID string, planID int64) (*models.PurchaseResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Купить тарифный план
// @Description Списывает цену плана с баланса пользователя и создает подписку.
// @Description Действующая подписка продлевается: новый срок отсчитывается от ее даты истечения.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body models.DummyPurchase true "ID тарифного плана"
// @Success 201 {object} SuccessResponse "Подписка куплена"
// @Failure 400 {object} ErrorResponse "Отсутствует plan_id или недостаточно средств"
// @Failure 404 {object} ErrorResponse "План не найден или неактивен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} ErrorResponse "Ошибка сервера при покупке"
// @Security BearerAuth
// @Router /purchase-subscription [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.purchase"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPurchase
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Success: false, Error: "invalid request body"})
		return
	}

	if req.PlanID == 0 {
		log.Error("plan_id is missing in request")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Success: false, Error: "plan_id is required"})
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.Purchase(r.Context(), userUID, req.PlanID)
	if err != nil {
		var insufficientErr *repository.InsufficientBalanceError
		switch {
		case errors.Is(err, repository.ErrPlanNotFound):
			log.Error("plan not found or inactive", slog.Int64("plan_id", req.PlanID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, ErrorResponse{Success: false, Error: "Subscription plan not found or inactive"})
		case errors.As(err, &insufficientErr):
			log.Error("insufficient balance", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Success: false, Error: insufficientErr.Error()})
		default:
			log.Error("failed to purchase subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Success: false, Error: "could not purchase subscription"})
		}
		return
	}

	log.Info("success to purchase subscription",
		slog.Int64("subscription_id", result.SubscriptionID),
		slog.String("plan_name", result.PlanName))

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, SuccessResponse{
		Success: true,
		Message: "Subscription \"" + result.PlanName + "\" purchased successfully",
		Subscription: SubscriptionInfo{
			ID:        result.SubscriptionID,
			PlanName:  result.PlanName,
			ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		},
		Balance: result.Balance,
	})
}
