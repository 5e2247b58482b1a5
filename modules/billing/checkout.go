package billing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrikit/agrikit/pkg/billing"
	"github.com/agrikit/agrikit/pkg/logger"
	"github.com/agrikit/agrikit/pkg/paypal"
	"github.com/agrikit/agrikit/pkg/subscription"
)

// CheckoutService exposes plan purchase: open a provider order, then
// capture it after buyer approval.
type CheckoutService struct {
	checkout *billing.Checkout
	log      *slog.Logger
}

// NewCheckoutService creates the checkout HTTP service.
func NewCheckoutService(checkout *billing.Checkout, log *slog.Logger) *CheckoutService {
	if log == nil {
		log = slog.Default()
	}
	return &CheckoutService{checkout: checkout, log: log}
}

func (s *CheckoutService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/orders", s.createOrder)
	r.Post("/orders/{orderID}/capture", s.captureOrder)
	return r
}

type createOrderRequest struct {
	PlanID       string `json:"plan_id"`
	BillingCycle string `json:"billing_cycle"`
	PromoCode    string `json:"promo_code,omitempty"`
}

type createOrderResponse struct {
	OrderID    string `json:"order_id"`
	ApproveURL string `json:"approve_url"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}

func (s *CheckoutService) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, response{Status: "error", Message: "invalid request body"})
		return
	}

	order, err := s.checkout.StartOrder(r.Context(),
		subscription.PlanID(req.PlanID), subscription.BillingCycle(req.BillingCycle), req.PromoCode)
	switch {
	case errors.Is(err, subscription.ErrPlanNotFound),
		errors.Is(err, subscription.ErrInvalidBillingCycle),
		errors.Is(err, billing.ErrPlanNotPurchasable),
		errors.Is(err, billing.ErrPromoNotUsable):
		respondJSON(w, http.StatusBadRequest, response{Status: "error", Message: err.Error()})
	case err != nil:
		s.log.ErrorContext(r.Context(), "failed to open checkout order", logger.Error(err))
		respondJSON(w, http.StatusInternalServerError, response{Status: "error", Message: "checkout unavailable"})
	default:
		respondJSON(w, http.StatusCreated, createOrderResponse{
			OrderID:    order.OrderID,
			ApproveURL: order.ApproveURL,
			Amount:     order.Amount,
			Currency:   order.Currency,
		})
	}
}

type captureOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func (s *CheckoutService) captureOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.checkout.CaptureOrder(r.Context(), chi.URLParam(r, "orderID"))
	switch {
	case errors.Is(err, paypal.ErrOrderNotFound):
		respondJSON(w, http.StatusNotFound, response{Status: "error", Message: "order not found"})
	case errors.Is(err, paypal.ErrOrderNotCompleted):
		respondJSON(w, http.StatusConflict, response{Status: "error", Message: "order not completed"})
	case err != nil:
		s.log.ErrorContext(r.Context(), "failed to capture checkout order", logger.Error(err))
		respondJSON(w, http.StatusInternalServerError, response{Status: "error", Message: "capture failed"})
	default:
		respondJSON(w, http.StatusOK, captureOrderResponse{OrderID: order.ID, Status: order.Status})
	}
}
