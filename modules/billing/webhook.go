package billing

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrikit/agrikit/pkg/billing"
	"github.com/agrikit/agrikit/pkg/logger"
)

// signatureHeader carries the provider's HMAC of the raw body.
const signatureHeader = "X-Paystack-Signature"

// maxWebhookBody bounds how much payload the endpoint will read.
const maxWebhookBody = 1 << 20

// WebhookService terminates payment-provider webhook deliveries.
type WebhookService struct {
	reconciler *billing.Reconciler
	log        *slog.Logger
}

// NewWebhookService creates the webhook HTTP service.
func NewWebhookService(reconciler *billing.Reconciler, log *slog.Logger) *WebhookService {
	if log == nil {
		log = slog.Default()
	}
	return &WebhookService{reconciler: reconciler, log: log}
}

func (s *WebhookService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/paystack", s.paystackWebhook)
	return r
}

// paystackWebhook maps reconciler outcomes to provider-facing status
// codes: 401 for bad signatures, 400 for payloads a retry cannot fix,
// 500 for transient failures the provider should redeliver, and 200
// for everything settled, no-ops included.
func (s *WebhookService) paystackWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, response{Status: "error", Message: "unreadable body"})
		return
	}

	outcome, err := s.reconciler.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader))
	switch {
	case errors.Is(err, billing.ErrSignatureMismatch):
		s.log.WarnContext(r.Context(), "webhook rejected: bad signature")
		respondJSON(w, http.StatusUnauthorized, response{Status: "error", Message: "invalid signature"})
	case errors.Is(err, billing.ErrMalformedPayload), errors.Is(err, billing.ErrMissingMetadata):
		s.log.WarnContext(r.Context(), "webhook rejected: bad payload", logger.Error(err))
		respondJSON(w, http.StatusBadRequest, response{Status: "error", Message: err.Error()})
	case err != nil:
		s.log.ErrorContext(r.Context(), "webhook processing failed", logger.Error(err))
		respondJSON(w, http.StatusInternalServerError, response{Status: "error", Message: "processing failed"})
	case outcome.Applied:
		respondJSON(w, http.StatusOK, response{Status: "success", Message: "subscription activated"})
	default:
		respondJSON(w, http.StatusOK, response{Status: "success", Message: "event acknowledged: " + outcome.Reason})
	}
}
