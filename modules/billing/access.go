package billing

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/entitlement"
	"github.com/agrikit/agrikit/pkg/logger"
	"github.com/agrikit/agrikit/pkg/tenant"
	"github.com/agrikit/agrikit/pkg/user"
)

// userIDHeader is set by the authenticating edge proxy.
const userIDHeader = "X-User-ID"

// AccessService serves the evaluated feature-access matrix for a
// tenant and the calling user.
type AccessService struct {
	tenants  tenant.Store
	profiles user.Store
	log      *slog.Logger
}

// NewAccessService creates the access-matrix HTTP service.
func NewAccessService(tenants tenant.Store, profiles user.Store, log *slog.Logger) *AccessService {
	if log == nil {
		log = slog.Default()
	}
	return &AccessService{tenants: tenants, profiles: profiles, log: log}
}

func (s *AccessService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/{tenantID}/access", s.access)
	return r
}

func (s *AccessService) access(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, response{Status: "error", Message: "invalid tenant id"})
		return
	}
	userID, err := uuid.Parse(r.Header.Get(userIDHeader))
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, response{Status: "error", Message: "missing caller identity"})
		return
	}

	t, err := s.tenants.GetByID(r.Context(), tenantID)
	if errors.Is(err, tenant.ErrTenantNotFound) {
		respondJSON(w, http.StatusNotFound, response{Status: "error", Message: "tenant not found"})
		return
	}
	if err != nil {
		s.log.ErrorContext(r.Context(), "failed to load tenant",
			logger.TenantID(tenantID), logger.Error(err))
		respondJSON(w, http.StatusInternalServerError, response{Status: "error", Message: "lookup failed"})
		return
	}

	p, err := s.profiles.GetByID(r.Context(), userID)
	if errors.Is(err, user.ErrProfileNotFound) {
		respondJSON(w, http.StatusForbidden, response{Status: "error", Message: "unknown user"})
		return
	}
	if err != nil {
		s.log.ErrorContext(r.Context(), "failed to load profile",
			logger.UserID(userID), logger.Error(err))
		respondJSON(w, http.StatusInternalServerError, response{Status: "error", Message: "lookup failed"})
		return
	}

	access := entitlement.Evaluate(t.Subscription, p.Roles, time.Now().UTC())
	respondJSON(w, http.StatusOK, access)
}
