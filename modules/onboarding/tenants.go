package onboarding

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agrikit/agrikit/pkg/logger"
	"github.com/agrikit/agrikit/pkg/onboarding"
)

// TenantService handles admin-driven workspace creation.
type TenantService struct {
	svc *onboarding.Service
	log *slog.Logger
}

// NewTenantService creates the tenant HTTP service.
func NewTenantService(svc *onboarding.Service, log *slog.Logger) *TenantService {
	if log == nil {
		log = slog.Default()
	}
	return &TenantService{svc: svc, log: log}
}

func (s *TenantService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.create)
	return r
}

type createTenantRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Country       string `json:"country"`
	Region        string `json:"region"`
	City          string `json:"city"`
	Currency      string `json:"currency"`
	OwnerEmail    string `json:"owner_email"`
	OwnerFullName string `json:"owner_full_name"`
}

type createTenantResponse struct {
	TenantID uuid.UUID `json:"tenant_id"`
}

func (s *TenantService) create(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tenantID, err := s.svc.CreateTenant(r.Context(), onboarding.CreateTenantInput{
		Name:          req.Name,
		Description:   req.Description,
		Country:       req.Country,
		Region:        req.Region,
		City:          req.City,
		Currency:      req.Currency,
		OwnerEmail:    req.OwnerEmail,
		OwnerFullName: req.OwnerFullName,
	})
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			s.log.ErrorContext(r.Context(), "tenant creation failed", logger.Error(err))
			respondError(w, code, "tenant creation failed")
			return
		}
		respondError(w, code, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, createTenantResponse{TenantID: tenantID})
}
