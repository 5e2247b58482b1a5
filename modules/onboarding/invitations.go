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

// InvitationService handles invitation validation and completion.
type InvitationService struct {
	svc *onboarding.Service
	log *slog.Logger
}

// NewInvitationService creates the invitation HTTP service.
func NewInvitationService(svc *onboarding.Service, log *slog.Logger) *InvitationService {
	if log == nil {
		log = slog.Default()
	}
	return &InvitationService{svc: svc, log: log}
}

func (s *InvitationService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/validate", s.validate)
	r.Post("/complete", s.complete)
	return r
}

func (s *InvitationService) validate(w http.ResponseWriter, r *http.Request) {
	inv, err := s.svc.ValidateInvitationToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		s.respondServiceError(w, r, err, "invitation validation failed")
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

type completeRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type completeResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

func (s *InvitationService) complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	userID, err := s.svc.CompleteRegistration(r.Context(), req.Token, req.Password, req.FullName)
	if err != nil {
		s.respondServiceError(w, r, err, "registration failed")
		return
	}
	respondJSON(w, http.StatusOK, completeResponse{UserID: userID})
}

func (s *InvitationService) respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), fallback, logger.Error(err))
		respondError(w, code, fallback)
		return
	}
	respondError(w, code, err.Error())
}
