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

// SignupService handles self-serve registration.
type SignupService struct {
	svc *onboarding.Service
	log *slog.Logger
}

// NewSignupService creates the signup HTTP service.
func NewSignupService(svc *onboarding.Service, log *slog.Logger) *SignupService {
	if log == nil {
		log = slog.Default()
	}
	return &SignupService{svc: svc, log: log}
}

func (s *SignupService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.signup)
	return r
}

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

func (s *SignupService) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	userID, err := s.svc.RegisterSelfServe(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			s.log.ErrorContext(r.Context(), "signup failed", logger.Error(err))
			respondError(w, code, "signup failed")
			return
		}
		respondError(w, code, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, signupResponse{UserID: userID})
}
