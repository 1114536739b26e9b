package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/auth"
	"github.com/pulso-rh/pulso/internal/service"
)

// AuthHandler handles registration, login and identity lookups.
type AuthHandler struct {
	authService *service.AuthService
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger.With().Str("handler", "auth").Logger(),
	}
}

type registerRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
	SectorID int64  `json:"setorId"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	out, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		SectorID: req.SectorID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "user registered", map[string]interface{}{
		"token":   out.Token,
		"usuario": out.User,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	out, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "login successful", map[string]interface{}{
		"token":   out.Token,
		"usuario": out.User,
	})
}

// Me handles GET /api/auth/me. The middleware already resolved the user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		writeError(w, auth.ErrMissingToken)
		return
	}

	writeData(w, http.StatusOK, "authenticated user", user)
}
