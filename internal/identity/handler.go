package identity

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bissquit/job-board/internal/domain"
	"github.com/bissquit/job-board/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for the identity module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new identity handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers public identity routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", h.Me)
}

// CredentialsRequest represents the register and login request body.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse represents the registration response.
type RegisterResponse struct {
	Message string       `json:"message"`
	NewUser *domain.User `json:"newUser"`
	Token   string       `json:"token"`
}

// LoginResponse represents the login response.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// ProfileResponse is the authenticated user without credentials.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse is a body carrying only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrEmailExists, Status: http.StatusBadRequest},
	{Error: ErrInvalidCredentials, Status: http.StatusBadRequest},
	{Error: ErrInvalidInput, Status: http.StatusBadRequest},
	{Error: ErrUserNotFound, Status: http.StatusNotFound},
}

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.service.Register(r.Context(), RegisterInput(req))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	w.Header().Set("Authorization", "Bearer "+result.Token)
	httputil.JSON(w, http.StatusOK, RegisterResponse{
		Message: "User registered successfully.",
		NewUser: result.User,
		Token:   result.Token,
	})
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.service.Login(r.Context(), LoginInput(req))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	w.Header().Set("Authorization", "Bearer "+result.Token)
	httputil.JSON(w, http.StatusOK, LoginResponse{
		Message: "Logged in successfully.",
		Token:   result.Token,
		User:    result.User,
	})
}

// Logout handles POST /logout. Tokens are stateless, so the client is only told to
// drop its token.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Authorization", "")
	httputil.JSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully."})
}

// Me handles GET /me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r.Context())
	if userID == "" {
		httputil.Error(w, http.StatusUnauthorized, httputil.UnauthorizedMessage)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return req, false
	}

	return req, true
}
