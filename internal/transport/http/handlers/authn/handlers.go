// Package authn serves login, logout and current-user lookups against the
// fixture accounts.
package authn

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ems/internal/auth"
	"ems/internal/fixtures"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
)

type Handler struct {
	fix    *fixtures.Store
	secret string
	ttl    time.Duration
}

func NewHandler(fix *fixtures.Store, secret string, ttl time.Duration) *Handler {
	return &Handler{fix: fix, secret: secret, ttl: ttl}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
	r.Get("/auth/user", h.handleCurrentUser)
}

type userBody struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

func userToBody(u fixtures.User) userBody {
	return userBody{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		Department:  u.Department,
		Designation: u.Designation,
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !api.Decode(w, r, &creds) {
		return
	}
	if creds.Username == "" || creds.Password == "" {
		api.ErrorMsg(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, ok := h.fix.Authenticate(creds.Username, creds.Password)
	if !ok {
		api.ErrorMsg(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.secret, auth.Claims{
		UserID:     user.ID,
		Username:   user.Username,
		EmployeeID: user.EmployeeID,
		Role:       user.Role,
		Name:       user.Name,
	}, h.ttl)
	if err != nil {
		api.Detail(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    userToBody(user),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout succeeds whether or not one was sent.
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Detail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	user, ok := h.fix.UserByID(claims.UserID)
	if !ok {
		api.Detail(w, http.StatusUnauthorized, "Invalid token.")
		return
	}
	api.WriteJSON(w, http.StatusOK, userToBody(user))
}
