package http

import (
	"net/http"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/service"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	res, err := h.auth.Register(r.Context(), req.toInput())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Created(w, "User registered successfully", toAuthResponse(res))
}

// RegisterAdmin creates an ADMIN account. The route is admin-only.
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	res, err := h.auth.RegisterAdmin(r.Context(), req.toInput())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Created(w, "Admin registered successfully", toAuthResponse(res))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Login successful", toAuthResponse(res))
}

type checkResponse struct {
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

// Check echoes the identity carried by the bearer token.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	Success(w, "Token is valid", checkResponse{
		UserID:  caller.UserID,
		Email:   caller.Email,
		Role:    string(caller.Role),
		IsAdmin: caller.IsAdmin(),
	})
}

func (h *AuthHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	Success(w, "Admin check", map[string]bool{"isAdmin": caller.IsAdmin()})
}

// requireCaller writes a 401 and returns false when no caller was injected.
func requireCaller(w http.ResponseWriter, r *http.Request) (domain.Caller, bool) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		Unauthorized(w, "Authentication required")
		return domain.Caller{}, false
	}
	return caller, true
}
