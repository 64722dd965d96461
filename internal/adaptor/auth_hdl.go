package adaptor

import (
	"net/http"

	"stay-booking/internal/dto/request"
	"stay-booking/internal/dto/response"
	"stay-booking/internal/usecase"
	"stay-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	cookies utils.CookieConfig
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, cookies utils.CookieConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookies: cookies,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register", http.StatusNotFound)
		return
	}

	utils.ResponseCreated(w, "User registered successfully!", resp)
}

// Login handles POST /api/auth/token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pair, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "login", http.StatusNotFound)
		return
	}

	utils.SetAuthCookies(w, h.cookies, pair)
	utils.ResponseSuccess(w, "Login successful", response.TokenToResponse(pair))
}

// Refresh handles POST /api/auth/token/refresh. The body wins over the cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Refresh == "" {
		req.Refresh = utils.CookieValue(r, h.cookies.RefreshName)
	}

	pair, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		handleServiceError(w, h.log, err, "refresh token", http.StatusNotFound)
		return
	}

	utils.SetAuthCookies(w, h.cookies, pair)
	utils.ResponseSuccess(w, "Token refreshed successfully", response.TokenToResponse(pair))
}

// Verify handles POST /api/auth/token/verify. The access cookie wins over the body.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if cookie := utils.CookieValue(r, h.cookies.AccessName); cookie != "" {
		req.Token = cookie
	}

	resp, err := h.service.Verify(r.Context(), req.Token)
	if err != nil {
		handleServiceError(w, h.log, err, "verify token", http.StatusNotFound)
		return
	}

	utils.ResponseSuccess(w, "Token is valid", resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest
	_ = utils.DecodeJSON(r, &req)
	if cookie := utils.CookieValue(r, h.cookies.RefreshName); cookie != "" {
		req.Refresh = cookie
	}

	if err := h.service.Logout(r.Context(), req.Refresh); err != nil {
		// cookies are cleared regardless; the session simply expires
		h.log.Warn("Failed to revoke session on logout", zap.Error(err))
	}

	utils.ClearAuthCookies(w, h.cookies)
	utils.ResponseSuccess(w, "Logged out successfully", nil)
}
