package handler

import (
	"log/slog"
	"net/http"

	"lempek/internal/auth"
	"lempek/internal/domain/models"
	"lempek/internal/domain/services"
	"lempek/internal/httputil"
)

// AuthHandler handles account and session endpoints. Tokens travel in
// HttpOnly cookies only; response bodies never carry them.
type AuthHandler struct {
	auth   services.AuthService
	tokens *auth.Tokens
	secure bool // Secure cookie flag, off in dev so plain http works
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService, tokens *auth.Tokens, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, tokens: tokens, secure: secure, logger: logger}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal, pair, err := h.auth.Register(r.Context(), &req, userAgent(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.setAuthCookies(w, pair)
	httputil.RespondJSON(w, http.StatusCreated, principal)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal, pair, err := h.auth.Login(r.Context(), &req, userAgent(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.setAuthCookies(w, pair)
	httputil.RespondJSON(w, http.StatusOK, principal)
}

// Refresh handles POST /api/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil || cookie.Value == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	principal, access, err := h.auth.Refresh(r.Context(), cookie.Value)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.setCookie(w, "access_token", access, int(h.tokens.AccessTTL().Seconds()))
	httputil.RespondJSON(w, http.StatusOK, principal)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		h.auth.Logout(r.Context(), cookie.Value)
	}

	h.setCookie(w, "access_token", "", -1)
	h.setCookie(w, "refresh_token", "", -1)
	w.WriteHeader(http.StatusNoContent)
}

// CurrentUser handles GET /api/user
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, httputil.GetPrincipal(r))
}

// ListSessions handles GET /api/user/tokens
func (h *AuthHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.auth.Sessions(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if sessions == nil {
		sessions = []models.UserToken{}
	}
	httputil.RespondJSON(w, http.StatusOK, sessions)
}

// RevokeSession handles DELETE /api/user/tokens/{id}
func (h *AuthHandler) RevokeSession(w http.ResponseWriter, r *http.Request) {
	err := h.auth.RevokeSession(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword handles POST /api/user/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req services.ChangePasswordRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.auth.ChangePassword(r.Context(), httputil.GetPrincipal(r), &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, pair *services.TokenPair) {
	h.setCookie(w, "access_token", pair.Access, int(h.tokens.AccessTTL().Seconds()))
	h.setCookie(w, "refresh_token", pair.Refresh, int(h.tokens.RefreshTTL().Seconds()))
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func userAgent(r *http.Request) *string {
	ua := r.Header.Get("User-Agent")
	if ua == "" {
		return nil
	}
	return &ua
}
