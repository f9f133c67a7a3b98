package handlers

import (
	"net/http"

	"metaclassroom/internal/models"
	"metaclassroom/internal/security"
	"metaclassroom/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	signer               *security.Signer
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
	appBaseURL           string
	appleKeysURL         string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, signer *security.Signer, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL, appBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		signer:               signer,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
		appBaseURL:           appBaseURL,
		appleKeysURL:         appleKeysURL,
	}
}

// Signup creates an email/password account and signs it in
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, user, err := h.authService.CreateAccount(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, security.SessionCookie(r, session.ID, session.ExpiresAt))
	h.respondIdentity(w, r, http.StatusCreated, user, session.ID)
}

// Login handles email/password sign-in
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, user, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, security.SessionCookie(r, session.ID, session.ExpiresAt))
	h.respondIdentity(w, r, http.StatusOK, user, session.ID)
}

// Logout ends the current session. It succeeds even without one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := security.SessionID(r); sessionID != "" {
		if err := h.authService.SignOut(r.Context(), sessionID); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to sign out", err)
			return
		}
	}

	http.SetCookie(w, security.ClearSessionCookie(r))
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in identity
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.respondIdentity(w, r, http.StatusOK, GetUserFromContext(r.Context()), sessionFromContext(r.Context()))
}

// Providers lists the configured sign-in providers
func (h *AuthHandler) Providers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ProvidersResponse{Providers: h.oauthProviderViews()})
}

func (h *AuthHandler) respondIdentity(w http.ResponseWriter, r *http.Request, status int, user *models.User, sessionID string) {
	p, err := h.authService.Profile(r.Context(), user)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to load profile", err)
		return
	}
	respondJSON(w, status, IdentityResponse{
		User:      newUserView(user),
		Profile:   p,
		CSRFToken: h.signer.CSRFToken(sessionID),
	})
}
