package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// accessTokenCookieMaxAge matches the session token lifetime.
const accessTokenCookieMaxAge = 24 * time.Hour

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.AccountService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", result.User.ID).Msg("user registered")

	writeAuthResult(w, result, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.AccountService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			writeErrorMessage(w, r, err, app.MsgInvalidLoginPassword)
			return
		}
		writeError(w, r, err)
		return
	}

	writeAuthResult(w, result, http.StatusOK)
}

func writeAuthResult(w http.ResponseWriter, result models.AuthResult, status int) {
	w.Header().Set(authorizationHeader, "Bearer "+result.AccessToken)
	utils.WriteJSON(w, result, status)
}

// oauthCallback finishes an OAuth login. The provider access token is
// resolved to a profile, the matching account is found or provisioned, and
// the browser is redirected to the web client with the session token in an
// access_token cookie. Every failure redirects to the login page.
func (h *Handler) oauthCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	external, err := h.services.IdentityResolver.Resolve(ctx, r.URL.Query().Get("access_token"))
	if err != nil {
		log.Err(err).Msg("oauth identity resolution failed")
		http.Redirect(w, r, h.frontendURL+"/login?error=auth_failed", http.StatusFound)
		return
	}

	result, err := h.services.AccountService.OAuthLogin(ctx, external)
	if err != nil {
		log.Err(err).Msg("oauth login failed")
		http.Redirect(w, r, h.frontendURL+"/login?error=auth_failed", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    result.AccessToken,
		Path:     "/",
		MaxAge:   int(accessTokenCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	target := h.frontendURL + "/setup-master-password"
	if result.HasMasterPassword {
		target = h.frontendURL + "/dashboard"
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) verifyLoginPassword(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.PasswordRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.AccountService.VerifyLoginPassword(r.Context(), identity.UserID, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) setupMasterPassword(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.PasswordRequest
	if err = utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.AccountService.SetMasterPassword(r.Context(), identity.UserID, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) checkMasterPassword(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status, err := h.services.AccountService.MasterPasswordStatus(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
