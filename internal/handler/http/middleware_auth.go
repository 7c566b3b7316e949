package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/rs/zerolog"
)

const (
	authorizationHeader = "Authorization"
	accessTokenCookie   = "access_token"
)

type gateFunc func(ctx context.Context, token string) (models.Identity, error)

// identify admits requests carrying a valid session token. The master
// password is not checked. The authorizer is resolved per request so the
// router can be built before it is wired.
func (h *Handler) identify(next http.Handler) http.Handler {
	return h.gate(func(ctx context.Context, token string) (models.Identity, error) {
		return h.services.Authorizer.Identify(ctx, token)
	}, next)
}

// authorize admits requests carrying a valid session token whose account has
// a master password.
func (h *Handler) authorize(next http.Handler) http.Handler {
	return h.gate(func(ctx context.Context, token string) (models.Identity, error) {
		return h.services.Authorizer.Authorize(ctx, token)
	}, next)
}

// gate runs check on the request token and stores the resulting identity in
// the request context under [utils.IdentityCtxKey]. Denials are written as
// error responses and next is not called.
func (h *Handler) gate(check gateFunc, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		identity, err := check(ctx, token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		l := logger.FromContext(ctx).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", identity.UserID).Int64("tenant_id", identity.TenantID)
		})
		ctx = l.WithContext(utils.WithIdentity(ctx, identity))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest reads the session token from "Authorization: Bearer
// <token>", falling back to the access_token cookie when the header is
// absent.
func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get(authorizationHeader); header != "" {
		token, err := utils.ParseBearerToken(header)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
		}
		return token, nil
	}

	cookie, err := r.Cookie(accessTokenCookie)
	if err != nil || cookie.Value == "" {
		return "", ErrMissingToken
	}

	return cookie.Value, nil
}

// identityFromRequest returns the identity stored by the gate middleware.
func identityFromRequest(r *http.Request) (models.Identity, error) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		return models.Identity{}, errNoIdentity
	}
	return identity, nil
}
