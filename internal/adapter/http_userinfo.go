package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// defaultUserInfoTimeout bounds a userinfo call when no timeout is given.
const defaultUserInfoTimeout = 10 * time.Second

// userInfoResponse is the subset of the OpenID Connect userinfo claims the
// vault needs.
type userInfoResponse struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

type userInfoAdapter struct {
	client      *utils.HTTPClient
	userInfoURL string

	logger *logger.Logger
}

// NewUserInfoAdapter constructs an [IdentityProvider] that calls the OpenID
// Connect userinfo endpoint at userInfoURL with the access token as a bearer
// token.
//
// Returns an error if userInfoURL is not an absolute http(s) URL.
func NewUserInfoAdapter(userInfoURL string, timeout time.Duration, logger *logger.Logger) (IdentityProvider, error) {
	endpoint, err := normalizeURL(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("invalid userinfo url: %w", err)
	}

	if timeout <= 0 {
		timeout = defaultUserInfoTimeout
	}

	return &userInfoAdapter{
		client:      utils.NewHTTPClient(timeout),
		userInfoURL: endpoint,
		logger:      logger,
	}, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("address must include host and http(s) scheme")
	}

	return u.String(), nil
}

// Resolve implements [IdentityProvider].
func (a *userInfoAdapter) Resolve(ctx context.Context, accessToken string) (models.ExternalIdentity, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(accessToken) == "" {
		return models.ExternalIdentity{}, fmt.Errorf("%w: empty access token", ErrUnauthorized)
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Get(a.userInfoURL)
	if err != nil {
		log.Err(err).Str("func", "*userInfoAdapter.Resolve").Msg("userinfo request failed")
		return models.ExternalIdentity{}, fmt.Errorf("userinfo request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*userInfoAdapter.Resolve").Int("status", resp.StatusCode()).Msg("userinfo request rejected")
		return models.ExternalIdentity{}, err
	}

	var info userInfoResponse
	if err = json.Unmarshal(resp.Body(), &info); err != nil {
		return models.ExternalIdentity{}, fmt.Errorf("decode userinfo response: %w", err)
	}

	if info.Email == "" {
		return models.ExternalIdentity{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrMissingEmail)
	}
	if info.EmailVerified != nil && !*info.EmailVerified {
		return models.ExternalIdentity{}, fmt.Errorf("%w: email is not verified", ErrUnauthorized)
	}

	return models.ExternalIdentity{
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
	}, nil
}
