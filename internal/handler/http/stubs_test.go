package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service stubs
// ─────────────────────────────────────────────

// stubAuthorizer implements service.Authorizer. Nil fields deny with
// service.ErrUnauthorized.
type stubAuthorizer struct {
	identifyFn  func(ctx context.Context, token string) (models.Identity, error)
	authorizeFn func(ctx context.Context, token string) (models.Identity, error)
}

func (s *stubAuthorizer) Identify(ctx context.Context, token string) (models.Identity, error) {
	if s.identifyFn == nil {
		return models.Identity{}, service.ErrUnauthorized
	}
	return s.identifyFn(ctx, token)
}

func (s *stubAuthorizer) Authorize(ctx context.Context, token string) (models.Identity, error) {
	if s.authorizeFn == nil {
		return models.Identity{}, service.ErrUnauthorized
	}
	return s.authorizeFn(ctx, token)
}

type stubAccountService struct {
	registerFn             func(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)
	loginFn                func(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	oauthLoginFn           func(ctx context.Context, external models.ExternalIdentity) (models.AuthResult, error)
	setMasterPasswordFn    func(ctx context.Context, userID int64, password string) (models.MessageResponse, error)
	verifyLoginPasswordFn  func(ctx context.Context, userID int64, candidate string) (models.MatchResult, error)
	masterPasswordStatusFn func(ctx context.Context, userID int64) (models.MasterPasswordStatus, error)
}

func (s *stubAccountService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	return s.registerFn(ctx, req)
}

func (s *stubAccountService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	return s.loginFn(ctx, req)
}

func (s *stubAccountService) OAuthLogin(ctx context.Context, external models.ExternalIdentity) (models.AuthResult, error) {
	return s.oauthLoginFn(ctx, external)
}

func (s *stubAccountService) SetMasterPassword(ctx context.Context, userID int64, password string) (models.MessageResponse, error) {
	return s.setMasterPasswordFn(ctx, userID, password)
}

func (s *stubAccountService) VerifyLoginPassword(ctx context.Context, userID int64, candidate string) (models.MatchResult, error) {
	return s.verifyLoginPasswordFn(ctx, userID, candidate)
}

func (s *stubAccountService) MasterPasswordStatus(ctx context.Context, userID int64) (models.MasterPasswordStatus, error) {
	return s.masterPasswordStatusFn(ctx, userID)
}

type stubCredentialService struct {
	upsertFn  func(ctx context.Context, identity models.Identity, input models.CredentialInput) (models.CredentialEntry, error)
	listFn    func(ctx context.Context, identity models.Identity) ([]models.CredentialEntry, error)
	updateFn  func(ctx context.Context, identity models.Identity, entryID int64, patch models.CredentialPatch) (models.CredentialEntry, error)
	historyFn func(ctx context.Context, identity models.Identity, entryID int64) ([]models.HistoryRecord, error)
	verifyFn  func(ctx context.Context, identity models.Identity, entryID int64, candidate string) (models.MatchResult, error)
	deleteFn  func(ctx context.Context, identity models.Identity, entryID int64) (models.MessageResponse, error)
}

func (s *stubCredentialService) Upsert(ctx context.Context, identity models.Identity, input models.CredentialInput) (models.CredentialEntry, error) {
	return s.upsertFn(ctx, identity, input)
}

func (s *stubCredentialService) List(ctx context.Context, identity models.Identity) ([]models.CredentialEntry, error) {
	return s.listFn(ctx, identity)
}

func (s *stubCredentialService) Update(ctx context.Context, identity models.Identity, entryID int64, patch models.CredentialPatch) (models.CredentialEntry, error) {
	return s.updateFn(ctx, identity, entryID, patch)
}

func (s *stubCredentialService) History(ctx context.Context, identity models.Identity, entryID int64) ([]models.HistoryRecord, error) {
	return s.historyFn(ctx, identity, entryID)
}

func (s *stubCredentialService) Verify(ctx context.Context, identity models.Identity, entryID int64, candidate string) (models.MatchResult, error) {
	return s.verifyFn(ctx, identity, entryID, candidate)
}

func (s *stubCredentialService) Delete(ctx context.Context, identity models.Identity, entryID int64) (models.MessageResponse, error) {
	return s.deleteFn(ctx, identity, entryID)
}

type stubResolver struct {
	resolveFn func(ctx context.Context, accessToken string) (models.ExternalIdentity, error)
}

func (s *stubResolver) Resolve(ctx context.Context, accessToken string) (models.ExternalIdentity, error) {
	return s.resolveFn(ctx, accessToken)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	testFrontendURL = "http://front.test"
	testToken       = "session-token"
)

var testIdentity = models.Identity{UserID: 1, TenantID: 2, Email: "alice@x.com"}

// acceptToken is a gate func admitting testToken as testIdentity.
func acceptToken(_ context.Context, token string) (models.Identity, error) {
	if token != testToken {
		return models.Identity{}, service.ErrUnauthorized
	}
	return testIdentity, nil
}

// newTestHandler builds a Handler over services with a nop logger.
func newTestHandler(services *service.Services) *Handler {
	return NewHandler(
		services,
		config.App{FrontendURL: testFrontendURL + "/"},
		config.Server{AllowedOrigins: []string{testFrontendURL}, RequestTimeout: 5 * time.Second},
		logger.Nop(),
	)
}

// newTestRouter builds the full router over services.
func newTestRouter(services *service.Services) http.Handler {
	return newTestHandler(services).Init()
}

// doRequest sends method path with an optional JSON body and bearer token
// through router.
func doRequest(t *testing.T, router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes the JSON response body into a value of type T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// requireErrorBody asserts the status and the kind of an error response.
func requireErrorBody(t *testing.T, rec *httptest.ResponseRecorder, status int, kind string) models.ErrorResponse {
	t.Helper()

	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	body := decodeBody[models.ErrorResponse](t, rec)
	require.Equal(t, kind, body.Kind)
	return body
}
