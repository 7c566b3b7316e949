package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSignKey = "test-sign-key"

var errStorage = errors.New("storage error")

func issueTestToken(t *testing.T, userID int64, duration time.Duration, key string) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("alice@x.com", userID, duration, key)
	require.NoError(t, err)
	return token.SignedString
}

func newTestAuthorizer(ctrl *gomock.Controller) (Authorizer, *mock.MockUserRepository) {
	users := mock.NewMockUserRepository(ctrl)
	verifier := NewIdentityVerifier(users, testSignKey, logger.Nop())
	gate := NewMasterGate(users, logger.Nop())
	return NewAuthorizer(verifier, gate), users
}

// ── Verify ───────────────────────────────────────────────────────────────────

func TestIdentityVerifier_Verify_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	verifier := NewIdentityVerifier(users, testSignKey, logger.Nop())

	users.EXPECT().FindUserByID(gomock.Any(), int64(1)).
		Return(models.User{ID: 1, TenantID: 2, Email: "alice@x.com", PasswordHash: "hash"}, nil)

	identity, err := verifier.Verify(context.Background(), issueTestToken(t, 1, time.Hour, testSignKey))
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: 1, TenantID: 2, Email: "alice@x.com"}, identity)
}

func TestIdentityVerifier_Verify_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{name: "empty", token: func(*testing.T) string { return "" }},
		{name: "garbage", token: func(*testing.T) string { return "not-a-jwt" }},
		{name: "wrong key", token: func(t *testing.T) string { return issueTestToken(t, 1, time.Hour, "other-key") }},
		{name: "expired", token: func(t *testing.T) string { return issueTestToken(t, 1, -time.Hour, testSignKey) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mock.NewMockUserRepository(ctrl)
			verifier := NewIdentityVerifier(users, testSignKey, logger.Nop())

			_, err := verifier.Verify(context.Background(), tt.token(t))
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestIdentityVerifier_Verify_UnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	verifier := NewIdentityVerifier(users, testSignKey, logger.Nop())

	users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{}, store.ErrUserNotFound)

	_, err := verifier.Verify(context.Background(), issueTestToken(t, 7, time.Hour, testSignKey))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestIdentityVerifier_Verify_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	verifier := NewIdentityVerifier(users, testSignKey, logger.Nop())

	users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(models.User{}, errStorage)

	_, err := verifier.Verify(context.Background(), issueTestToken(t, 1, time.Hour, testSignKey))
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

// ── Check ────────────────────────────────────────────────────────────────────

func TestMasterGate_Check(t *testing.T) {
	tests := []struct {
		name    string
		user    models.User
		findErr error
		wantErr error
	}{
		{name: "password set", user: models.User{ID: 1, PasswordHash: "hash"}},
		{name: "password empty", user: models.User{ID: 1}, wantErr: ErrMasterPasswordRequired},
		{name: "unknown account", findErr: store.ErrUserNotFound, wantErr: ErrMasterPasswordRequired},
		{name: "storage failure", findErr: errStorage, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mock.NewMockUserRepository(ctrl)
			gate := NewMasterGate(users, logger.Nop())

			users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(tt.user, tt.findErr)

			err := gate.Check(context.Background(), 1)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── Authorizer ───────────────────────────────────────────────────────────────

func TestAuthorizer_Authorize_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	authz, users := newTestAuthorizer(ctrl)

	user := models.User{ID: 1, TenantID: 2, Email: "alice@x.com", PasswordHash: "hash"}
	users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(user, nil).Times(2)

	identity, err := authz.Authorize(context.Background(), issueTestToken(t, 1, time.Hour, testSignKey))
	require.NoError(t, err)
	assert.Equal(t, int64(2), identity.TenantID)
}

func TestAuthorizer_Authorize_StopsAtFirstDenial(t *testing.T) {
	ctrl := gomock.NewController(t)
	authz, _ := newTestAuthorizer(ctrl)

	// no repository call is expected once the token is rejected
	_, err := authz.Authorize(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorizer_Authorize_MasterPasswordRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	authz, users := newTestAuthorizer(ctrl)

	user := models.User{ID: 1, TenantID: 2, Email: "alice@x.com"}
	users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(user, nil).Times(2)

	_, err := authz.Authorize(context.Background(), issueTestToken(t, 1, time.Hour, testSignKey))
	assert.ErrorIs(t, err, ErrMasterPasswordRequired)
}

func TestAuthorizer_Identify_SkipsMasterGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	authz, users := newTestAuthorizer(ctrl)

	user := models.User{ID: 1, TenantID: 2, Email: "alice@x.com"}
	users.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(user, nil).Times(1)

	identity, err := authz.Identify(context.Background(), issueTestToken(t, 1, time.Hour, testSignKey))
	require.NoError(t, err)
	assert.Equal(t, int64(1), identity.UserID)
}
