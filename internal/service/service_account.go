package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"golang.org/x/crypto/bcrypt"
)

// accountService is the concrete implementation of AccountService.
// It handles registration, password and OAuth logins, master password
// management and session token issuing.
type accountService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign session tokens.
	tokenSignKey string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	// passwordHashCost is the bcrypt cost used for master passwords.
	passwordHashCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAccountService constructs a new AccountService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AccountService {
	return &accountService{
		userRepository:   userRepository,
		tokenSignKey:     cfg.TokenSignKey,
		tokenDuration:    cfg.TokenDuration,
		passwordHashCost: cfg.PasswordHashCost,
		logger:           logger,
	}
}

// Register creates a new account together with its own tenant and returns a
// session token for it.
//
// Returns:
//   - ErrInvalidInput if email or password is empty or the password is too
//     long for bcrypt.
//   - ErrConflict if the email is already registered. The check is made up
//     front and again by the unique constraint on insert.
func (a *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.AuthResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	_, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		log.Info().Str("func", "*accountService.Register").Str("email", req.Email).Msg("email already registered")
		return models.AuthResult{}, ErrConflict
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*accountService.Register").Msg("user search by email failed")
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return models.AuthResult{}, err
	}

	user, err := a.userRepository.CreateUserWithTenant(ctx, models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
	}, models.DefaultTenantName(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.AuthResult{}, ErrConflict
		}
		log.Err(err).Str("func", "*accountService.Register").Msg("user creation ended with error")
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	log.Info().Str("func", "*accountService.Register").Int64("user_id", user.ID).Int64("tenant_id", user.TenantID).Msg("user registered")
	return a.authResult(ctx, user, true)
}

// Login authenticates an account with its email and master password.
//
// An unknown email, an account without a master password and a wrong
// password all return ErrUnauthorized.
func (a *accountService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.AuthResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.AuthResult{}, ErrUnauthorized
		}
		log.Err(err).Str("func", "*accountService.Login").Msg("user search by email failed")
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		log.Info().Str("func", "*accountService.Login").Int64("user_id", user.ID).Msg("wrong password")
		return models.AuthResult{}, ErrUnauthorized
	}

	return a.authResult(ctx, user, true)
}

// OAuthLogin finds the account registered with the provider's email or
// provisions a new one without a master password.
//
// When a concurrent login provisions the same email first, the winner's
// account is read back and used.
func (a *accountService) OAuthLogin(ctx context.Context, external models.ExternalIdentity) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if external.Email == "" {
		return models.AuthResult{}, ErrUnauthorized
	}

	user, err := a.userRepository.FindUserByEmail(ctx, external.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		user, err = a.userRepository.CreateUserWithTenant(ctx, models.User{
			Email: external.Email,
			Name:  external.DisplayName(),
		}, models.DefaultTenantName(external.Email))
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			user, err = a.userRepository.FindUserByEmail(ctx, external.Email)
		}
		if err == nil {
			log.Info().Str("func", "*accountService.OAuthLogin").Int64("user_id", user.ID).Msg("provisioned account for external identity")
		}
	}
	if err != nil {
		log.Err(err).Str("func", "*accountService.OAuthLogin").Msg("error resolving account for external identity")
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return a.authResult(ctx, user, user.HasMasterPassword())
}

// SetMasterPassword hashes password and stores it as the account's master
// password, unlocking the vault routes.
func (a *accountService) SetMasterPassword(ctx context.Context, userID int64, password string) (models.MessageResponse, error) {
	log := logger.FromContext(ctx)

	if password == "" {
		return models.MessageResponse{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	passwordHash, err := a.hashPassword(password)
	if err != nil {
		return models.MessageResponse{}, err
	}

	if err = a.userRepository.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.MessageResponse{}, ErrNotFound
		}
		log.Err(err).Str("func", "*accountService.SetMasterPassword").Int64("user_id", userID).Msg("error storing master password")
		return models.MessageResponse{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	log.Info().Str("func", "*accountService.SetMasterPassword").Int64("user_id", userID).Msg("master password set")
	return models.MessageResponse{Message: app.MsgMasterPasswordSet}, nil
}

// VerifyLoginPassword compares candidate with the account's master password.
func (a *accountService) VerifyLoginPassword(ctx context.Context, userID int64, candidate string) (models.MatchResult, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.MatchResult{}, ErrUnauthorized
		}
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.VerifyLoginPassword").Int64("user_id", userID).Msg("error loading account")
		return models.MatchResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return matchResult(utils.CheckPassword(user.PasswordHash, candidate)), nil
}

// MasterPasswordStatus reports whether the account has a master password.
// An unknown account has none.
func (a *accountService) MasterPasswordStatus(ctx context.Context, userID int64) (models.MasterPasswordStatus, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.MasterPasswordStatus{}, nil
		}
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.MasterPasswordStatus").Int64("user_id", userID).Msg("error loading account")
		return models.MasterPasswordStatus{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return models.MasterPasswordStatus{HasMasterPassword: user.HasMasterPassword()}, nil
}

func (a *accountService) hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password, a.passwordHashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return hash, nil
}

func (a *accountService) authResult(ctx context.Context, user models.User, hasMasterPassword bool) (models.AuthResult, error) {
	token, err := utils.GenerateJWTToken(user.Email, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.authResult").Int64("user_id", user.ID).Msg("error issuing token")
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return models.AuthResult{
		User:              user,
		AccessToken:       token.String(),
		HasMasterPassword: hasMasterPassword,
	}, nil
}

func matchResult(isMatch bool) models.MatchResult {
	if isMatch {
		return models.MatchResult{IsMatch: true, Message: app.MsgPasswordMatches}
	}
	return models.MatchResult{IsMatch: false, Message: app.MsgPasswordDoesNotMatch}
}
