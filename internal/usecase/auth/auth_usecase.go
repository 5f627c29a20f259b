package auth

import (
	"errors"
	"strings"

	"github.com/nbagirov/tapreflex/internal/domain"
	infraauth "github.com/nbagirov/tapreflex/internal/infrastructure/auth"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// PasswordMinLen is the minimum password length accepted at signup.
const PasswordMinLen = 6

// AuthUseCase implements domain.AuthUseCase. Credentials live with the
// external identity provider; this use case only orchestrates provider calls,
// profile creation, and session token minting.
type AuthUseCase struct {
	identity  domain.IdentityProvider
	profileUC domain.ProfileUseCase
	jwtSvc    infraauth.JWTService
	logger    *logger.Logger
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(
	identity domain.IdentityProvider,
	profileUC domain.ProfileUseCase,
	jwtSvc infraauth.JWTService,
	logger *logger.Logger,
) domain.AuthUseCase {
	return &AuthUseCase{
		identity:  identity,
		profileUC: profileUC,
		jwtSvc:    jwtSvc,
		logger:    logger,
	}
}

// SignUp registers credentials with the identity provider, creates the
// player's profile, and returns a session.
func (uc *AuthUseCase) SignUp(email, password, nickname string) (*domain.AuthSession, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < PasswordMinLen {
		return nil, domain.NewAppError(domain.ErrCodeWeakPassword, "Password must be at least 6 characters", 400, nil)
	}

	user, err := uc.identity.SignUp(email, password)
	if err != nil {
		return nil, uc.mapProviderError("signup", err)
	}

	profile, err := uc.profileUC.CreateProfile(user.UserID, user.Email, nickname)
	if err != nil {
		// The identity account exists but the profile does not; later profile
		// operations surface PROFILE_NOT_FOUND until this is repaired.
		uc.logger.Error("Profile creation failed after identity signup",
			zap.String("userID", user.UserID),
			zap.Error(err))
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(user.UserID, user.Email)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeTokenInvalid, "Token generation failed", 500, err)
	}

	uc.logger.Info("Player signed up", zap.String("userID", user.UserID))
	return &domain.AuthSession{Token: token, Profile: profile}, nil
}

// SignIn validates credentials with the identity provider and returns a
// session. A missing profile does not block sign-in; the session carries a nil
// profile and profile operations report it as not found.
func (uc *AuthUseCase) SignIn(email, password string) (*domain.AuthSession, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, domain.NewAppError(domain.ErrCodeRequiredField, "Password is required", 400, nil)
	}

	user, err := uc.identity.SignIn(email, password)
	if err != nil {
		return nil, uc.mapProviderError("signin", err)
	}

	profile, err := uc.profileUC.GetProfile(user.UserID)
	if err != nil {
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(user.UserID, user.Email)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeTokenInvalid, "Token generation failed", 500, err)
	}

	uc.logger.Info("Player signed in", zap.String("userID", user.UserID))
	return &domain.AuthSession{Token: token, Profile: profile}, nil
}

// mapProviderError translates provider responses: 4xx means bad credentials,
// anything else is a provider outage.
func (uc *AuthUseCase) mapProviderError(operation string, err error) error {
	var providerErr *domain.IdentityProviderError
	if errors.As(err, &providerErr) && providerErr.StatusCode >= 400 && providerErr.StatusCode < 500 {
		uc.logger.Warn("Identity provider rejected credentials",
			zap.String("operation", operation),
			zap.String("code", providerErr.Code))
		return domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid credentials", 401, providerErr)
	}

	uc.logger.Error("Identity provider call failed",
		zap.String("operation", operation),
		zap.Error(err))
	return domain.NewAppError(domain.ErrCodeIdentityServiceError, "Identity service unavailable", 503, err)
}

func validateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return domain.NewAppError(domain.ErrCodeRequiredField, "Email is required", 400, nil)
	}
	if !strings.Contains(trimmed, "@") {
		return domain.NewAppError(domain.ErrCodeInvalidFormat, "Email is not valid", 400, nil)
	}
	return nil
}
