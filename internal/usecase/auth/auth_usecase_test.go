package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nbagirov/tapreflex/internal/config"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/domain/mocks"
	infraauth "github.com/nbagirov/tapreflex/internal/infrastructure/auth"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func newTestUseCase(t *testing.T) (*AuthUseCase, *mocks.MockIdentityProvider, *mocks.MockProfileUseCase) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockIdentity := mocks.NewMockIdentityProvider(ctrl)
	mockProfileUC := mocks.NewMockProfileUseCase(ctrl)
	jwtSvc := infraauth.NewJWTService(&config.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
	})

	uc := &AuthUseCase{
		identity:  mockIdentity,
		profileUC: mockProfileUC,
		jwtSvc:    jwtSvc,
		logger:    logger.NewLogger("test", "debug"),
	}
	return uc, mockIdentity, mockProfileUC
}

func TestSignUpValidation(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	tests := []struct {
		name     string
		email    string
		password string
		code     string
	}{
		{"Empty_Email", "", "secret123", domain.ErrCodeRequiredField},
		{"Invalid_Email", "not-an-email", "secret123", domain.ErrCodeInvalidFormat},
		{"Short_Password", "player@example.com", "12345", domain.ErrCodeWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.SignUp(tt.email, tt.password, "Aurora")
			var appErr *domain.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestSignUpMinimumPasswordAccepted(t *testing.T) {
	uc, mockIdentity, mockProfileUC := newTestUseCase(t)

	user := &domain.IdentityUser{UserID: "user-1", Email: "player@example.com"}
	mockIdentity.EXPECT().SignUp("player@example.com", "123456").Return(user, nil)
	mockProfileUC.EXPECT().CreateProfile("user-1", "player@example.com", "Aurora").
		Return(&domain.UserProfile{UserID: "user-1", Nickname: "Aurora"}, nil)

	session, err := uc.SignUp("player@example.com", "123456", "Aurora")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "user-1", session.Profile.UserID)
}

func TestSignUpProviderConflict(t *testing.T) {
	uc, mockIdentity, _ := newTestUseCase(t)

	providerErr := &domain.IdentityProviderError{StatusCode: 409, Code: "EMAIL_EXISTS", Message: "Email already registered"}
	mockIdentity.EXPECT().SignUp("player@example.com", "secret123").Return(nil, providerErr)

	_, err := uc.SignUp("player@example.com", "secret123", "Aurora")
	var appErr *domain.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, domain.ErrCodeInvalidCredentials, appErr.Code)
	assert.Equal(t, 401, appErr.HTTPStatus)
}

func TestSignUpProviderOutage(t *testing.T) {
	uc, mockIdentity, _ := newTestUseCase(t)

	providerErr := &domain.IdentityProviderError{StatusCode: 500, Code: "INTERNAL", Message: "boom"}
	mockIdentity.EXPECT().SignUp("player@example.com", "secret123").Return(nil, providerErr)

	_, err := uc.SignUp("player@example.com", "secret123", "Aurora")
	var appErr *domain.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, domain.ErrCodeIdentityServiceError, appErr.Code)
	assert.Equal(t, 503, appErr.HTTPStatus)
}

func TestSignUpNetworkErrorMapsToOutage(t *testing.T) {
	uc, mockIdentity, _ := newTestUseCase(t)

	mockIdentity.EXPECT().SignUp("player@example.com", "secret123").Return(nil, errors.New("connection refused"))

	_, err := uc.SignUp("player@example.com", "secret123", "Aurora")
	var appErr *domain.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, domain.ErrCodeIdentityServiceError, appErr.Code)
}

func TestSignUpProfileCreationFailureSurfaces(t *testing.T) {
	uc, mockIdentity, mockProfileUC := newTestUseCase(t)

	user := &domain.IdentityUser{UserID: "user-1", Email: "player@example.com"}
	mockIdentity.EXPECT().SignUp("player@example.com", "secret123").Return(user, nil)
	createErr := domain.NewAppError(domain.ErrCodeDatabaseQuery, "store down", 500, nil)
	mockProfileUC.EXPECT().CreateProfile("user-1", "player@example.com", "Aurora").Return(nil, createErr)

	_, err := uc.SignUp("player@example.com", "secret123", "Aurora")
	assert.ErrorIs(t, err, createErr)
}

func TestSignInInvalidCredentials(t *testing.T) {
	uc, mockIdentity, _ := newTestUseCase(t)

	providerErr := &domain.IdentityProviderError{StatusCode: 401, Code: "BAD_CREDENTIALS", Message: "wrong password"}
	mockIdentity.EXPECT().SignIn("player@example.com", "wrong").Return(nil, providerErr)

	_, err := uc.SignIn("player@example.com", "wrong")
	var appErr *domain.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, domain.ErrCodeInvalidCredentials, appErr.Code)
}

func TestSignInMissingProfileStillSignsIn(t *testing.T) {
	uc, mockIdentity, mockProfileUC := newTestUseCase(t)

	user := &domain.IdentityUser{UserID: "user-1", Email: "player@example.com"}
	mockIdentity.EXPECT().SignIn("player@example.com", "secret123").Return(user, nil)
	mockProfileUC.EXPECT().GetProfile("user-1").Return(nil, nil)

	session, err := uc.SignIn("player@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Nil(t, session.Profile)
}

func TestSignInRequiresPassword(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.SignIn("player@example.com", "")
	var appErr *domain.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, domain.ErrCodeRequiredField, appErr.Code)
}

func TestSignInTokenCarriesUserID(t *testing.T) {
	uc, mockIdentity, mockProfileUC := newTestUseCase(t)

	user := &domain.IdentityUser{UserID: "user-1", Email: "player@example.com"}
	mockIdentity.EXPECT().SignIn("player@example.com", "secret123").Return(user, nil)
	mockProfileUC.EXPECT().GetProfile("user-1").Return(&domain.UserProfile{UserID: "user-1"}, nil)

	session, err := uc.SignIn("player@example.com", "secret123")
	assert.NoError(t, err)

	claims, err := uc.jwtSvc.ValidateToken(session.Token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "player@example.com", claims.Email)
}
