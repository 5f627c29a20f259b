package domain

import "fmt"

// IdentityUser is the opaque identity the external provider yields: a stable
// user id plus the registered email. Credentials never transit this service.
type IdentityUser struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// IdentityProvider is the external identity service consumed for credential
// flows.
type IdentityProvider interface {
	SignUp(email, password string) (*IdentityUser, error)
	SignIn(email, password string) (*IdentityUser, error)
}

// IdentityProviderError is an error returned by the identity provider's API.
type IdentityProviderError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *IdentityProviderError) Error() string {
	return fmt.Sprintf("identity provider error: %s - %s", e.Code, e.Message)
}

// AuthSession is the result of a successful sign-in or sign-up.
type AuthSession struct {
	Token   string       `json:"token"`
	Profile *UserProfile `json:"profile"`
}

// AuthUseCase defines the interface for authentication business logic
type AuthUseCase interface {
	SignUp(email, password, nickname string) (*AuthSession, error)
	SignIn(email, password string) (*AuthSession, error)
}
