package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/nbagirov/tapreflex/internal/domain"
)

type identityProviderImpl struct {
	baseURL string
	apiKey  string
	client  *retryablehttp.Client
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type identityErrorResponse struct {
	Code string `json:"code"`
	Msg  string `json:"message"`
}

// NewIdentityProvider creates a client for the external identity service.
// Transient provider failures are retried with backoff; 4xx responses are
// surfaced immediately as IdentityProviderError.
func NewIdentityProvider(baseURL, apiKey string) domain.IdentityProvider {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil

	return &identityProviderImpl{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
	}
}

// SignUp registers new credentials with the provider
func (p *identityProviderImpl) SignUp(email, password string) (*domain.IdentityUser, error) {
	url := fmt.Sprintf("%s/v1/accounts/signup", p.baseURL)
	var resp identityResponse
	if err := p.sendRequest(http.MethodPost, url, credentialsRequest{Email: email, Password: password}, http.StatusCreated, &resp); err != nil {
		return nil, err
	}
	return &domain.IdentityUser{UserID: resp.UserID, Email: resp.Email}, nil
}

// SignIn validates credentials with the provider
func (p *identityProviderImpl) SignIn(email, password string) (*domain.IdentityUser, error) {
	url := fmt.Sprintf("%s/v1/accounts/signin", p.baseURL)
	var resp identityResponse
	if err := p.sendRequest(http.MethodPost, url, credentialsRequest{Email: email, Password: password}, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return &domain.IdentityUser{UserID: resp.UserID, Email: resp.Email}, nil
}

// method to send HTTP requests and handle responses
func (p *identityProviderImpl) sendRequest(method, url string, bodyData any, expectedStatus int, out any) error {
	var body io.Reader

	if bodyData != nil {
		jsonBytes, err := json.Marshal(bodyData)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := retryablehttp.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		var errResp identityErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Code != "" {
			return &domain.IdentityProviderError{
				StatusCode: resp.StatusCode,
				Code:       errResp.Code,
				Message:    errResp.Msg,
			}
		}
		return fmt.Errorf("identity provider error: unexpected status %d - %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
