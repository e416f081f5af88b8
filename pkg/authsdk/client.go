// Package authsdk provides the shared request/response types for the auth
// service's HTTP API plus a small client for calling it from other services.
package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the auth service HTTP API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates an auth service client with a sane default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	var out TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, "", &out, http.StatusOK)
	return out, err
}

// Register creates a new unconfirmed account.
func (c *Client) Register(ctx context.Context, email, password string) (RegisterResponse, error) {
	var out RegisterResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", RegisterRequest{
		Email:    email,
		Password: password,
	}, "", &out, http.StatusCreated)
	return out, err
}

// ConfirmEmail redeems a confirmation token for the given user.
func (c *Client) ConfirmEmail(ctx context.Context, userID, token string) (ConfirmResponse, error) {
	var out ConfirmResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/confirm", ConfirmRequest{
		UserID: userID,
		Token:  token,
	}, "", &out, http.StatusOK)
	return out, err
}

// UserInfo returns the authenticated user's profile.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (UserInfoResponse, error) {
	var out UserInfoResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/userinfo", nil, accessToken, &out, http.StatusOK)
	return out, err
}

// Roles lists the provisioned roles. Requires an admin access token.
func (c *Client) Roles(ctx context.Context, accessToken string) (RolesResponse, error) {
	var out RolesResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/roles", nil, accessToken, &out, http.StatusOK)
	return out, err
}

// Health hits the readiness probe.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, "", &out, http.StatusOK)
	return out, err
}

func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	body any,
	accessToken string,
	target any,
	expectedStatus int,
) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp.StatusCode, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseErrorResponse converts a non-success response into a typed *APIError.
func parseErrorResponse(statusCode int, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return &APIError{
			StatusCode:  statusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected response (status %d)", statusCode),
		}
	}
	return &APIError{
		StatusCode:  statusCode,
		Code:        er.Error,
		Description: er.ErrorDescription,
	}
}
