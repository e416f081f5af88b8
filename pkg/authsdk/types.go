package authsdk

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_grant")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned from a successful login.
type TokenResponse struct {
	// AccessToken is the JWT access token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned from a successful registration. The account
// starts unconfirmed; ConfirmationToken must be redeemed before sign-in.
type RegisterResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`

	// ConfirmationToken is the opaque token for POST /v1/auth/confirm. In a
	// deployment with a mail sender this would be delivered out of band.
	ConfirmationToken string `json:"confirmation_token,omitempty"`
}

// ConfirmRequest is the body of POST /v1/auth/confirm.
type ConfirmRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// ConfirmResponse acknowledges a redeemed confirmation token.
type ConfirmResponse struct {
	UserID    string `json:"user_id"`
	Confirmed bool   `json:"confirmed"`
}

// UserInfoResponse is returned from GET /v1/userinfo.
type UserInfoResponse struct {
	UserID         string   `json:"user_id"`
	Email          string   `json:"email"`
	EmailConfirmed bool     `json:"email_confirmed"`
	Roles          []string `json:"roles"`
}

// RoleInfo describes a single provisioned role.
type RoleInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RolesResponse is returned from GET /v1/roles.
type RolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// HealthChecks reports the status of individual dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned from the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
