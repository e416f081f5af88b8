package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carefinder/carefinder/internal/auth/service"
	"github.com/carefinder/carefinder/pkg/authsdk"
	"github.com/carefinder/carefinder/pkg/httpx"
	"github.com/carefinder/carefinder/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles POST /v1/auth/login. Credentials are exchanged for a
// short-lived JWT access token carrying the user's roles.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authsdk.ErrInvalidGrant.WriteError(w)
		case errors.Is(err, service.ErrEmailNotConfirmed):
			authsdk.ErrEmailNotConfirmed.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresIn:   int(token.ExpiresIn.Seconds()),
	})
}
