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

type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles POST /v1/auth/register. The created account starts
// unconfirmed; the confirmation token is returned in the response body
// because no mail sender is wired in.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, confirmToken, err := h.UserService.Register(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			authsdk.ErrDuplicateEmail.WriteError(w)
		case errors.Is(err, service.ErrPasswordTooShort):
			(&authsdk.APIError{
				StatusCode:  http.StatusBadRequest,
				Code:        authsdk.ErrorCodeInvalidRequest,
				Description: "password does not meet the minimum length",
			}).WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			authsdk.ErrInvalidRequest.WriteError(w)
		default:
			log.Error("registration failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.RegisterResponse{
		UserID:            user.ID,
		Email:             user.Email,
		ConfirmationToken: confirmToken,
	})
}
