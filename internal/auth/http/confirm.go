package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carefinder/carefinder/internal/auth/service"
	"github.com/carefinder/carefinder/internal/auth/store"
	"github.com/carefinder/carefinder/pkg/authsdk"
	"github.com/carefinder/carefinder/pkg/httpx"
	"github.com/carefinder/carefinder/pkg/slogx"
)

type ConfirmHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles POST /v1/auth/confirm. An unknown user id and a bad
// token produce the same response.
func (h *ConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.UserID == "" || req.Token == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.UserService.ConfirmEmail(ctx, req.UserID, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidConfirmation),
			errors.Is(err, store.ErrNotFound):
			(&authsdk.APIError{
				StatusCode:  http.StatusBadRequest,
				Code:        authsdk.ErrorCodeInvalidGrant,
				Description: "confirmation token is invalid or expired",
			}).WriteError(w)
		default:
			log.Error("email confirmation failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ConfirmResponse{
		UserID:    req.UserID,
		Confirmed: true,
	})
}
