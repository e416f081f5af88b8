package http

import (
	"net/http"

	"github.com/carefinder/carefinder/internal/auth/service"
	"github.com/carefinder/carefinder/pkg/authsdk"
	"github.com/carefinder/carefinder/pkg/httpx"
	"github.com/carefinder/carefinder/pkg/slogx"
)

type UserInfoHandler struct {
	UserService  *service.UserService
	RolesService *service.RolesService
}

// ServeHTTP handles GET /v1/userinfo for the authenticated user.
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		log.Warn("failed to load user", "user_id", userID, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	roles, err := h.RolesService.RolesForUser(ctx, userID)
	if err != nil {
		log.Warn("failed to load roles", "user_id", userID, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserInfoResponse{
		UserID:         user.ID,
		Email:          user.Email,
		EmailConfirmed: user.EmailConfirmed,
		Roles:          roles,
	})
}
