package http

import (
	"net/http"

	"github.com/carefinder/carefinder/internal/auth/service"
	"github.com/carefinder/carefinder/pkg/authsdk"
	"github.com/carefinder/carefinder/pkg/httpx"
	"github.com/carefinder/carefinder/pkg/slogx"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

// ServeHTTP handles GET /v1/roles. Admin only.
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	roles, err := h.RolesService.ListRoles(ctx)
	if err != nil {
		log.Error("failed to list roles", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	out := authsdk.RolesResponse{Roles: make([]authsdk.RoleInfo, 0, len(roles))}
	for _, role := range roles {
		out.Roles = append(out.Roles, authsdk.RoleInfo{
			ID:   role.ID,
			Name: role.Name,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
