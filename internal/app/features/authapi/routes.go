// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
)

// Routes mounts all auth routes under the base path (typically "/auth"
// from bootstrap).
func Routes(h *Handler, tm *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)
	r.Post("/refresh-token", h.HandleRefresh)
	r.Post("/forget-password", h.HandleForgetPassword)
	r.Post("/reset-password", h.HandleResetPassword)

	// Any authenticated role may rotate its own password.
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr))
		pr.Patch("/change-password", h.HandleChangePassword)
	})

	return r
}
