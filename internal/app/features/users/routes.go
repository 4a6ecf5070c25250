// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/domain/models"
)

// Routes mounts all user routes under the base path (typically
// "/users" from bootstrap).
func Routes(h *Handler, tm *auth.Manager) chi.Router {
	r := chi.NewRouter()

	// Public signup
	r.Post("/create-user", h.HandleCreate)

	// Self endpoint - any authenticated role
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr))
		pr.Get("/me", h.ServeMe)
	})

	// Roster - admins only
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr, models.RoleAdmin, models.RoleSuperAdmin))
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGet)
	})

	return r
}
