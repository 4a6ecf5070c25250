// internal/app/features/profiles/routes.go
package profiles

import (
	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/domain/models"
)

// Routes mounts one role's profile routes under its base path
// (/admin, /donor, or /volunteer from bootstrap).
func Routes(h *Handler, tm *auth.Manager) chi.Router {
	r := chi.NewRouter()

	// Reads - any authenticated role
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr))
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGet)
	})

	// Updates - admins, or the role itself editing its own kind
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr, models.RoleAdmin, models.RoleSuperAdmin, string(h.Role)))
		pr.Patch("/{id}", h.HandleUpdate)
	})

	// Deletes - admins only
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr, models.RoleAdmin, models.RoleSuperAdmin))
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
