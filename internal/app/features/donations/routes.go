// internal/app/features/donations/routes.go
package donations

import (
	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/domain/models"
)

// Routes mounts all donation routes under the base path (typically
// "/donation" from bootstrap).
func Routes(h *Handler, tm *auth.Manager) chi.Router {
	r := chi.NewRouter()

	// Reads - any authenticated role
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr))
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGet)
	})

	// Giving - donors only
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr, models.RoleDonor))
		pr.Post("/donate", h.HandleDonate)
	})

	// Removal - admins only
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr, models.RoleAdmin, models.RoleSuperAdmin))
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
