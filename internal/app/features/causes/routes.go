// internal/app/features/causes/routes.go
package causes

import (
	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/domain/models"
)

// Routes mounts all cause routes under the base path (typically
// "/cause" from bootstrap).
func Routes(h *Handler, tm *auth.Manager) chi.Router {
	r := chi.NewRouter()

	// Public reads
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)

	// Mutations - admins only
	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireRoles(h.Wr, models.RoleAdmin, models.RoleSuperAdmin))
		pr.Post("/create-cause", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
