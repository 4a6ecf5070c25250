// internal/app/features/profiles/list.go
package profiles

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/query"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var profileSearchFields = []string{"name.firstName", "name.lastName", "email", "address"}
var profileFilterFields = []string{"email", "id", "user"}

// ServeList handles GET /.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	opts := query.FromRequest(r, profileFilterFields)
	cl := opts.Build(profileSearchFields)

	page, err := h.Profiles.List(ctx, cl)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	total, err := h.Profiles.Count(ctx, cl.Where)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.List(w, "Profiles retrieved successfully", page, respond.Meta{
		Page:  cl.Page,
		Limit: cl.PageSize,
		Total: total,
	})
}

// ServeGet handles GET /{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid profile id"))
		return
	}

	p, err := h.Profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Profile not found")
		}
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.OK(w, "Profile retrieved successfully", p)
}
