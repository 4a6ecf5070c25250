// internal/app/features/causes/list.go
package causes

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

var causeSearchFields = []string{"title", "description"}
var causeFilterFields = []string{"id", "createdBy"}

// ServeList handles GET /cause. Public.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	opts := query.FromRequest(r, causeFilterFields)
	cl := opts.Build(causeSearchFields)

	page, err := h.Causes.ListPopulated(ctx, cl)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	total, err := h.Causes.Count(ctx, cl.Where)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.List(w, "Causes retrieved successfully", page, respond.Meta{
		Page:  cl.Page,
		Limit: cl.PageSize,
		Total: total,
	})
}

// ServeGet handles GET /cause/{id}. Public.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid cause id"))
		return
	}

	c, err := h.Causes.GetPopulated(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Cause not found")
		}
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.OK(w, "Cause retrieved successfully", c)
}
