// internal/app/features/donations/list.go
package donations

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

var donationFilterFields = []string{"id", "donor", "cause"}

// ServeList handles GET /donation.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	opts := query.FromRequest(r, donationFilterFields)
	cl := opts.Build(nil)

	page, err := h.Donations.ListPopulated(ctx, cl)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	total, err := h.Donations.Count(ctx, cl.Where)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.List(w, "Donations retrieved successfully", page, respond.Meta{
		Page:  cl.Page,
		Limit: cl.PageSize,
		Total: total,
	})
}

// ServeGet handles GET /donation/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid donation id"))
		return
	}

	d, err := h.Donations.GetPopulated(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Donation not found")
		}
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.OK(w, "Donation retrieved successfully", d)
}
