// internal/app/features/users/list.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/query"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var userSearchFields = []string{"name.firstName", "name.lastName", "email"}
var userFilterFields = []string{"email", "role", "id"}

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	opts := query.FromRequest(r, userFilterFields)
	cl := opts.Build(userSearchFields)

	page, err := h.Users.List(ctx, cl)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	total, err := h.Users.Count(ctx, cl.Where)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.List(w, "Users retrieved successfully", page, respond.Meta{
		Page:  cl.Page,
		Limit: cl.PageSize,
		Total: total,
	})
}

// ServeGet handles GET /users/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid user id"))
		return
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("User not found")
		}
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.OK(w, "User retrieved successfully", u)
}

// ServeMe handles GET /users/me: the authenticated account with its
// role profile attached.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, ok := auth.CurrentUser(r)
	if !ok {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
		return
	}
	id, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
		return
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("User not found")
		}
		h.Wr.Error(w, r, err)
		return
	}

	out := createdUser{User: *u}
	if role, ok := models.ProfileRoleFor(u.Role); ok {
		if profile, err := h.Profiles[role].GetByUser(ctx, u.ID); err == nil {
			out.Profile = profile
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Wr.Error(w, r, err)
			return
		}
	}
	h.Wr.OK(w, "User retrieved successfully", out)
}
