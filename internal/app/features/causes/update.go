// internal/app/features/causes/update.go
package causes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	causestore "github.com/hopecharity/hopehub/internal/app/store/causes"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/inputval"
	"github.com/hopecharity/hopehub/internal/app/system/sanitize"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type updateCauseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	GoalAmount  *float64 `json:"goalAmount"`
	Image       *string  `json:"image"`
}

// HandleUpdate serves PATCH /cause/{id}. Lowering the goal below what
// has already been raised is refused; the store filter enforces it
// atomically, so a racing donation cannot slip under the new goal.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid cause id"))
		return
	}

	var req updateCauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid JSON body"))
		return
	}
	var v inputval.Errors
	if req.GoalAmount != nil {
		v.Positive("goalAmount", *req.GoalAmount, "Goal amount must be positive")
	}
	if err := v.Err(); err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	if _, err := h.Causes.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Cause not found")
		}
		h.Wr.Error(w, r, err)
		return
	}

	upd := causestore.Update{
		GoalAmount: req.GoalAmount,
		Image:      req.Image,
	}
	if req.Title != nil {
		clean := sanitize.Text(*req.Title)
		upd.Title = &clean
	}
	if req.Description != nil {
		clean := sanitize.Text(*req.Description)
		upd.Description = &clean
	}

	matched, err := h.Causes.UpdateFields(ctx, id, upd)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	if matched == 0 {
		// The cause existed a moment ago, so the filter refused the goal.
		h.Wr.Error(w, r, apierror.BadRequest("Goal amount cannot be less than the raised amount"))
		return
	}

	updated, err := h.Causes.GetPopulated(ctx, id)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.OK(w, "Cause updated successfully", updated)
}
