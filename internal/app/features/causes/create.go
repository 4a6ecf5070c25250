// internal/app/features/causes/create.go
package causes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/inputval"
	"github.com/hopecharity/hopehub/internal/app/system/sanitize"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"github.com/hopecharity/hopehub/internal/app/system/txn"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type createCauseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	GoalAmount  float64 `json:"goalAmount"`
	Image       string  `json:"image"`
}

// HandleCreate serves POST /cause/create-cause. The cause insert and
// the push onto the admin's cause list travel in one transaction.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Tokens.PairMatch(auth.BearerToken(r), auth.RefreshToken(r)); err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	p, ok := auth.CurrentUser(r)
	if !ok {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
		return
	}

	var req createCauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid JSON body"))
		return
	}
	var v inputval.Errors
	v.Require("title", req.Title, "Title is required")
	v.Require("description", req.Description, "Description is required")
	v.Positive("goalAmount", req.GoalAmount, "Goal amount must be positive")
	if err := v.Err(); err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	userID, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
		return
	}
	admin, err := h.Admins.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Admin profile not found")
		}
		h.Wr.Error(w, r, err)
		return
	}

	var created models.Cause
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var err error
		created, err = h.Causes.Create(ctx, models.Cause{
			Title:       sanitize.Text(req.Title),
			Description: sanitize.Text(req.Description),
			GoalAmount:  req.GoalAmount,
			Image:       req.Image,
			CreatedBy:   admin.ID,
		})
		if err != nil {
			return err
		}
		return h.Admins.PushCause(ctx, admin.ID, created.ID)
	})
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	populated, err := h.Causes.GetPopulated(ctx, created.ID)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.Created(w, "Cause is created successfully", populated)
}
