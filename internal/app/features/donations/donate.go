// internal/app/features/donations/donate.go
package donations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/inputval"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"github.com/hopecharity/hopehub/internal/app/system/txn"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type donateRequest struct {
	Amount float64 `json:"amount"`
	Cause  string  `json:"cause"`
}

// HandleDonate serves POST /donation/donate. The donation insert, the
// raised-amount increment, and the push onto the donor's list run in
// one transaction. The increment's filter rejects any amount that would
// push raised past the goal, so two donations racing for the last slot
// cannot both land.
func (h *Handler) HandleDonate(w http.ResponseWriter, r *http.Request) {
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

	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid JSON body"))
		return
	}
	var v inputval.Errors
	v.Positive("amount", req.Amount, "Donation amount must be positive")
	v.Require("cause", req.Cause, "Cause is required")
	if err := v.Err(); err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	causeID, err := primitive.ObjectIDFromHex(req.Cause)
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid cause id"))
		return
	}

	cause, err := h.Causes.GetByID(ctx, causeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Cause not found")
		}
		h.Wr.Error(w, r, err)
		return
	}
	if cause.RaisedAmount+req.Amount > cause.GoalAmount {
		h.Wr.Error(w, r, apierror.BadRequest("Donation exceeds the remaining goal"))
		return
	}

	userID, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
		return
	}
	donor, err := h.Donors.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Donor profile not found")
		}
		h.Wr.Error(w, r, err)
		return
	}

	var created models.Donation
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var err error
		created, err = h.Donations.Create(ctx, models.Donation{
			Amount: req.Amount,
			Donor:  donor.ID,
			Cause:  causeID,
		})
		if err != nil {
			return err
		}

		// Guarded: ensures the goal bound even against a concurrent donation
		// that slipped past the pre-check above.
		n, err := h.Causes.IncRaised(ctx, causeID, req.Amount)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.BadRequest("Donation exceeds the remaining goal")
		}

		return h.Donors.PushDonation(ctx, donor.ID, created.ID)
	})
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	h.Log.Info("donation recorded",
		zap.String("cause", causeID.Hex()),
		zap.Float64("amount", req.Amount))

	populated, err := h.Donations.GetPopulated(ctx, created.ID)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.Created(w, "Donation completed successfully", populated)
}
