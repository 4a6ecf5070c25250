// internal/app/features/donations/delete.go
package donations

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"github.com/hopecharity/hopehub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete serves DELETE /donation/{id}. Removing a donation
// reverses everything HandleDonate did: the record, the cause's raised
// amount, and the donor's reference, in one transaction.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Tokens.PairMatch(auth.BearerToken(r), auth.RefreshToken(r)); err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid donation id"))
		return
	}

	d, err := h.Donations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Donation not found")
		}
		h.Wr.Error(w, r, err)
		return
	}

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		n, err := h.Donations.Delete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.NotFound("Donation not found")
		}
		if _, err := h.Causes.DecRaised(ctx, d.Cause, d.Amount); err != nil {
			return err
		}
		return h.Donors.PullDonation(ctx, d.Donor, d.ID)
	})
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	h.Log.Info("donation deleted",
		zap.String("id", id.Hex()),
		zap.Float64("amount", d.Amount))
	h.Wr.OK(w, "Donation deleted successfully", nil)
}
