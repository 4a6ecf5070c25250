// internal/app/features/causes/delete.go
package causes

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"github.com/hopecharity/hopehub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete serves DELETE /cause/{id}. The cascade removes the
// cause, its entry in the owning admin's list, every donation made to
// it, and each donation's entry in its donor's list, all in one
// transaction so no orphan references survive.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid cause id"))
		return
	}

	cause, err := h.Causes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Cause not found")
		}
		h.Wr.Error(w, r, err)
		return
	}

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		n, err := h.Causes.Delete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.NotFound("Cause not found")
		}

		if err := h.Admins.PullCause(ctx, cause.CreatedBy, id); err != nil {
			return err
		}

		donations, err := h.Donations.FindByCause(ctx, id)
		if err != nil {
			return err
		}
		for _, d := range donations {
			if err := h.Donors.PullDonation(ctx, d.Donor, d.ID); err != nil {
				return err
			}
		}
		_, err = h.Donations.DeleteByCause(ctx, id)
		return err
	})
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	h.Log.Info("cause deleted", zap.String("id", id.Hex()))
	h.Wr.OK(w, "Cause deleted successfully", nil)
}
