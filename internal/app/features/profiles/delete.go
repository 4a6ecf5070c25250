// internal/app/features/profiles/delete.go
package profiles

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"github.com/hopecharity/hopehub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete serves DELETE /{id}. The profile and its user account go
// together; if either document is already gone the whole operation
// rolls back and reports NotFound.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid profile id"))
		return
	}

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		n, err := h.Profiles.Delete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.NotFound("Profile not found")
		}

		n, err = h.Users.DeleteByProfileRef(ctx, h.Role, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.NotFound("Profile not found")
		}
		return nil
	})
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	h.Log.Info("profile deleted",
		zap.String("role", string(h.Role)),
		zap.String("id", id.Hex()))
	h.Wr.OK(w, "Profile deleted successfully", nil)
}
