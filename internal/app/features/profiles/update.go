// internal/app/features/profiles/update.go
package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/sanitize"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"github.com/hopecharity/hopehub/internal/app/system/txn"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type updateProfileRequest struct {
	Name         *models.PersonName `json:"name"`
	ContactNo    *string            `json:"contactNo"`
	Address      *string            `json:"address"`
	ProfileImage *string            `json:"profileImage"`
}

// HandleUpdate serves PATCH /{id}. A name change is mirrored onto the
// owning user in the same transaction so the two documents never
// disagree.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid profile id"))
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid JSON body"))
		return
	}

	current, err := h.Profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("Profile not found")
		}
		h.Wr.Error(w, r, err)
		return
	}

	upd := profilestore.Update{
		ContactNo:    req.ContactNo,
		Address:      req.Address,
		ProfileImage: req.ProfileImage,
	}
	if req.Address != nil {
		clean := sanitize.Text(*req.Address)
		upd.Address = &clean
	}
	if req.Name != nil {
		upd.Name = &models.PersonName{
			FirstName: sanitize.Text(req.Name.FirstName),
			LastName:  sanitize.Text(req.Name.LastName),
		}
	}

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		matched, err := h.Profiles.UpdateFields(ctx, id, upd)
		if err != nil {
			return err
		}
		if matched == 0 {
			return apierror.NotFound("Profile not found")
		}
		if upd.Name == nil {
			return nil
		}

		// Mirror whichever name components changed.
		mirrored := current.Name
		if upd.Name.FirstName != "" {
			mirrored.FirstName = upd.Name.FirstName
		}
		if upd.Name.LastName != "" {
			mirrored.LastName = upd.Name.LastName
		}
		return h.Users.UpdateName(ctx, current.User, mirrored)
	})
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	updated, err := h.Profiles.GetByID(ctx, id)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.OK(w, "Profile updated successfully", updated)
}
