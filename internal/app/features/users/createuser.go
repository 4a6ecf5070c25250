// internal/app/features/users/createuser.go
package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/inputval"
	"github.com/hopecharity/hopehub/internal/app/system/sanitize"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"github.com/hopecharity/hopehub/internal/app/system/txn"
	"github.com/hopecharity/hopehub/internal/domain/models"
)

type createUserRequest struct {
	Password     string            `json:"password"`
	Name         models.PersonName `json:"name"`
	Email        string            `json:"email"`
	Role         string            `json:"role"`
	ContactNo    string            `json:"contactNo"`
	Address      string            `json:"address"`
	ProfileImage string            `json:"profileImage"`
}

// createdUser is the signup response payload: the account with its
// freshly created role profile attached.
type createdUser struct {
	models.User
	Profile *models.Profile `json:"profile"`
}

// HandleCreate serves POST /users/create-user. The user document, its
// role profile, and the back-reference between them are written in one
// transaction; a failure at any step leaves nothing behind.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid JSON body"))
		return
	}

	var v inputval.Errors
	v.Require("name.firstName", req.Name.FirstName, "First name is required")
	v.Require("name.lastName", req.Name.LastName, "Last name is required")
	v.RequireEmail("email", req.Email)
	v.MinLen("password", req.Password, 6, "Password must be at least 6 characters")
	v.Require("contactNo", req.ContactNo, "Contact number is required")
	v.Require("address", req.Address, "Address is required")
	if req.Role != "" && !models.ValidRole(req.Role) {
		v.Add("role", "Unknown role")
	}
	if err := v.Err(); err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	if req.Role == "" {
		req.Role = models.RoleDonor
	}
	profileRole, ok := models.ProfileRoleFor(req.Role)
	if !ok {
		h.Wr.Error(w, r, apierror.BadRequest("Unknown role"))
		return
	}
	if req.ProfileImage == "" {
		req.ProfileImage = h.DefaultProfileImage
	}

	name := models.PersonName{
		FirstName: sanitize.Text(req.Name.FirstName),
		LastName:  sanitize.Text(req.Name.LastName),
	}

	var (
		user    models.User
		profile models.Profile
	)
	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var err error
		user, err = h.Users.Create(ctx, models.User{
			Name:  name,
			Email: req.Email,
			Role:  req.Role,
		}, req.Password)
		if err != nil {
			return err
		}

		profile, err = h.Profiles[profileRole].Create(ctx, models.Profile{
			Name:         user.Name,
			Email:        user.Email,
			ContactNo:    sanitize.Text(req.ContactNo),
			Address:      sanitize.Text(req.Address),
			ProfileImage: req.ProfileImage,
			User:         user.ID,
		})
		if err != nil {
			return err
		}

		return h.Users.SetProfileRef(ctx, user.ID, profileRole, profile.ID)
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) || errors.Is(err, profilestore.ErrDuplicate) {
			err = apierror.Conflict("This email is already registered")
		}
		h.Wr.Error(w, r, err)
		return
	}

	// Reflect the back-reference set inside the transaction.
	switch profileRole {
	case models.ProfileAdmin:
		user.Admin = &profile.ID
	case models.ProfileDonor:
		user.Donor = &profile.ID
	case models.ProfileVolunteer:
		user.Volunteer = &profile.ID
	}

	h.Wr.Created(w, "User is created successfully", createdUser{User: user, Profile: &profile})
}
