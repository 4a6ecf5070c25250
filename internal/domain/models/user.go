// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold. Exactly one role-profile reference
// (Admin/Donor/Volunteer) is live at a time, matching Role. Super-admins
// carry an admin profile.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
	RoleVolunteer  = "volunteer"
	RoleDonor      = "donor"
)

// ValidRole reports whether role is one of the four account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSuperAdmin, RoleVolunteer, RoleDonor:
		return true
	}
	return false
}

// PersonName is the first/last name pair shared by users and profiles.
type PersonName struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
}

// User is the credential record. PasswordHash is never serialized to JSON;
// the role-profile references hold at most one live entry, keyed by Role.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         PersonName          `bson:"name" json:"name"`
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"password_hash" json:"-"`
	Role         string              `bson:"role" json:"role"`
	Admin        *primitive.ObjectID `bson:"admin,omitempty" json:"admin,omitempty"`
	Donor        *primitive.ObjectID `bson:"donor,omitempty" json:"donor,omitempty"`
	Volunteer    *primitive.ObjectID `bson:"volunteer,omitempty" json:"volunteer,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ProfileID returns the role-profile reference matching the user's role,
// or nil if none has been linked yet.
func (u *User) ProfileID() *primitive.ObjectID {
	switch u.Role {
	case RoleAdmin, RoleSuperAdmin:
		return u.Admin
	case RoleDonor:
		return u.Donor
	case RoleVolunteer:
		return u.Volunteer
	}
	return nil
}
