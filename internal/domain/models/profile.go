// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileRole tags which role-profile collection a Profile lives in.
// Super-admin accounts share the admin collection.
type ProfileRole string

const (
	ProfileAdmin     ProfileRole = "admin"
	ProfileDonor     ProfileRole = "donor"
	ProfileVolunteer ProfileRole = "volunteer"
)

// Collection returns the Mongo collection name for the role.
func (r ProfileRole) Collection() string {
	switch r {
	case ProfileAdmin:
		return "admins"
	case ProfileDonor:
		return "donors"
	case ProfileVolunteer:
		return "volunteers"
	}
	return ""
}

// UserField returns the users-collection field that holds the
// back-reference to a profile of this role.
func (r ProfileRole) UserField() string { return string(r) }

// ProfileRoleFor maps a user role to its profile collection tag.
func ProfileRoleFor(userRole string) (ProfileRole, bool) {
	switch userRole {
	case RoleAdmin, RoleSuperAdmin:
		return ProfileAdmin, true
	case RoleDonor:
		return ProfileDonor, true
	case RoleVolunteer:
		return ProfileVolunteer, true
	}
	return "", false
}

// Profile is the role-specific record extending a User with contact data.
// One struct covers the admins, donors, and volunteers collections; the
// role-specific reference lists simply stay empty for the other roles.
//
// Lifecycle: created in the same transaction as its User at signup and
// deleted with it; name changes propagate to the User.
type Profile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         PersonName         `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	ContactNo    string             `bson:"contactNo" json:"contactNo"`
	Address      string             `bson:"address" json:"address"`
	ProfileImage string             `bson:"profileImage" json:"profileImage"`
	User         primitive.ObjectID `bson:"user" json:"user"`

	// Admin-owned references.
	Causes []primitive.ObjectID `bson:"causes,omitempty" json:"causes,omitempty"`

	// Donor-owned references.
	Donation []primitive.ObjectID `bson:"donation,omitempty" json:"donation,omitempty"`

	// Admin- and volunteer-assigned references. The event and blog
	// modules are not implemented; the slots exist so references survive
	// round trips.
	Events []primitive.ObjectID `bson:"events,omitempty" json:"events,omitempty"`
	Blogs  []primitive.ObjectID `bson:"blogs,omitempty" json:"blogs,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
