// internal/domain/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation is a single contribution by a donor toward a cause.
// Creating one increments the cause's raisedAmount by Amount and appends
// the donation to the donor's list; deleting one reverses both.
type Donation struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Amount float64            `bson:"amount" json:"amount"`
	Donor  primitive.ObjectID `bson:"donor" json:"donor"`
	Cause  primitive.ObjectID `bson:"cause" json:"cause"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PopulatedDonation is a donation with its donor profile and cause
// resolved, returned by single-donation reads and donate. The joined
// documents land under "donorDoc"/"causeDoc" so the base donation's
// reference ids still decode; JSON serves them as donor and cause.
type PopulatedDonation struct {
	Donation `bson:",inline"`
	Donor    *Profile `bson:"donorDoc" json:"donor"`
	Cause    *Cause   `bson:"causeDoc" json:"cause"`
}
