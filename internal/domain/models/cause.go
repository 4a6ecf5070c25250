// internal/domain/models/cause.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cause is a fundraising campaign owned by an admin profile.
// Invariant: 0 <= RaisedAmount <= GoalAmount at all times; the goal can
// never be edited below the amount already raised.
type Cause struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	GoalAmount   float64            `bson:"goalAmount" json:"goalAmount"`
	RaisedAmount float64            `bson:"raisedAmount" json:"raisedAmount"`
	Image        string             `bson:"image" json:"image"`
	CreatedBy    primitive.ObjectID `bson:"createdBy" json:"createdBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PopulatedCause is a cause with its creating admin profile resolved,
// returned by single-cause reads and create-cause. The aggregation
// writes the joined profile under "creator" so the base document's
// createdBy id still decodes; JSON serves the profile as createdBy.
type PopulatedCause struct {
	Cause     `bson:",inline"`
	CreatedBy *Profile `bson:"creator" json:"createdBy"`
}
