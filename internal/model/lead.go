package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead is a prospective buyer's contact-form submission.  It corresponds
// to a document in the `lead` collection.  The store assigns ID and the
// timestamps at insert; everything else is kept as submitted.
type Lead struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ProjectID        string             `bson:"project_id,omitempty" json:"project_id,omitempty"`
	Message          string             `bson:"message,omitempty" json:"message,omitempty"`
	Budget           string             `bson:"budget,omitempty" json:"budget,omitempty"`
	PreferredContact string             `bson:"preferred_contact,omitempty" json:"preferred_contact,omitempty"`
	Source           string             `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}
