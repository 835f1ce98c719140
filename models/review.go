package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one user's rating of one activity. At most one review may exist
// per (userId, activity) pair; the review service enforces it.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Activity  primitive.ObjectID `bson:"activity" json:"activity"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	UserName  string             `bson:"userName" json:"userName"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReviewWithActivity joins a review with its activity for the admin listing.
type ReviewWithActivity struct {
	Review      `bson:",inline"`
	ActivityDoc *Activity `bson:"activityDoc,omitempty" json:"activityDoc,omitempty"`
}
