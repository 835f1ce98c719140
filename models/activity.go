package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ActivityDifficulty string

const (
	DifficultyBeginner     ActivityDifficulty = "Beginner"
	DifficultyIntermediate ActivityDifficulty = "Intermediate"
	DifficultyAdvanced     ActivityDifficulty = "Advanced"
)

type ActivityStatus string

const (
	ActivityActive ActivityStatus = "Active"
	ActivityOnHold ActivityStatus = "On Hold"
)

// Activity is a catalog entry. Rating is derived from reviews and is only
// written through the review engine's recompute path.
type Activity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Location   string             `bson:"location" json:"location"`
	Images     []string           `bson:"images,omitempty" json:"images,omitempty"`
	Price      float64            `bson:"price" json:"price"`
	Duration   string             `bson:"duration" json:"duration"`
	Difficulty ActivityDifficulty `bson:"difficulty" json:"difficulty"`
	Bookings   int                `bson:"bookings" json:"bookings"`
	Rating     float64            `bson:"rating" json:"rating"`
	Status     ActivityStatus     `bson:"status" json:"status"`
}

func (d ActivityDifficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

func (s ActivityStatus) Valid() bool {
	return s == ActivityActive || s == ActivityOnHold
}
