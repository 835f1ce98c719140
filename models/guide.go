package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GuideStatus string

const (
	GuideAvailable   GuideStatus = "Available"
	GuideOnBreak     GuideStatus = "On Break"
	GuideUnavailable GuideStatus = "Unavailable"
)

type Guide struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Specialties   []string           `bson:"specialties" json:"specialties"`
	Experience    int                `bson:"experience" json:"experience"`
	AssignedTours int                `bson:"assignedTours" json:"assignedTours"`
	Ratings       []int              `bson:"ratings" json:"ratings"`
	Status        GuideStatus        `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AverageRating is the mean of the ratings list rounded to one decimal
// place, 0 when no ratings have been submitted.
func (g *Guide) AverageRating() float64 {
	if len(g.Ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range g.Ratings {
		total += r
	}
	avg := float64(total) / float64(len(g.Ratings))
	return math.Round(avg*10) / 10
}

func (s GuideStatus) Valid() bool {
	switch s {
	case GuideAvailable, GuideOnBreak, GuideUnavailable:
		return true
	}
	return false
}
