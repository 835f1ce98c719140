package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aku-12/ThrillQuest-Backend/errs"
	"github.com/Aku-12/ThrillQuest-Backend/models"
)

// GuideStore is the persistence surface the rating accumulator runs
// against. GetGuide returns (nil, nil) when the guide does not exist.
type GuideStore interface {
	GetGuide(ctx context.Context, id primitive.ObjectID) (*models.Guide, error)
	// PushRating appends a rating to the guide's list and returns the
	// updated document, nil when the guide vanished in between.
	PushRating(ctx context.Context, id primitive.ObjectID, rating int) (*models.Guide, error)
}

// GuideService owns writes to Guide.Ratings. There is deliberately no
// per-caller dedup: the endpoint does not record who rated, so the same
// caller may rate a guide repeatedly.
type GuideService struct {
	store GuideStore
}

func NewGuideService(store GuideStore) *GuideService {
	return &GuideService{store: store}
}

// RateGuide validates the rating, appends it, and returns the updated guide
// with the recomputed average. An out-of-range rating leaves the list
// untouched.
func (s *GuideService) RateGuide(ctx context.Context, id primitive.ObjectID, rating int) (*models.Guide, float64, error) {
	if rating < 1 || rating > 5 {
		return nil, 0, errs.InvalidArgument("Rating must be a number between 1 and 5")
	}

	guide, err := s.store.GetGuide(ctx, id)
	if err != nil {
		return nil, 0, errs.Internal(err)
	}
	if guide == nil {
		return nil, 0, errs.NotFound("Guide not found")
	}

	updated, err := s.store.PushRating(ctx, id, rating)
	if err != nil {
		return nil, 0, errs.Internal(err)
	}
	if updated == nil {
		return nil, 0, errs.NotFound("Guide not found")
	}

	return updated, updated.AverageRating(), nil
}
