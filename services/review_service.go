package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aku-12/ThrillQuest-Backend/errs"
	"github.com/Aku-12/ThrillQuest-Backend/models"
)

// ReviewStore is the persistence surface the review engine runs against.
// Lookup methods return (nil, nil) when no document matches.
type ReviewStore interface {
	GetActivity(ctx context.Context, id primitive.ObjectID) (*models.Activity, error)
	FindBookingByActivityAndCustomer(ctx context.Context, activityID primitive.ObjectID, customerName string) (*models.Booking, error)
	FindReviewByActivityAndUser(ctx context.Context, activityID, userID primitive.ObjectID) (*models.Review, error)
	InsertReview(ctx context.Context, review *models.Review) error
	ListReviewsByActivity(ctx context.Context, activityID primitive.ObjectID) ([]models.Review, error)
	ListAllReviews(ctx context.Context) ([]models.ReviewWithActivity, error)
	UpdateReviewStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	// RecomputeActivityRating recalculates the activity's rating from its
	// review rows in one store call and returns the new mean, 0 when the
	// activity has no reviews left.
	RecomputeActivityRating(ctx context.Context, activityID primitive.ObjectID) (float64, error)
}

// ReviewService enforces the review invariants: a user may review an
// activity only when a booking carries their current full name, and at most
// once per activity. Activity.rating is only ever written through
// RecomputeActivityRating, so the engine is the derived field's single
// writer.
type ReviewService struct {
	store ReviewStore
}

func NewReviewService(store ReviewStore) *ReviewService {
	return &ReviewService{store: store}
}

// SubmitReview runs the eligibility and duplicate checks, persists the
// review, and recomputes the activity's aggregate rating. Two concurrent
// submits for the same activity can interleave between insert and recompute;
// both reviews persist and the last recompute runs over the full review set,
// so the mean converges.
func (s *ReviewService) SubmitReview(ctx context.Context, user *models.User, activityID primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errs.InvalidArgument("Rating must be a number between 1 and 5")
	}

	activity, err := s.store.GetActivity(ctx, activityID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if activity == nil {
		return nil, errs.NotFound("Activity not found")
	}

	// Bookings name the customer, not the account, so eligibility matches
	// on the requester's current full name.
	booking, err := s.store.FindBookingByActivityAndCustomer(ctx, activityID, user.FullName())
	if err != nil {
		return nil, errs.Internal(err)
	}
	if booking == nil {
		return nil, errs.Forbidden("You can only review an activity you have booked.")
	}

	existing, err := s.store.FindReviewByActivityAndUser(ctx, activityID, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing != nil {
		return nil, errs.Conflict("You have already reviewed this activity.")
	}

	now := time.Now().UTC()
	review := &models.Review{
		Activity:  activityID,
		UserID:    user.ID,
		UserName:  user.FullName(),
		Rating:    rating,
		Comment:   comment,
		Status:    "Pending",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertReview(ctx, review); err != nil {
		return nil, errs.Internal(err)
	}

	if _, err := s.store.RecomputeActivityRating(ctx, activityID); err != nil {
		return nil, errs.Internal(err)
	}

	return review, nil
}

// ListForActivity returns an activity's reviews, newest first. Public read.
func (s *ReviewService) ListForActivity(ctx context.Context, activityID primitive.ObjectID) ([]models.Review, error) {
	reviews, err := s.store.ListReviewsByActivity(ctx, activityID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return reviews, nil
}

// ListAll returns every review joined with its activity, newest first.
func (s *ReviewService) ListAll(ctx context.Context) ([]models.ReviewWithActivity, error) {
	reviews, err := s.store.ListAllReviews(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return reviews, nil
}

// SetStatus overwrites a review's moderation status. The vocabulary is owned
// by the admin frontend, so the value is a free-form string.
func (s *ReviewService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Review, error) {
	review, err := s.store.UpdateReviewStatus(ctx, id, status)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if review == nil {
		return nil, errs.NotFound("Review not found")
	}
	return review, nil
}

// Delete removes a review and recomputes the activity rating so the
// aggregate never reflects a deleted row.
func (s *ReviewService) Delete(ctx context.Context, id primitive.ObjectID) error {
	review, err := s.store.DeleteReview(ctx, id)
	if err != nil {
		return errs.Internal(err)
	}
	if review == nil {
		return errs.NotFound("Review not found")
	}

	if _, err := s.store.RecomputeActivityRating(ctx, review.Activity); err != nil {
		return errs.Internal(err)
	}
	return nil
}
