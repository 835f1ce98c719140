package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aku-12/ThrillQuest-Backend/errs"
	"github.com/Aku-12/ThrillQuest-Backend/models"
)

// fakeReviewStore is an in-memory ReviewStore for exercising the engine's
// invariants without a database.
type fakeReviewStore struct {
	activities map[primitive.ObjectID]*models.Activity
	bookings   []models.Booking
	reviews    []models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{activities: map[primitive.ObjectID]*models.Activity{}}
}

func (f *fakeReviewStore) GetActivity(_ context.Context, id primitive.ObjectID) (*models.Activity, error) {
	if a, ok := f.activities[id]; ok {
		copy := *a
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeReviewStore) FindBookingByActivityAndCustomer(_ context.Context, activityID primitive.ObjectID, customerName string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].Activity == activityID && f.bookings[i].CustomerName == customerName {
			return &f.bookings[i], nil
		}
	}
	return nil, nil
}

func (f *fakeReviewStore) FindReviewByActivityAndUser(_ context.Context, activityID, userID primitive.ObjectID) (*models.Review, error) {
	for i := range f.reviews {
		if f.reviews[i].Activity == activityID && f.reviews[i].UserID == userID {
			return &f.reviews[i], nil
		}
	}
	return nil, nil
}

func (f *fakeReviewStore) InsertReview(_ context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewStore) ListReviewsByActivity(_ context.Context, activityID primitive.ObjectID) ([]models.Review, error) {
	out := []models.Review{}
	for i := len(f.reviews) - 1; i >= 0; i-- {
		if f.reviews[i].Activity == activityID {
			out = append(out, f.reviews[i])
		}
	}
	return out, nil
}

func (f *fakeReviewStore) ListAllReviews(_ context.Context) ([]models.ReviewWithActivity, error) {
	out := []models.ReviewWithActivity{}
	for i := len(f.reviews) - 1; i >= 0; i-- {
		joined := models.ReviewWithActivity{Review: f.reviews[i]}
		if a, ok := f.activities[f.reviews[i].Activity]; ok {
			copy := *a
			joined.ActivityDoc = &copy
		}
		out = append(out, joined)
	}
	return out, nil
}

func (f *fakeReviewStore) UpdateReviewStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Review, error) {
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			f.reviews[i].Status = status
			return &f.reviews[i], nil
		}
	}
	return nil, nil
}

func (f *fakeReviewStore) DeleteReview(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			deleted := f.reviews[i]
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewStore) RecomputeActivityRating(_ context.Context, activityID primitive.ObjectID) (float64, error) {
	sum, n := 0, 0
	for i := range f.reviews {
		if f.reviews[i].Activity == activityID {
			sum += f.reviews[i].Rating
			n++
		}
	}
	avg := 0.0
	if n > 0 {
		avg = float64(sum) / float64(n)
	}
	if a, ok := f.activities[activityID]; ok {
		a.Rating = avg
	}
	return avg, nil
}

func seedActivity(store *fakeReviewStore) primitive.ObjectID {
	id := primitive.NewObjectID()
	store.activities[id] = &models.Activity{
		ID:       id,
		Name:     "Canyon Swing",
		Location: "Queenstown",
		Status:   models.ActivityActive,
	}
	return id
}

func seedUserWithBooking(store *fakeReviewStore, activityId primitive.ObjectID, fName, lName string) *models.User {
	user := &models.User{
		ID:    primitive.NewObjectID(),
		FName: fName,
		LName: lName,
		Email: fName + "@example.com",
		Role:  models.RoleCustomer,
	}
	store.bookings = append(store.bookings, models.Booking{
		ID:           primitive.NewObjectID(),
		Activity:     activityId,
		CustomerName: user.FullName(),
		GuideName:    "Alex Rivers",
		UserID:       user.ID,
	})
	return user
}

func TestSubmitReviewUpdatesActivityRating(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	activityId := seedActivity(store)
	john := seedUserWithBooking(store, activityId, "John", "Doe")

	review, err := svc.SubmitReview(context.Background(), john, activityId, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "John Doe", review.UserName)
	assert.Equal(t, john.ID, review.UserID)
	assert.False(t, review.ID.IsZero())

	assert.Equal(t, 5.0, store.activities[activityId].Rating)
}

func TestSubmitReviewRatingIsMeanOfAllReviews(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	activityId := seedActivity(store)
	john := seedUserWithBooking(store, activityId, "John", "Doe")
	jane := seedUserWithBooking(store, activityId, "Jane", "Roe")

	_, err := svc.SubmitReview(context.Background(), john, activityId, 5, "")
	require.NoError(t, err)
	_, err = svc.SubmitReview(context.Background(), jane, activityId, 4, "")
	require.NoError(t, err)

	assert.Equal(t, 4.5, store.activities[activityId].Rating)
}

func TestSubmitReviewDuplicateConflicts(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	activityId := seedActivity(store)
	john := seedUserWithBooking(store, activityId, "John", "Doe")

	_, err := svc.SubmitReview(context.Background(), john, activityId, 5, "great")
	require.NoError(t, err)

	_, err = svc.SubmitReview(context.Background(), john, activityId, 4, "again")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)

	// Rating stays at the first review's value.
	assert.Equal(t, 5.0, store.activities[activityId].Rating)
	assert.Len(t, store.reviews, 1)
}

func TestSubmitReviewWithoutBookingForbidden(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	activityId := seedActivity(store)
	jane := &models.User{
		ID:    primitive.NewObjectID(),
		FName: "Jane",
		LName: "Smith",
		Role:  models.RoleCustomer,
	}

	_, err := svc.SubmitReview(context.Background(), jane, activityId, 3, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Empty(t, store.reviews)
}

func TestSubmitReviewEligibilityMatchesCurrentFullName(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	activityId := seedActivity(store)
	john := seedUserWithBooking(store, activityId, "John", "Doe")

	// A profile rename breaks the booking match by design.
	john.LName = "Doe-Smith"
	_, err := svc.SubmitReview(context.Background(), john, activityId, 5, "")
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestSubmitReviewUnknownActivityNotFound(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	john := &models.User{ID: primitive.NewObjectID(), FName: "John", LName: "Doe"}

	_, err := svc.SubmitReview(context.Background(), john, primitive.NewObjectID(), 5, "")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSubmitReviewRejectsOutOfRangeRating(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	activityId := seedActivity(store)
	john := seedUserWithBooking(store, activityId, "John", "Doe")

	for _, rating := range []int{0, 6, -1, 100} {
		_, err := svc.SubmitReview(context.Background(), john, activityId, rating, "")
		assert.ErrorIs(t, err, errs.ErrInvalidArgument, "rating %d", rating)
	}
	assert.Empty(t, store.reviews)
}

func TestDeleteReviewRecomputesRating(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	activityId := seedActivity(store)
	john := seedUserWithBooking(store, activityId, "John", "Doe")
	jane := seedUserWithBooking(store, activityId, "Jane", "Roe")

	first, err := svc.SubmitReview(context.Background(), john, activityId, 5, "")
	require.NoError(t, err)
	_, err = svc.SubmitReview(context.Background(), jane, activityId, 3, "")
	require.NoError(t, err)
	require.Equal(t, 4.0, store.activities[activityId].Rating)

	require.NoError(t, svc.Delete(context.Background(), first.ID))
	assert.Equal(t, 3.0, store.activities[activityId].Rating)

	// Deleting the last review resets the aggregate.
	remaining, err := svc.ListForActivity(context.Background(), activityId)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.NoError(t, svc.Delete(context.Background(), remaining[0].ID))
	assert.Equal(t, 0.0, store.activities[activityId].Rating)
}

func TestDeleteReviewNotFound(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	err := svc.Delete(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	activityId := seedActivity(store)
	john := seedUserWithBooking(store, activityId, "John", "Doe")

	review, err := svc.SubmitReview(context.Background(), john, activityId, 4, "")
	require.NoError(t, err)
	assert.Equal(t, "Pending", review.Status)

	updated, err := svc.SetStatus(context.Background(), review.ID, "Approved")
	require.NoError(t, err)
	assert.Equal(t, "Approved", updated.Status)

	_, err = svc.SetStatus(context.Background(), primitive.NewObjectID(), "Approved")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListAllJoinsActivity(t *testing.T) {
	store := newFakeReviewStore()
	svc := NewReviewService(store)

	activityId := seedActivity(store)
	john := seedUserWithBooking(store, activityId, "John", "Doe")

	_, err := svc.SubmitReview(context.Background(), john, activityId, 4, "")
	require.NoError(t, err)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].ActivityDoc)
	assert.Equal(t, "Canyon Swing", all[0].ActivityDoc.Name)
}
