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

type fakeGuideStore struct {
	guides map[primitive.ObjectID]*models.Guide
}

func newFakeGuideStore() *fakeGuideStore {
	return &fakeGuideStore{guides: map[primitive.ObjectID]*models.Guide{}}
}

func (f *fakeGuideStore) GetGuide(_ context.Context, id primitive.ObjectID) (*models.Guide, error) {
	if g, ok := f.guides[id]; ok {
		copy := *g
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeGuideStore) PushRating(_ context.Context, id primitive.ObjectID, rating int) (*models.Guide, error) {
	g, ok := f.guides[id]
	if !ok {
		return nil, nil
	}
	g.Ratings = append(g.Ratings, rating)
	copy := *g
	return &copy, nil
}

func seedGuide(store *fakeGuideStore) primitive.ObjectID {
	id := primitive.NewObjectID()
	store.guides[id] = &models.Guide{
		ID:     id,
		Name:   "Alex Rivers",
		Email:  "alex@example.com",
		Status: models.GuideAvailable,
	}
	return id
}

func TestRateGuideAccumulatesAverage(t *testing.T) {
	store := newFakeGuideStore()
	svc := NewGuideService(store)

	id := seedGuide(store)

	_, avg, err := svc.RateGuide(context.Background(), id, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	guide, avg, err := svc.RateGuide(context.Background(), id, 5)
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, []int{4, 5}, guide.Ratings)
}

func TestRateGuideRoundsToOneDecimal(t *testing.T) {
	store := newFakeGuideStore()
	svc := NewGuideService(store)

	id := seedGuide(store)

	var avg float64
	var err error
	for _, r := range []int{5, 4, 4} {
		_, avg, err = svc.RateGuide(context.Background(), id, r)
		require.NoError(t, err)
	}
	// 13/3 = 4.333..., rounded to one decimal.
	assert.Equal(t, 4.3, avg)
}

func TestRateGuideRejectsOutOfRange(t *testing.T) {
	store := newFakeGuideStore()
	svc := NewGuideService(store)

	id := seedGuide(store)

	for _, rating := range []int{0, 6, -3} {
		_, _, err := svc.RateGuide(context.Background(), id, rating)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument, "rating %d", rating)
	}
	assert.Empty(t, store.guides[id].Ratings)
}

func TestRateGuideUnknownGuideNotFound(t *testing.T) {
	store := newFakeGuideStore()
	svc := NewGuideService(store)

	_, _, err := svc.RateGuide(context.Background(), primitive.NewObjectID(), 4)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

// The accumulator deliberately has no per-caller dedup.
func TestRateGuideAllowsRepeatRatings(t *testing.T) {
	store := newFakeGuideStore()
	svc := NewGuideService(store)

	id := seedGuide(store)

	for i := 0; i < 3; i++ {
		_, _, err := svc.RateGuide(context.Background(), id, 5)
		require.NoError(t, err)
	}
	assert.Len(t, store.guides[id].Ratings, 3)
}
