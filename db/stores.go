package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aku-12/ThrillQuest-Backend/models"
)

// MongoReviewStore backs the review engine with the activities, bookings and
// reviews collections.
type MongoReviewStore struct {
	client *mongo.Client
}

func NewMongoReviewStore(client *mongo.Client) *MongoReviewStore {
	return &MongoReviewStore{client: client}
}

func (s *MongoReviewStore) collection(name string) *mongo.Collection {
	return s.client.Database(DatabaseName).Collection(name)
}

func (s *MongoReviewStore) GetActivity(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	var activity models.Activity
	err := s.collection("activities").FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (s *MongoReviewStore) FindBookingByActivityAndCustomer(ctx context.Context, activityID primitive.ObjectID, customerName string) (*models.Booking, error) {
	var booking models.Booking
	filter := bson.M{"activity": activityID, "customerName": customerName}
	err := s.collection("bookings").FindOne(ctx, filter).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *MongoReviewStore) FindReviewByActivityAndUser(ctx context.Context, activityID, userID primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	filter := bson.M{"activity": activityID, "userId": userID}
	err := s.collection("reviews").FindOne(ctx, filter).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *MongoReviewStore) InsertReview(ctx context.Context, review *models.Review) error {
	res, err := s.collection("reviews").InsertOne(ctx, review)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (s *MongoReviewStore) ListReviewsByActivity(ctx context.Context, activityID primitive.ObjectID) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection("reviews").Find(ctx, bson.M{"activity": activityID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *MongoReviewStore) ListAllReviews(ctx context.Context) ([]models.ReviewWithActivity, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "activities"},
			{Key: "localField", Value: "activity"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "activityDoc"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$activityDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := s.collection("reviews").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.ReviewWithActivity{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *MongoReviewStore) UpdateReviewStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Review, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var review models.Review
	err := s.collection("reviews").FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *MongoReviewStore) DeleteReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.collection("reviews").FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// RecomputeActivityRating recalculates the mean rating from the review rows
// in a single aggregation, then writes it to the activity. Keeping the read
// and the write in one store call is what makes the engine the derived
// field's only writer.
func (s *MongoReviewStore) RecomputeActivityRating(ctx context.Context, activityID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "activity", Value: activityID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}

	cursor, err := s.collection("reviews").Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	avg := 0.0
	if cursor.Next(ctx) {
		var result struct {
			Avg float64 `bson:"avg"`
		}
		if err := cursor.Decode(&result); err != nil {
			return 0, err
		}
		avg = result.Avg
	}
	if err := cursor.Err(); err != nil {
		return 0, err
	}

	_, err = s.collection("activities").UpdateOne(ctx,
		bson.M{"_id": activityID},
		bson.M{"$set": bson.M{"rating": avg}},
	)
	if err != nil {
		return 0, err
	}
	return avg, nil
}

// MongoGuideStore backs the guide rating accumulator.
type MongoGuideStore struct {
	client *mongo.Client
}

func NewMongoGuideStore(client *mongo.Client) *MongoGuideStore {
	return &MongoGuideStore{client: client}
}

func (s *MongoGuideStore) collection() *mongo.Collection {
	return s.client.Database(DatabaseName).Collection("guides")
}

func (s *MongoGuideStore) GetGuide(ctx context.Context, id primitive.ObjectID) (*models.Guide, error) {
	var guide models.Guide
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&guide)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &guide, nil
}

func (s *MongoGuideStore) PushRating(ctx context.Context, id primitive.ObjectID, rating int) (*models.Guide, error) {
	update := bson.M{
		"$push": bson.M{"ratings": rating},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var guide models.Guide
	err := s.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&guide)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &guide, nil
}
