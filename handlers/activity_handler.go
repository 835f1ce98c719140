package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aku-12/ThrillQuest-Backend/db"
	"github.com/Aku-12/ThrillQuest-Backend/models"
	"github.com/Aku-12/ThrillQuest-Backend/utils"
)

type activityInput struct {
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Images     []string `json:"images"`
	Price      float64  `json:"price"`
	Duration   string   `json:"duration"`
	Difficulty string   `json:"difficulty"`
	Status     string   `json:"status"`
}

// storeImages persists any inline base64 entries and returns public paths.
func storeImages(images []string) ([]string, error) {
	stored := make([]string, 0, len(images))
	for _, img := range images {
		if utils.IsDataURLImage(img) {
			path, err := utils.SaveBase64Image(img)
			if err != nil {
				return nil, err
			}
			stored = append(stored, path)
			continue
		}
		stored = append(stored, img)
	}
	return stored, nil
}

func CreateActivity(c *gin.Context) {
	var input activityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if input.Name == "" || input.Location == "" || input.Duration == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name, location and duration are required"})
		return
	}

	difficulty := models.ActivityDifficulty(input.Difficulty)
	if difficulty == "" {
		difficulty = models.DifficultyBeginner
	}
	if !difficulty.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Difficulty must be Beginner, Intermediate or Advanced"})
		return
	}

	status := models.ActivityStatus(input.Status)
	if status == "" {
		status = models.ActivityActive
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be Active or On Hold"})
		return
	}

	images, err := storeImages(input.Images)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save activity image"})
		return
	}

	activity := models.Activity{
		Name:       input.Name,
		Location:   input.Location,
		Images:     images,
		Price:      input.Price,
		Duration:   input.Duration,
		Difficulty: difficulty,
		Status:     status,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.Collection("activities").InsertOne(ctx, activity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		activity.ID = oid
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Activity added successfully",
		"activity": activity,
	})
}

// GetAllActivities is the admin dump of the catalog, no filters.
func GetAllActivities(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.Collection("activities").Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "activities": activities})
}

// ListActivities is the public catalog listing with search, difficulty and
// status filters, paginated.
func ListActivities(c *gin.Context) {
	params := utils.PageParamsFromQuery(c)

	query := bson.M{
		"$or": []bson.M{
			{"name": bson.M{"$regex": c.Query("search"), "$options": "i"}},
			{"location": bson.M{"$regex": c.Query("search"), "$options": "i"}},
		},
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query["difficulty"] = difficulty
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	collection := db.Collection("activities")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(params.Skip()).
		SetLimit(int64(params.Limit))

	cursor, err := collection.Find(ctx, query, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    activities,
		"pagination": gin.H{
			"total": total,
			"page":  params.Page,
			"pages": params.Pages(total),
		},
	})
}

func GetActivityById(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid activity ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var activity models.Activity
	err = db.Collection("activities").FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": activity})
}

// UpdateActivity overwrites catalog fields. Rating is deliberately absent:
// it belongs to the review engine.
func UpdateActivity(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid activity ID format"})
		return
	}

	var input activityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	set := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Location != "" {
		set["location"] = input.Location
	}
	if input.Duration != "" {
		set["duration"] = input.Duration
	}
	if input.Price > 0 {
		set["price"] = input.Price
	}
	if input.Difficulty != "" {
		difficulty := models.ActivityDifficulty(input.Difficulty)
		if !difficulty.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Difficulty must be Beginner, Intermediate or Advanced"})
			return
		}
		set["difficulty"] = difficulty
	}
	if input.Status != "" {
		status := models.ActivityStatus(input.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be Active or On Hold"})
			return
		}
		set["status"] = status
	}
	if len(input.Images) > 0 {
		images, err := storeImages(input.Images)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save activity image"})
			return
		}
		set["images"] = images
	}

	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nothing to update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Activity
	err = db.Collection("activities").FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Activity updated successfully",
		"activity": updated,
	})
}

func DeleteActivity(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid activity ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.Collection("activities").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity not found"})
		return
	}

	// Reviews and bookings keep their activity reference; no cascade.
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Activity deleted successfully"})
}
