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
	"github.com/Aku-12/ThrillQuest-Backend/errs"
	"github.com/Aku-12/ThrillQuest-Backend/models"
	"github.com/Aku-12/ThrillQuest-Backend/services"
	"github.com/Aku-12/ThrillQuest-Backend/utils"
)

// GuideHandler carries the rating accumulator; the plain CRUD below talks to
// the collection directly.
type GuideHandler struct {
	guides *services.GuideService
}

func NewGuideHandler(guides *services.GuideService) *GuideHandler {
	return &GuideHandler{guides: guides}
}

type guideInput struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Specialties   []string `json:"specialties"`
	Experience    int      `json:"experience"`
	AssignedTours int      `json:"assignedTours"`
	Status        string   `json:"status"`
}

// guideView mirrors the stored guide plus the derived average, which is
// computed on the way out rather than persisted.
type guideView struct {
	models.Guide
	AverageRating float64 `json:"averageRating"`
}

func viewOf(g models.Guide) guideView {
	if g.Specialties == nil {
		g.Specialties = []string{}
	}
	if g.Ratings == nil {
		g.Ratings = []int{}
	}
	return guideView{Guide: g, AverageRating: g.AverageRating()}
}

func CreateGuide(c *gin.Context) {
	var input guideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Request body is missing or invalid"})
		return
	}

	if input.Name == "" || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name and email are required"})
		return
	}

	status := models.GuideStatus(input.Status)
	if status == "" {
		status = models.GuideAvailable
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be Available, On Break or Unavailable"})
		return
	}

	now := time.Now().UTC()
	guide := models.Guide{
		Name:          input.Name,
		Email:         input.Email,
		Specialties:   input.Specialties,
		Experience:    input.Experience,
		AssignedTours: input.AssignedTours,
		Ratings:       []int{},
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if guide.Specialties == nil {
		guide.Specialties = []string{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.Collection("guides").InsertOne(ctx, guide)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		guide.ID = oid
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Guide created successfully",
		"guide":   viewOf(guide),
	})
}

// GetGuides lists guides with search across name, email and specialties,
// a status filter, and pagination.
func GetGuides(c *gin.Context) {
	params := utils.PageParamsFromQuery(c)

	query := bson.M{
		"$or": []bson.M{
			{"name": bson.M{"$regex": c.Query("search"), "$options": "i"}},
			{"email": bson.M{"$regex": c.Query("search"), "$options": "i"}},
			{"specialties": bson.M{"$regex": c.Query("search"), "$options": "i"}},
		},
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	collection := db.Collection("guides")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(params.Skip()).
		SetLimit(int64(params.Limit))

	cursor, err := collection.Find(ctx, query, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer cursor.Close(ctx)

	guides := []models.Guide{}
	if err := cursor.All(ctx, &guides); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	views := make([]guideView, 0, len(guides))
	for _, g := range guides {
		views = append(views, viewOf(g))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
		"pagination": gin.H{
			"total": total,
			"page":  params.Page,
			"pages": params.Pages(total),
		},
	})
}

func GetGuideById(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid guide ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var guide models.Guide
	err = db.Collection("guides").FindOne(ctx, bson.M{"_id": id}).Decode(&guide)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Guide not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": viewOf(guide)})
}

// UpdateGuide overwrites roster fields. Ratings are deliberately absent:
// the list belongs to the rating accumulator.
func UpdateGuide(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid guide ID format"})
		return
	}

	var input guideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.Specialties != nil {
		set["specialties"] = input.Specialties
	}
	if input.Experience > 0 {
		set["experience"] = input.Experience
	}
	if input.AssignedTours > 0 {
		set["assignedTours"] = input.AssignedTours
	}
	if input.Status != "" {
		status := models.GuideStatus(input.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be Available, On Break or Unavailable"})
			return
		}
		set["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Guide
	err = db.Collection("guides").FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Guide not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Guide updated successfully",
		"guide":   viewOf(updated),
	})
}

func DeleteGuide(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid guide ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.Collection("guides").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Guide not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Guide deleted successfully"})
}

// RateGuide appends a rating through the accumulator and returns the
// updated average.
func (h *GuideHandler) RateGuide(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Guide not found"})
		return
	}

	var input struct {
		Rating *int `json:"rating"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Rating must be a number between 1 and 5"})
		return
	}

	guide, average, err := h.guides.RateGuide(c.Request.Context(), id, *input.Rating)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errs.Message(err)})
		case errors.Is(err, errs.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errs.Message(err)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Rating submitted successfully",
		"averageRating": average,
		"guide":         viewOf(*guide),
	})
}
