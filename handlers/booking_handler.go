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
	"github.com/Aku-12/ThrillQuest-Backend/events"
	"github.com/Aku-12/ThrillQuest-Backend/middlewares"
	"github.com/Aku-12/ThrillQuest-Backend/models"
	"github.com/Aku-12/ThrillQuest-Backend/utils"
)

// Events is the optional NATS publisher wired in by main. Nil when the
// service runs without a broker.
var Events *events.Publisher

func parseTourDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func CreateBooking(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input struct {
		ActivityID   string `json:"activityId"`
		CustomerName string `json:"customerName"`
		GuideName    string `json:"guideName"`
		TourDate     string `json:"tourDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Request body is missing"})
		return
	}

	if input.ActivityID == "" || input.CustomerName == "" || input.GuideName == "" || input.TourDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: activityId, customerName, guideName, or tourDate",
		})
		return
	}

	activityId, err := primitive.ObjectIDFromHex(input.ActivityID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid activity ID format"})
		return
	}

	tourDate, err := parseTourDate(input.TourDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid tour date format, use YYYY-MM-DD"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var activity models.Activity
	err = db.Collection("activities").FindOne(ctx, bson.M{"_id": activityId}).Decode(&activity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	now := time.Now().UTC()
	booking := models.Booking{
		Activity:      activityId,
		CustomerName:  input.CustomerName,
		GuideName:     input.GuideName,
		TourDate:      tourDate,
		PaymentStatus: models.PaymentPending,
		BookingStatus: models.BookingConfirmed,
		UserID:        user.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res, err := db.Collection("bookings").InsertOne(ctx, booking)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}

	// Keep the catalog's booking counter in step with the rows.
	_, err = db.Collection("activities").UpdateOne(ctx,
		bson.M{"_id": activityId},
		bson.M{"$inc": bson.M{"bookings": 1}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	Events.Publish(events.SubjectBookingCreated, booking)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// GetBookings lists bookings for the admin dashboard with search on customer
// or guide name, status filters, and pagination. Each row carries its
// activity document.
func GetBookings(c *gin.Context) {
	params := utils.PageParamsFromQuery(c)

	match := bson.M{
		"$or": []bson.M{
			{"customerName": bson.M{"$regex": c.Query("search"), "$options": "i"}},
			{"guideName": bson.M{"$regex": c.Query("search"), "$options": "i"}},
		},
	}
	if paymentStatus := c.Query("paymentStatus"); paymentStatus != "" {
		match["paymentStatus"] = paymentStatus
	}
	if bookingStatus := c.Query("bookingStatus"); bookingStatus != "" {
		match["bookingStatus"] = bookingStatus
	}

	collection := db.Collection("bookings")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := collection.CountDocuments(ctx, match)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: params.Skip()}},
		{{Key: "$limit", Value: int64(params.Limit)}},
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

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer cursor.Close(ctx)

	bookings := []models.BookingWithActivity{}
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
		"pagination": gin.H{
			"total": total,
			"page":  params.Page,
			"pages": params.Pages(total),
		},
	})
}

// GetMyBookings lists the requester's own bookings, newest first.
func GetMyBookings(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	collection := db.Collection("bookings")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userId", Value: user.ID}}}},
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

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer cursor.Close(ctx)

	bookings := []models.BookingWithActivity{}
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
}

func GetBookingById(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking ID format"})
		return
	}

	collection := db.Collection("bookings")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
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

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	defer cursor.Close(ctx)

	bookings := []models.BookingWithActivity{}
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if len(bookings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings[0]})
}

func UpdateBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking ID format"})
		return
	}

	var input struct {
		CustomerName  string `json:"customerName"`
		GuideName     string `json:"guideName"`
		TourDate      string `json:"tourDate"`
		PaymentStatus string `json:"paymentStatus"`
		BookingStatus string `json:"bookingStatus"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if input.CustomerName != "" {
		set["customerName"] = input.CustomerName
	}
	if input.GuideName != "" {
		set["guideName"] = input.GuideName
	}
	if input.TourDate != "" {
		tourDate, err := parseTourDate(input.TourDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid tour date format, use YYYY-MM-DD"})
			return
		}
		set["tourDate"] = tourDate
	}
	if input.PaymentStatus != "" {
		status := models.PaymentStatus(input.PaymentStatus)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment status must be Paid, Pending or Refunded"})
			return
		}
		set["paymentStatus"] = status
	}
	if input.BookingStatus != "" {
		status := models.BookingStatus(input.BookingStatus)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Booking status must be Confirmed, Completed or Canceled"})
			return
		}
		set["bookingStatus"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err = db.Collection("bookings").FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
		"booking": updated,
	})
}

func DeleteBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.Collection("bookings").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted successfully"})
}
