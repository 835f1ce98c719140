package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aku-12/ThrillQuest-Backend/db"
	"github.com/Aku-12/ThrillQuest-Backend/models"
	"github.com/Aku-12/ThrillQuest-Backend/utils"
)

// GetCustomers lists customer accounts for the admin dashboard, newest
// first, paginated.
func GetCustomers(c *gin.Context) {
	params := utils.PageParamsFromQuery(c)

	collection := db.Collection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"role": models.RoleCustomer}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error: Unable to fetch customers"})
		return
	}

	findOpts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(params.Skip()).
		SetLimit(int64(params.Limit))

	cursor, err := collection.Find(ctx, filter, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error: Unable to fetch customers"})
		return
	}
	defer cursor.Close(ctx)

	customers := []models.User{}
	if err := cursor.All(ctx, &customers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error: Unable to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"page":           params.Page,
		"totalPages":     params.Pages(total),
		"totalCustomers": total,
		"customers":      customers,
	})
}
