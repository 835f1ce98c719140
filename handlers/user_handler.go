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
	"golang.org/x/crypto/bcrypt"

	"github.com/Aku-12/ThrillQuest-Backend/db"
	"github.com/Aku-12/ThrillQuest-Backend/middlewares"
	"github.com/Aku-12/ThrillQuest-Backend/models"
	"github.com/Aku-12/ThrillQuest-Backend/utils"
)

// LookupUserByID backs the auth middleware: resolves the token's user id to
// the current user document.
func LookupUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func Register(c *gin.Context) {
	var input struct {
		FName        string `json:"fName"`
		LName        string `json:"lName"`
		Email        string `json:"email"`
		PhoneNo      string `json:"phoneNo"`
		Role         string `json:"role"`
		Password     string `json:"password"`
		ProfileImage string `json:"profileImage"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if input.FName == "" || input.LName == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "fName, lName, email and password are required"})
		return
	}

	role := models.Role(input.Role)
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Role must be customer or admin"})
		return
	}

	collection := db.Collection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.User
	err := collection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Account already exists with this email! Try logging in.."})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	user := models.User{
		FName:        input.FName,
		LName:        input.LName,
		Email:        input.Email,
		PhoneNo:      input.PhoneNo,
		Role:         role,
		Password:     string(hashedPassword),
		ProfileImage: input.ProfileImage,
	}

	res, err := collection.InsertOne(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
		return
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account successfully created!",
		"data":    user.Sanitized(),
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	collection := db.Collection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account does not exist. Please create one!"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role), user.Email, user.FName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully logged in..",
		"data":    user.Sanitized(),
		"token":   token,
	})
}

func GetUserProfile(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User profile fetched successfully",
		"data":    user.Sanitized(),
	})
}

func UpdateUserProfile(c *gin.Context) {
	userId, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID format"})
		return
	}

	var input struct {
		FName        string `json:"fName"`
		LName        string `json:"lName"`
		Email        string `json:"email"`
		PhoneNo      string `json:"phoneNo"`
		ProfileImage string `json:"profileImage"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	set := bson.M{}
	if input.FName != "" {
		set["fName"] = input.FName
	}
	if input.LName != "" {
		set["lName"] = input.LName
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.PhoneNo != "" {
		set["phoneNo"] = input.PhoneNo
	}
	if input.ProfileImage != "" {
		imagePath := input.ProfileImage
		if utils.IsDataURLImage(imagePath) {
			imagePath, err = utils.SaveBase64Image(imagePath)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save image"})
				return
			}
		}
		set["profileImage"] = imagePath
	}

	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nothing to update"})
		return
	}

	collection := db.Collection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": userId}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully!",
		"data":    updated.Sanitized(),
	})
}

func ChangePassword(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Both current and new passwords are required."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Current password is incorrect"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	collection := db.Collection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"password": string(hashedPassword)}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

func GetMyFavorites(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activities := []models.Activity{}
	if len(user.Favorites) > 0 {
		cursor, err := db.Collection("activities").Find(ctx, bson.M{"_id": bson.M{"$in": user.Favorites}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		defer cursor.Close(ctx)

		if err := cursor.All(ctx, &activities); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": activities})
}

func AddFavorite(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input struct {
		ActivityID string `json:"activityId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ActivityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "activityId is required"})
		return
	}

	activityId, err := primitive.ObjectIDFromHex(input.ActivityID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid activity ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := db.Collection("activities").CountDocuments(ctx, bson.M{"_id": activityId})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity not found"})
		return
	}

	// $addToSet keeps the favorites list a set.
	_, err = db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$addToSet": bson.M{"favorites": activityId}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Activity added to favorites"})
}

func RemoveFavorite(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	activityId, err := primitive.ObjectIDFromHex(c.Param("activityId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid activity ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$pull": bson.M{"favorites": activityId}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Activity removed from favorites"})
}
