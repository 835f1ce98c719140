package middlewares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aku-12/ThrillQuest-Backend/models"
	"github.com/Aku-12/ThrillQuest-Backend/utils"
)

const userContextKey = "currentUser"

// UserLookup resolves a user id to its current document. Returns (nil, nil)
// when no such user exists.
type UserLookup func(ctx context.Context, id primitive.ObjectID) (*models.User, error)

// AuthenticateUser verifies the bearer token and reloads the user document
// so handlers always see the current profile, not the one frozen into the
// token at login.
func AuthenticateUser(lookup UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.VerifyBearer(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access Denied"})
			return
		}

		userIdHex, ok := claims["userId"].(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access Denied"})
			return
		}

		userId, err := primitive.ObjectIDFromHex(userIdHex)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access Denied"})
			return
		}

		user, err := lookup(c.Request.Context(), userId)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token mismatch"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// IsAdmin gates a route to admin accounts. Must run after AuthenticateUser.
func IsAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin privilege required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthenticateUser, nil
// when the middleware has not run.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
