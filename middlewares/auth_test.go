package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aku-12/ThrillQuest-Backend/models"
	"github.com/Aku-12/ThrillQuest-Backend/utils"
)

func setupRouter(lookup UserLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthenticateUser(lookup), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": CurrentUser(c).Email})
	})
	r.GET("/admin", AuthenticateUser(lookup), IsAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func lookupFor(user *models.User) UserLookup {
	return func(_ context.Context, id primitive.ObjectID) (*models.User, error) {
		if user != nil && user.ID == id {
			return user, nil
		}
		return nil, nil
	}
}

func TestAuthenticateUserLoadsCurrentUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	user := &models.User{
		ID:    primitive.NewObjectID(),
		FName: "John",
		LName: "Doe",
		Email: "john@example.com",
		Role:  models.RoleCustomer,
	}
	token, err := utils.GenerateJWT(user.ID, string(user.Role), user.Email, user.FName)
	require.NoError(t, err)

	r := setupRouter(lookupFor(user))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "john@example.com")
}

func TestAuthenticateUserMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	r := setupRouter(lookupFor(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateUserBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	r := setupRouter(lookupFor(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateUserDeletedAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	// Valid token, but no matching user document anymore.
	ghostId := primitive.NewObjectID()
	token, err := utils.GenerateJWT(ghostId, "customer", "ghost@example.com", "Ghost")
	require.NoError(t, err)

	r := setupRouter(lookupFor(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIsAdminRejectsCustomer(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "customer@example.com",
		Role:  models.RoleCustomer,
	}
	token, err := utils.GenerateJWT(user.ID, string(user.Role), user.Email, user.FName)
	require.NoError(t, err)

	r := setupRouter(lookupFor(user))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIsAdminAllowsAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}
	token, err := utils.GenerateJWT(user.ID, string(user.Role), user.Email, user.FName)
	require.NoError(t, err)

	r := setupRouter(lookupFor(user))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
