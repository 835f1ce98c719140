package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aku-12/ThrillQuest-Backend/errs"
	"github.com/Aku-12/ThrillQuest-Backend/events"
	"github.com/Aku-12/ThrillQuest-Backend/middlewares"
	"github.com/Aku-12/ThrillQuest-Backend/services"
)

// ReviewHandler maps the review engine onto the HTTP surface. All invariant
// checking lives in the service.
type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input struct {
		ActivityID string `json:"activityId"`
		Rating     *int   `json:"rating"`
		Comment    string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ActivityID == "" || input.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "activityId and rating are required"})
		return
	}

	activityId, err := primitive.ObjectIDFromHex(input.ActivityID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity not found"})
		return
	}

	review, err := h.reviews.SubmitReview(c.Request.Context(), user, activityId, *input.Rating, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": errs.Message(err)})
		// A duplicate review answers 400, matching the original wire
		// contract the frontend was built against.
		case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errs.Message(err)})
		case errors.Is(err, errs.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errs.Message(err)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		}
		return
	}

	Events.Publish(events.SubjectReviewCreated, review)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Review submitted and rating updated.",
		"data":    review,
	})
}

func (h *ReviewHandler) GetActivityReviews(c *gin.Context) {
	activityId, err := primitive.ObjectIDFromHex(c.Param("activityId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid activity ID format"})
		return
	}

	reviews, err := h.reviews.ListForActivity(c.Request.Context(), activityId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
}

func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	reviews, err := h.reviews.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
}

func (h *ReviewHandler) UpdateReviewStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid review ID format"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status is required"})
		return
	}

	review, err := h.reviews.SetStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errs.Message(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review status updated",
		"data":    review,
	})
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid review ID format"})
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errs.Message(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}
