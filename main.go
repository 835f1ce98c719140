package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/Aku-12/ThrillQuest-Backend/db"
	"github.com/Aku-12/ThrillQuest-Backend/events"
	"github.com/Aku-12/ThrillQuest-Backend/handlers"
	"github.com/Aku-12/ThrillQuest-Backend/middlewares"
	"github.com/Aku-12/ThrillQuest-Backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or failed to load it:", err)
	}

	mongoClient, err := db.ConnectMongoDB(os.Getenv("MONGODB_URI"))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Failed to disconnect MongoDB client: %v", err)
		}
	}()
	log.Println("Mongodb connected!")

	// NATS is optional: retry a few times, then run without events.
	var natsConn *nats.Conn
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		for i := 0; i < 10; i++ {
			natsConn, err = nats.Connect(natsURL)
			if err == nil {
				break
			}
			log.Printf("Waiting for NATS to be ready... (%v)", err)
			time.Sleep(2 * time.Second)
		}
		if natsConn == nil {
			log.Println("Running without NATS; domain events disabled")
		} else {
			defer natsConn.Close()
		}
	}
	handlers.Events = events.NewPublisher(natsConn)

	reviewHandler := handlers.NewReviewHandler(
		services.NewReviewService(db.NewMongoReviewStore(mongoClient)),
	)
	guideHandler := handlers.NewGuideHandler(
		services.NewGuideService(db.NewMongoGuideStore(mongoClient)),
	)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.Static("/uploads", "./static/uploads")

	authed := middlewares.AuthenticateUser(handlers.LookupUserByID)
	admin := middlewares.IsAdmin()

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", handlers.Register)
	auth.POST("/login", handlers.Login)

	profile := api.Group("/profile")
	profile.GET("/fetch", authed, handlers.GetUserProfile)
	profile.PUT("/update/:userId", authed, handlers.UpdateUserProfile)
	profile.PUT("/change-password", authed, handlers.ChangePassword)
	profile.GET("/get-favorites", authed, handlers.GetMyFavorites)
	profile.POST("/add-favorite", authed, handlers.AddFavorite)
	profile.DELETE("/remove-favorite/:activityId", authed, handlers.RemoveFavorite)

	api.GET("/activities", handlers.ListActivities)
	api.GET("/activities/:id", handlers.GetActivityById)

	adminGroup := api.Group("/admin")
	adminGroup.GET("/getCustomers", authed, admin, handlers.GetCustomers)

	adminActivities := adminGroup.Group("/activities")
	adminActivities.POST("", authed, admin, handlers.CreateActivity)
	adminActivities.GET("", authed, admin, handlers.GetAllActivities)
	adminActivities.PUT("/:id", authed, admin, handlers.UpdateActivity)
	adminActivities.DELETE("/:id", authed, admin, handlers.DeleteActivity)

	bookings := adminGroup.Group("/bookings")
	bookings.POST("/create", authed, handlers.CreateBooking)
	bookings.GET("", authed, admin, handlers.GetBookings)
	bookings.GET("/my-bookings", authed, handlers.GetMyBookings)
	bookings.GET("/:id", authed, admin, handlers.GetBookingById)
	bookings.PUT("/:id", authed, admin, handlers.UpdateBooking)
	bookings.DELETE("/:id", authed, admin, handlers.DeleteBooking)

	guides := adminGroup.Group("/guides")
	guides.POST("", authed, admin, handlers.CreateGuide)
	guides.GET("", handlers.GetGuides)
	guides.GET("/:id", authed, handlers.GetGuideById)
	guides.PUT("/:id", authed, admin, handlers.UpdateGuide)
	guides.DELETE("/:id", authed, admin, handlers.DeleteGuide)
	guides.POST("/:id/rate", authed, guideHandler.RateGuide)

	reviews := api.Group("/reviews")
	reviews.POST("/create", authed, reviewHandler.CreateReview)
	reviews.GET("/:activityId", reviewHandler.GetActivityReviews)
	reviews.GET("", authed, admin, reviewHandler.GetAllReviews)
	reviews.PATCH("/:id", authed, admin, reviewHandler.UpdateReviewStatus)
	reviews.DELETE("/:id", authed, admin, reviewHandler.DeleteReview)

	contact := api.Group("/contact")
	contact.POST("/create", authed, handlers.SubmitContact)
	contact.GET("/get", authed, admin, handlers.GetAllContacts)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	log.Printf("Server running on http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
