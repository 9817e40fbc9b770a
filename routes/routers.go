package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gorm.io/gorm"

	"vrent/controllers"
	middlewares "vrent/middleware"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary) {

	userController := controllers.NewUserController(db, redisCli)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/google", controllers.AuthGoogle)

	v1.GET("/users", middlewares.AuthMiddleware(2), userController.GetUsers)
	v1.GET("/users/:id", userController.GetUserByID)
	v1.PUT("/users", middlewares.AuthMiddleware(0, 1, 2), userController.UpdateUser)
	v1.PUT("/userStatus", middlewares.AuthMiddleware(2), userController.ChangeUserStatus)
	v1.GET("/profile", middlewares.AuthMiddleware(0, 1, 2), userController.GetProfile)
	v1.GET("/favorites", middlewares.AuthMiddleware(0, 1, 2), userController.GetFavorites)
	v1.PUT("/favorites/:vehicleId", middlewares.AuthMiddleware(0, 1, 2), userController.ToggleFavorite)
	v1.GET("/myReviews", middlewares.AuthMiddleware(0, 1, 2), userController.GetMyReviews)
	v1.GET("/myBookings", middlewares.AuthMiddleware(0, 1, 2), userController.GetMyBookings)
	v1.GET("/myVehicles", middlewares.AuthMiddleware(1, 2), userController.GetMyVehicles)

	v1.GET("/vehicles", controllers.GetAllVehicles)
	v1.GET("/vehicles/:id", controllers.GetVehicleDetail)
	v1.POST("/vehicles", middlewares.AuthMiddleware(1, 2), controllers.CreateVehicle)
	v1.PUT("/vehicleUpdate", middlewares.AuthMiddleware(1, 2), controllers.UpdateVehicle)
	v1.PUT("/vehicleStatus", middlewares.AuthMiddleware(1, 2), controllers.ChangeVehicleStatus)
	v1.DELETE("/vehicles/:id", middlewares.AuthMiddleware(1, 2), controllers.DeleteVehicle)

	v1.GET("/reviews", controllers.GetAllReviews)
	v1.POST("/reviews", middlewares.AuthMiddleware(0, 1, 2), controllers.CreateReview)
	v1.GET("/reviews/:id", controllers.GetReviewDetail)
	v1.PUT("/reviewsUpdate", middlewares.AuthMiddleware(0, 1, 2), controllers.UpdateReview)
	v1.DELETE("/reviews/:id", middlewares.AuthMiddleware(0, 1, 2), controllers.DeleteReview)
	v1.PUT("/reviews/:id/response", middlewares.AuthMiddleware(1, 2), controllers.SetOwnerResponse)

	v1.POST("/bookings", middlewares.AuthMiddleware(0, 1, 2), controllers.CreateBooking)
	v1.PUT("/bookingStatus", middlewares.AuthMiddleware(1, 2), controllers.ChangeBookingStatus)
	v1.GET("/bookings/:id", middlewares.AuthMiddleware(0, 1, 2), controllers.GetBookingDetail)
	v1.GET("/vehicleBookings/:vehicleId", middlewares.AuthMiddleware(1, 2), controllers.GetVehicleBookings)

	v1.GET("/recommendations", middlewares.AuthMiddleware(0, 1, 2), controllers.GetRecommendations)

	v1.GET("/admin/stats", middlewares.AuthMiddleware(2), controllers.GetDashboardStats)
	v1.GET("/admin/vehicleAnalytics", middlewares.AuthMiddleware(2), controllers.GetVehicleAnalytics)
	v1.GET("/admin/bookingStats", middlewares.AuthMiddleware(2), controllers.GetBookingStats)
	v1.GET("/admin/reviewStats", middlewares.AuthMiddleware(2), controllers.GetReviewStats)

	v1.POST("/img/multi-upload", func(c *gin.Context) {
		form, er := c.MultipartForm()
		if er != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
				return
			}
			defer src.Close()

			ctx := context.Background()
			resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "uploads"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload successful",
			"urls":    urls,
		})
	})

	v1.POST("/img/upload", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload successful",
			"url":     resp.SecureURL,
		})
	})

}
