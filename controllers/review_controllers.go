package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"vrent/config"
	"vrent/models"
	"vrent/services"
)

type ReviewInput struct {
	VehicleID uint     `json:"vehicleId" binding:"required"`
	Rating    int      `json:"rating" binding:"required,min=1,max=5"`
	Comment   string   `json:"comment" binding:"required"`
	Photos    []string `json:"photos"`
}

type ReviewUpdateInput struct {
	ID      uint     `json:"id" binding:"required"`
	Rating  int      `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment string   `json:"comment"`
	Photos  []string `json:"photos"`
}

type OwnerResponseInput struct {
	Response string `json:"response" binding:"required"`
}

type ReviewResponse struct {
	ID              uint       `json:"id"`
	VehicleID       uint       `json:"vehicleId"`
	Rating          int        `json:"rating"`
	Comment         string     `json:"comment"`
	Photos          []string   `json:"photos"`
	OwnerResponse   string     `json:"ownerResponse,omitempty"`
	OwnerResponseAt *time.Time `json:"ownerResponseAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	User            UserInfo   `json:"user"`
}

type UserInfo struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func convertToReviewResponse(review models.Review) ReviewResponse {
	return ReviewResponse{
		ID:              review.ID,
		VehicleID:       review.VehicleID,
		Rating:          review.Rating,
		Comment:         review.Comment,
		Photos:          review.Photos,
		OwnerResponse:   review.OwnerResponse,
		OwnerResponseAt: review.OwnerResponseAt,
		CreatedAt:       review.CreatedAt,
		UpdatedAt:       review.UpdatedAt,
		User: UserInfo{
			ID:     review.User.ID,
			Name:   review.User.Name,
			Avatar: review.User.Avatar,
		},
	}
}

// GetAllReviews godoc
// @Summary List reviews, optionally for one vehicle
// @Tags reviews
// @Produce json
// @Router /reviews [get]
func GetAllReviews(c *gin.Context) {
	vehicleIdFilter := c.DefaultQuery("vehicleId", "")

	cacheKey := "reviews:all"
	if vehicleIdFilter != "" {
		cacheKey = fmt.Sprintf("reviews:vehicle:%s", vehicleIdFilter)
	}

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		var cached []ReviewResponse
		if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &cached); err == nil && len(cached) > 0 {
			c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Reviews fetched successfully from cache", "data": cached})
			return
		}
	}

	tx := config.DB.Preload("User").Order("created_at DESC")
	if vehicleIdFilter != "" {
		if parsedVehicleId, err := strconv.Atoi(vehicleIdFilter); err == nil {
			tx = tx.Where("vehicle_id = ?", parsedVehicleId)
		}
	}

	var reviews []models.Review
	if err := tx.Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch reviews", "error": err.Error()})
		return
	}

	reviewResponses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, convertToReviewResponse(review))
	}

	if redisErr == nil {
		if data, err := json.Marshal(reviewResponses); err == nil {
			if err := services.SetToRedis(config.Ctx, rdb, cacheKey, data, time.Hour); err != nil {
				log.Printf("Failed to cache review list: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Reviews fetched successfully", "data": reviewResponses})
}

// CreateReview stores a new review and recomputes the vehicle's displayed
// rating. A user gets one review per vehicle.
func CreateReview(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, input.VehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vehicle not found"})
		return
	}

	var existing models.Review
	if err := config.DB.Where("user_id = ? AND vehicle_id = ?", currentUserID, input.VehicleID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "You have already reviewed this vehicle"})
		return
	}

	review := models.Review{
		VehicleID: input.VehicleID,
		UserID:    currentUserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Photos:    input.Photos,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to create review", "error": err.Error()})
		return
	}

	if err := services.UpdateVehicleRating(review.VehicleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update vehicle rating", "error": err.Error()})
		return
	}

	invalidateReviewCache(review.VehicleID)

	config.DB.Preload("User").First(&review, review.ID)

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Review created successfully", "data": convertToReviewResponse(review)})
}

func GetReviewDetail(c *gin.Context) {
	id := c.Param("id")

	var review models.Review
	if err := config.DB.Preload("User").First(&review, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Review fetched successfully", "data": convertToReviewResponse(review)})
}

// UpdateReview lets the author change rating, comment or photos, then
// recomputes the vehicle's rating.
func UpdateReview(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var input ReviewUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var review models.Review
	if err := config.DB.First(&review, input.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Review not found"})
		return
	}

	if review.UserID != currentUserID {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "You can only edit your own review"})
		return
	}

	if input.Rating != 0 {
		review.Rating = input.Rating
	}
	if input.Comment != "" {
		review.Comment = input.Comment
	}
	if input.Photos != nil {
		removed := diffPhotos(review.Photos, input.Photos)
		deleteCloudinaryPhotos(removed)
		review.Photos = input.Photos
	}

	if err := config.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update review", "error": err.Error()})
		return
	}

	if err := services.UpdateVehicleRating(review.VehicleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update vehicle rating", "error": err.Error()})
		return
	}

	invalidateReviewCache(review.VehicleID)

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Review updated successfully", "data": convertToReviewResponse(review)})
}

// DeleteReview removes the author's review, cleans up its photos and
// recomputes the vehicle's rating.
func DeleteReview(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var review models.Review
	if err := config.DB.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Review not found"})
		return
	}

	if review.UserID != currentUserID {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "You can only delete your own review"})
		return
	}

	deleteCloudinaryPhotos(review.Photos)

	vehicleID := review.VehicleID
	if err := config.DB.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to delete review", "error": err.Error()})
		return
	}

	if err := services.UpdateVehicleRating(vehicleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update vehicle rating", "error": err.Error()})
		return
	}

	invalidateReviewCache(vehicleID)

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Review deleted successfully"})
}

// SetOwnerResponse lets the vehicle owner attach or update a single public
// response on a review.
func SetOwnerResponse(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var input OwnerResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var review models.Review
	if err := config.DB.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Review not found"})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, review.VehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vehicle not found"})
		return
	}

	if vehicle.OwnerID != currentUserID {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "Only the vehicle owner can respond to reviews"})
		return
	}

	now := time.Now()
	review.OwnerResponse = input.Response
	review.OwnerResponseAt = &now

	if err := config.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to save response", "error": err.Error()})
		return
	}

	invalidateReviewCache(review.VehicleID)

	config.DB.Preload("User").First(&review, review.ID)

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Response saved successfully", "data": convertToReviewResponse(review)})
}

func invalidateReviewCache(vehicleID uint) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, rdb, "reviews:all")
	_ = services.DeleteFromRedis(config.Ctx, rdb, fmt.Sprintf("reviews:vehicle:%d", vehicleID))
	_ = services.DeleteFromRedis(config.Ctx, rdb, "vehicles:all")
}

func diffPhotos(old, updated []string) []string {
	keep := make(map[string]bool, len(updated))
	for _, url := range updated {
		keep[url] = true
	}
	var removed []string
	for _, url := range old {
		if !keep[url] {
			removed = append(removed, url)
		}
	}
	return removed
}

// deleteCloudinaryPhotos is best-effort: a dangling image never blocks the
// review mutation that dropped it.
func deleteCloudinaryPhotos(urls []string) {
	if config.Cloudinary == nil {
		return
	}
	for _, url := range urls {
		publicID := cloudinaryPublicID(url)
		if publicID == "" {
			continue
		}
		if _, err := config.Cloudinary.Upload.Destroy(config.Ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
			log.Printf("Failed to delete photo %s: %v", publicID, err)
		}
	}
}

// cloudinaryPublicID extracts "folder/name" from a secure delivery URL.
func cloudinaryPublicID(url string) string {
	parts := strings.Split(url, "/upload/")
	if len(parts) != 2 {
		return ""
	}
	path := parts[1]
	// Strip the version segment (v123456789/).
	if strings.HasPrefix(path, "v") {
		if idx := strings.Index(path, "/"); idx > 0 {
			path = path[idx+1:]
		}
	}
	if idx := strings.LastIndex(path, "."); idx > 0 {
		path = path[:idx]
	}
	return path
}
