package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vrent/models"
)

type UserController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewUserController(db *gorm.DB, redisCli *redis.Client) UserController {
	return UserController{
		DB:    db,
		Redis: redisCli,
	}
}

type UpdateUserInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type StatusUserInput struct {
	Id     uint `json:"id" binding:"required"`
	Status int  `json:"status"`
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

// GetUsers godoc
// @Summary List users with search and pagination
// @Tags users
// @Produce json
// @Router /users [get]
func (u UserController) GetUsers(c *gin.Context) {
	page, limit := pagination(c)
	search := c.DefaultQuery("search", "")

	tx := u.DB.Model(&models.User{})
	if search != "" {
		tx = tx.Where("name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count users", "error": err.Error()})
		return
	}

	var users []models.User
	if err := tx.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch users", "error": err.Error()})
		return
	}

	userResponses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, convertToUserResponse(user))
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Users fetched successfully", "data": gin.H{
		"users": userResponses,
		"page":  page,
		"pages": int(math.Ceil(float64(total) / float64(limit))),
		"total": total,
	}})
}

func (u UserController) GetUserByID(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := u.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "User fetched successfully", "data": convertToUserResponse(user)})
}

func (u UserController) GetProfile(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var user models.User
	if err := u.DB.Preload("Favorites").First(&user, currentUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Profile fetched successfully", "data": gin.H{
		"user":      convertToUserResponse(user),
		"favorites": user.Favorites,
	}})
}

func (u UserController) UpdateUser(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var user models.User
	if err := u.DB.First(&user, currentUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "User not found"})
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}

	if err := u.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update user", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "User updated successfully", "data": convertToUserResponse(user)})
}

func (u UserController) ChangeUserStatus(c *gin.Context) {
	var input StatusUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var user models.User
	if err := u.DB.First(&user, input.Id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "User not found"})
		return
	}

	user.Status = input.Status
	if err := u.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update status", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Status updated successfully", "data": convertToUserResponse(user)})
}

// GetFavorites returns the caller's favorited vehicles.
func (u UserController) GetFavorites(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var user models.User
	if err := u.DB.Preload("Favorites").First(&user, currentUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Favorites fetched successfully", "data": user.Favorites})
}

// ToggleFavorite adds the vehicle to the caller's favorites, or removes it if
// already present.
func (u UserController) ToggleFavorite(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid vehicle id"})
		return
	}

	var user models.User
	if err := u.DB.Preload("Favorites").First(&user, currentUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "User not found"})
		return
	}

	var vehicle models.Vehicle
	if err := u.DB.First(&vehicle, vehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vehicle not found"})
		return
	}

	isFavorited := false
	for _, fav := range user.Favorites {
		if fav.ID == vehicle.ID {
			isFavorited = true
			break
		}
	}

	assoc := u.DB.Model(&user).Association("Favorites")
	if isFavorited {
		err = assoc.Delete(&vehicle)
	} else {
		err = assoc.Append(&vehicle)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update favorites", "error": err.Error()})
		return
	}

	mess := "Vehicle added to favorites"
	if isFavorited {
		mess = "Vehicle removed from favorites"
	}
	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": mess, "data": gin.H{"isFavorited": !isFavorited}})
}

// GetMyReviews returns the caller's reviews with the reviewed vehicle populated.
func (u UserController) GetMyReviews(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	page, limit := pagination(c)

	var total int64
	if err := u.DB.Model(&models.Review{}).Where("user_id = ?", currentUserID).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count reviews", "error": err.Error()})
		return
	}

	var reviews []models.Review
	if err := u.DB.Where("user_id = ?", currentUserID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch reviews", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Reviews fetched successfully", "data": gin.H{
		"reviews": reviews,
		"page":    page,
		"pages":   int(math.Ceil(float64(total) / float64(limit))),
		"total":   total,
	}})
}

// GetMyBookings returns the caller's bookings, optionally filtered by status.
func (u UserController) GetMyBookings(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	page, limit := pagination(c)

	tx := u.DB.Model(&models.Booking{}).Where("user_id = ?", currentUserID)
	if status := c.Query("status"); status != "" {
		if parsed, err := strconv.Atoi(status); err == nil {
			tx = tx.Where("status = ?", parsed)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count bookings", "error": err.Error()})
		return
	}

	var bookings []models.Booking
	if err := tx.Preload("Vehicle").
		Order("start_date DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch bookings", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Bookings fetched successfully", "data": gin.H{
		"bookings": bookings,
		"page":     page,
		"pages":    int(math.Ceil(float64(total) / float64(limit))),
		"total":    total,
	}})
}

// GetMyVehicles returns the vehicles the caller owns.
func (u UserController) GetMyVehicles(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	page, limit := pagination(c)

	var total int64
	if err := u.DB.Model(&models.Vehicle{}).Where("owner_id = ?", currentUserID).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count vehicles", "error": err.Error()})
		return
	}

	var vehicles []models.Vehicle
	if err := u.DB.Where("owner_id = ?", currentUserID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch vehicles", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Vehicles fetched successfully", "data": gin.H{
		"vehicles": vehicles,
		"page":     page,
		"pages":    int(math.Ceil(float64(total) / float64(limit))),
		"total":    total,
	}})
}
