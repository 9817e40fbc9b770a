package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vrent/config"
	"vrent/models"
)

type StatusCount struct {
	Status int   `json:"status"`
	Count  int64 `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

type DailyCount struct {
	Day           string  `json:"day"`
	Count         int64   `json:"count"`
	AverageRating float64 `json:"averageRating,omitempty"`
}

// analyticsDateRange parses startDate/endDate query params (dd/mm/yyyy),
// defaulting to the last month.
func analyticsDateRange(c *gin.Context) (time.Time, time.Time) {
	end := time.Now()
	start := end.AddDate(0, -1, 0)

	if v := c.Query("startDate"); v != "" {
		if parsed, err := ConvertDateToISOFormat(v); err == nil {
			start = parsed
		}
	}
	if v := c.Query("endDate"); v != "" {
		if parsed, err := ConvertDateToISOFormat(v); err == nil {
			end = parsed
		}
	}
	return start, end
}

// GetDashboardStats godoc
// @Summary Aggregate counts and recent activity for the admin dashboard
// @Tags admin
// @Produce json
// @Router /admin/stats [get]
func GetDashboardStats(c *gin.Context) {
	var totalUsers, totalVehicles, totalBookings, totalReviews int64

	if err := config.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count users", "error": err.Error()})
		return
	}
	if err := config.DB.Model(&models.Vehicle{}).Count(&totalVehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count vehicles", "error": err.Error()})
		return
	}
	if err := config.DB.Model(&models.Booking{}).Count(&totalBookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count bookings", "error": err.Error()})
		return
	}
	if err := config.DB.Model(&models.Review{}).Count(&totalReviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count reviews", "error": err.Error()})
		return
	}

	var recentBookings []models.Booking
	if err := config.DB.Preload("User").Preload("Vehicle").
		Order("created_at DESC").Limit(5).Find(&recentBookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch recent bookings", "error": err.Error()})
		return
	}

	var recentReviews []models.Review
	if err := config.DB.Preload("User").
		Order("created_at DESC").Limit(5).Find(&recentReviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch recent reviews", "error": err.Error()})
		return
	}

	bookingResponses := make([]BookingResponse, 0, len(recentBookings))
	for _, booking := range recentBookings {
		bookingResponses = append(bookingResponses, convertToBookingResponse(booking))
	}
	reviewResponses := make([]ReviewResponse, 0, len(recentReviews))
	for _, review := range recentReviews {
		reviewResponses = append(reviewResponses, convertToReviewResponse(review))
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Dashboard stats fetched successfully", "data": gin.H{
		"stats": gin.H{
			"totalUsers":    totalUsers,
			"totalVehicles": totalVehicles,
			"totalBookings": totalBookings,
			"totalReviews":  totalReviews,
		},
		"recentActivity": gin.H{
			"bookings": bookingResponses,
			"reviews":  reviewResponses,
		},
	}})
}

// GetVehicleAnalytics reports booking/review volume, the average rating and
// the vehicle type distribution over a date range.
func GetVehicleAnalytics(c *gin.Context) {
	start, end := analyticsDateRange(c)

	var bookingsCount, reviewsCount int64
	if err := config.DB.Model(&models.Booking{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&bookingsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count bookings", "error": err.Error()})
		return
	}
	if err := config.DB.Model(&models.Review{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&reviewsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to count reviews", "error": err.Error()})
		return
	}

	var averageRating float64
	if err := config.DB.Model(&models.Review{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&averageRating).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to compute average rating", "error": err.Error()})
		return
	}

	var typeDistribution []TypeCount
	if err := config.DB.Model(&models.Vehicle{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Order("count DESC").
		Scan(&typeDistribution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to compute type distribution", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Vehicle analytics fetched successfully", "data": gin.H{
		"metrics": gin.H{
			"bookingsCount": bookingsCount,
			"reviewsCount":  reviewsCount,
			"averageRating": averageRating,
		},
		"distributions": gin.H{
			"type": typeDistribution,
		},
	}})
}

// GetBookingStats reports booking counts by status plus a daily trend.
func GetBookingStats(c *gin.Context) {
	start, end := analyticsDateRange(c)

	var byStatus []StatusCount
	if err := config.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Where("start_date BETWEEN ? AND ?", start, end).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to compute booking stats", "error": err.Error()})
		return
	}

	var dailyTrends []DailyCount
	if err := config.DB.Model(&models.Booking{}).
		Select("to_char(start_date, 'YYYY-MM-DD') AS day, COUNT(*) AS count").
		Where("start_date BETWEEN ? AND ?", start, end).
		Group("day").
		Order("day").
		Scan(&dailyTrends).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to compute booking trends", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Booking stats fetched successfully", "data": gin.H{
		"byStatus":    byStatus,
		"dailyTrends": dailyTrends,
	}})
}

// GetReviewStats reports the rating distribution plus a daily trend with
// per-day average rating.
func GetReviewStats(c *gin.Context) {
	start, end := analyticsDateRange(c)

	var ratingDistribution []RatingCount
	if err := config.DB.Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("rating").
		Order("rating").
		Scan(&ratingDistribution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to compute rating distribution", "error": err.Error()})
		return
	}

	var dailyTrends []DailyCount
	if err := config.DB.Model(&models.Review{}).
		Select("to_char(created_at, 'YYYY-MM-DD') AS day, COUNT(*) AS count, AVG(rating) AS average_rating").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("day").
		Order("day").
		Scan(&dailyTrends).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to compute review trends", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Review stats fetched successfully", "data": gin.H{
		"ratingDistribution": ratingDistribution,
		"dailyTrends":        dailyTrends,
	}})
}
