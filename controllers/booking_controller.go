package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vrent/config"
	"vrent/models"
)

type CreateBookingRequest struct {
	VehicleID uint   `json:"vehicleId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Note      string `json:"note"`
}

type BookingStatusInput struct {
	ID     uint `json:"id" binding:"required"`
	Status int  `json:"status"`
}

type BookingVehicleInfo struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	City        string  `json:"city"`
	PricePerDay float64 `json:"pricePerDay"`
}

type BookingResponse struct {
	ID        uint               `json:"id"`
	User      UserInfo           `json:"user"`
	Vehicle   BookingVehicleInfo `json:"vehicle"`
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
	Status    int                `json:"status"`
	Note      string             `json:"note"`
	CreatedAt time.Time          `json:"createdAt"`
}

func convertToBookingResponse(booking models.Booking) BookingResponse {
	return BookingResponse{
		ID: booking.ID,
		User: UserInfo{
			ID:     booking.User.ID,
			Name:   booking.User.Name,
			Avatar: booking.User.Avatar,
		},
		Vehicle: BookingVehicleInfo{
			ID:          booking.Vehicle.ID,
			Name:        booking.Vehicle.Name,
			Type:        booking.Vehicle.Type,
			City:        booking.Vehicle.City,
			PricePerDay: booking.Vehicle.PricePerDay,
		},
		StartDate: booking.StartDate.Format("02/01/2006"),
		EndDate:   booking.EndDate.Format("02/01/2006"),
		Status:    booking.Status,
		Note:      booking.Note,
		CreatedAt: booking.CreatedAt,
	}
}

// ConvertDateToISOFormat parses a dd/mm/yyyy date string.
func ConvertDateToISOFormat(dateStr string) (time.Time, error) {
	parsedDate, err := time.Parse("02/01/2006", dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return parsedDate, nil
}

// CreateBooking godoc
// @Summary Book a vehicle for a date range
// @Tags bookings
// @Accept json
// @Produce json
// @Router /bookings [post]
func CreateBooking(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var input CreateBookingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, input.VehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vehicle not found"})
		return
	}

	startDate, err := ConvertDateToISOFormat(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid start date, expected dd/mm/yyyy"})
		return
	}
	endDate, err := ConvertDateToISOFormat(input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid end date, expected dd/mm/yyyy"})
		return
	}
	if !endDate.After(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "End date must be after start date"})
		return
	}

	booking := models.Booking{
		VehicleID: input.VehicleID,
		UserID:    currentUserID,
		StartDate: startDate,
		EndDate:   endDate,
		Note:      input.Note,
		Status:    0,
	}
	if err := config.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to create booking", "error": err.Error()})
		return
	}

	config.DB.Preload("User").Preload("Vehicle").First(&booking, booking.ID)

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Booking created successfully", "data": convertToBookingResponse(booking)})
}

// ChangeBookingStatus lets the vehicle owner confirm or cancel a booking.
func ChangeBookingStatus(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var input BookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	if input.Status < 0 || input.Status > 2 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid status"})
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("User").Preload("Vehicle").First(&booking, input.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Booking not found"})
		return
	}

	if booking.Vehicle.OwnerID != currentUserID {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "Only the vehicle owner can change the booking status"})
		return
	}

	booking.Status = input.Status
	if err := config.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update booking", "error": err.Error()})
		return
	}

	if booking.Status == 1 {
		log.Printf("Sending confirmation email to %s", booking.User.Email)
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Booking status updated successfully", "data": convertToBookingResponse(booking)})
}

func GetBookingDetail(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	currentUserRole := c.MustGet("currentUserRole").(int)

	var booking models.Booking
	if err := config.DB.Preload("User").Preload("Vehicle").First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Booking not found"})
		return
	}

	if booking.UserID != currentUserID && booking.Vehicle.OwnerID != currentUserID && currentUserRole != 2 {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "You do not have access to this booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Booking fetched successfully", "data": convertToBookingResponse(booking)})
}

// GetVehicleBookings lists the bookings of one of the caller's vehicles.
func GetVehicleBookings(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("vehicleId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vehicle not found"})
		return
	}

	if vehicle.OwnerID != currentUserID {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "You do not own this vehicle"})
		return
	}

	var bookings []models.Booking
	if err := config.DB.Preload("User").Preload("Vehicle").
		Where("vehicle_id = ?", vehicle.ID).
		Order("start_date DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch bookings", "error": err.Error()})
		return
	}

	bookingResponses := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		bookingResponses = append(bookingResponses, convertToBookingResponse(booking))
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Bookings fetched successfully", "data": bookingResponses})
}
