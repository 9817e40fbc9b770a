package controllers

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/lib/pq"

	"vrent/config"
	"vrent/models"
	"vrent/services"
)

type VehicleInput struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Description string   `json:"description" binding:"required"`
	PricePerDay float64  `json:"pricePerDay" binding:"required"`
	Street      string   `json:"street"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	ZipCode     string   `json:"zipCode"`
	Country     string   `json:"country"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
}

type VehicleUpdateInput struct {
	ID          uint     `json:"id" binding:"required"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	PricePerDay float64  `json:"pricePerDay"`
	Street      string   `json:"street"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	ZipCode     string   `json:"zipCode"`
	Country     string   `json:"country"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
}

type VehicleStatusInput struct {
	ID     uint `json:"id" binding:"required"`
	Status int  `json:"status"`
}

type VehicleOwnerInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type VehicleResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	PricePerDay float64          `json:"pricePerDay"`
	City        string           `json:"city"`
	Country     string           `json:"country"`
	Images      []string         `json:"images"`
	Features    []string         `json:"features"`
	Rating      float64          `json:"rating"`
	Status      int              `json:"status"`
	Owner       VehicleOwnerInfo `json:"owner"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func convertToVehicleResponse(vehicle models.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          vehicle.ID,
		Name:        vehicle.Name,
		Type:        vehicle.Type,
		Description: vehicle.Description,
		PricePerDay: vehicle.PricePerDay,
		City:        vehicle.City,
		Country:     vehicle.Country,
		Images:      vehicle.Images,
		Features:    vehicle.Features,
		Rating:      vehicle.Rating,
		Status:      vehicle.Status,
		Owner:       VehicleOwnerInfo{ID: vehicle.Owner.ID, Name: vehicle.Owner.Name},
		CreatedAt:   vehicle.CreatedAt,
	}
}

// GetAllVehicles godoc
// @Summary List active vehicles with filters
// @Tags vehicles
// @Produce json
// @Router /vehicles [get]
func GetAllVehicles(c *gin.Context) {
	typeFilter := c.DefaultQuery("type", "")
	search := c.DefaultQuery("search", "")
	featuresFilter := c.DefaultQuery("features", "")
	maxPrice := c.DefaultQuery("maxPrice", "")

	unfiltered := typeFilter == "" && search == "" && featuresFilter == "" && maxPrice == ""
	cacheKey := "vehicles:all"

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil && unfiltered {
		var cached []VehicleResponse
		if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &cached); err == nil && len(cached) > 0 {
			c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Vehicles fetched successfully from cache", "data": cached})
			return
		}
	}

	tx := config.DB.Preload("Owner").Where("status = ?", 0)
	if typeFilter != "" {
		tx = tx.Where("type = ?", typeFilter)
	}
	if search != "" {
		tx = tx.Where("name ILIKE ? OR city ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if featuresFilter != "" {
		tx = tx.Where("features && ?", pq.Array(strings.Split(featuresFilter, ",")))
	}
	if maxPrice != "" {
		if parsed, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			tx = tx.Where("price_per_day <= ?", parsed)
		}
	}

	var vehicles []models.Vehicle
	if err := tx.Order("rating DESC").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to fetch vehicles", "error": err.Error()})
		return
	}

	vehicleResponses := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		vehicleResponses = append(vehicleResponses, convertToVehicleResponse(vehicle))
	}

	if redisErr == nil && unfiltered {
		if data, err := json.Marshal(vehicleResponses); err == nil {
			if err := services.SetToRedis(config.Ctx, rdb, cacheKey, data, time.Hour); err != nil {
				log.Printf("Failed to cache vehicle list: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Vehicles fetched successfully", "data": vehicleResponses})
}

func GetVehicleDetail(c *gin.Context) {
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := config.DB.Preload("Owner").Preload("Reviews.User").First(&vehicle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Vehicle fetched successfully", "data": vehicle})
}

// CreateVehicle registers a new listing owned by the caller. The address is
// forward-geocoded when a Mapbox token is configured; a geocoding failure
// only costs the coordinates, not the listing.
func CreateVehicle(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	var input VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	vehicle := models.Vehicle{
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		PricePerDay: input.PricePerDay,
		Street:      input.Street,
		City:        input.City,
		State:       input.State,
		ZipCode:     input.ZipCode,
		Country:     input.Country,
		Images:      input.Images,
		Features:    input.Features,
		OwnerID:     currentUserID,
	}

	if token := os.Getenv("MAPBOX_ACCESS_TOKEN"); token != "" && input.Street != "" {
		lng, lat, err := services.GetCoordinatesFromAddress(input.Street, input.City, input.State, input.Country, token)
		if err != nil {
			log.Printf("Geocoding failed for vehicle %q: %v", input.Name, err)
		} else {
			vehicle.Longitude = lng
			vehicle.Latitude = lat
		}
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to create vehicle", "error": err.Error()})
		return
	}

	invalidateVehicleCache()

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Vehicle created successfully", "data": vehicle})
}

func UpdateVehicle(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	currentUserRole := c.MustGet("currentUserRole").(int)

	var input VehicleUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, input.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vehicle not found"})
		return
	}

	if vehicle.OwnerID != currentUserID && currentUserRole != 2 {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "You do not own this vehicle"})
		return
	}

	if input.Name != "" {
		vehicle.Name = input.Name
	}
	if input.Type != "" {
		vehicle.Type = input.Type
	}
	if input.Description != "" {
		vehicle.Description = input.Description
	}
	if input.PricePerDay > 0 {
		vehicle.PricePerDay = input.PricePerDay
	}
	if input.Street != "" {
		vehicle.Street = input.Street
	}
	if input.City != "" {
		vehicle.City = input.City
	}
	if input.State != "" {
		vehicle.State = input.State
	}
	if input.ZipCode != "" {
		vehicle.ZipCode = input.ZipCode
	}
	if input.Country != "" {
		vehicle.Country = input.Country
	}
	if input.Images != nil {
		vehicle.Images = input.Images
	}
	if input.Features != nil {
		vehicle.Features = input.Features
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update vehicle", "error": err.Error()})
		return
	}

	invalidateVehicleCache()

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Vehicle updated successfully", "data": vehicle})
}

func ChangeVehicleStatus(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	currentUserRole := c.MustGet("currentUserRole").(int)

	var input VehicleStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, input.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vehicle not found"})
		return
	}

	if vehicle.OwnerID != currentUserID && currentUserRole != 2 {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "You do not own this vehicle"})
		return
	}

	vehicle.Status = input.Status
	if err := config.DB.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to update status", "error": err.Error()})
		return
	}

	invalidateVehicleCache()

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Status updated successfully", "data": vehicle})
}

func DeleteVehicle(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)
	currentUserRole := c.MustGet("currentUserRole").(int)

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "Vehicle not found"})
		return
	}

	if vehicle.OwnerID != currentUserID && currentUserRole != 2 {
		c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "You do not own this vehicle"})
		return
	}

	if err := config.DB.Where("vehicle_id = ?", vehicle.ID).Delete(&models.Review{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to delete reviews", "error": err.Error()})
		return
	}
	if err := config.DB.Delete(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to delete vehicle", "error": err.Error()})
		return
	}

	invalidateVehicleCache()

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Vehicle deleted successfully"})
}

func invalidateVehicleCache() {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, rdb, "vehicles:all")
}
