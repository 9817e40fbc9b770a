package services

import (
	"errors"
	"log"
	"math"

	"gorm.io/gorm"

	"vrent/config"
	"vrent/models"
)

// AverageRating returns the arithmetic mean of the given ratings rounded to
// one decimal place. An empty slice yields 0.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}

// UpdateVehicleRating recomputes a vehicle's displayed rating from the reviews
// currently attached to it. The caller fires it after every review create,
// update or delete. A vehicle that no longer exists is skipped: the rating is
// an advisory display value and no reviewer waits on this side effect.
func UpdateVehicleRating(vehicleID uint) error {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("rating recompute skipped, vehicle %d not found", vehicleID)
			return nil
		}
		return err
	}

	var reviews []models.Review
	if err := config.DB.Where("vehicle_id = ?", vehicleID).Find(&reviews).Error; err != nil {
		return err
	}

	// No reviews: leave the existing value untouched.
	if len(reviews) == 0 {
		return nil
	}

	ratings := make([]int, 0, len(reviews))
	for _, review := range reviews {
		ratings = append(ratings, review.Rating)
	}

	return config.DB.Model(&vehicle).Update("rating", AverageRating(ratings)).Error
}
