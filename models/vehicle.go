package models

import (
	"time"

	"github.com/lib/pq"
)

type Vehicle struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string         `gorm:"not null" json:"name"`
	Type        string         `gorm:"not null" json:"type"`
	Description string         `json:"description"`
	PricePerDay float64        `json:"pricePerDay"`
	Street      string         `json:"street"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	ZipCode     string         `json:"zipCode"`
	Country     string         `json:"country"`
	Longitude   float64        `json:"longitude"`
	Latitude    float64        `json:"latitude"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Features    pq.StringArray `gorm:"type:text[]" json:"features"`
	Rating      float64        `gorm:"default:0" json:"rating"` // mean of review ratings, one decimal
	Status      int            `gorm:"default:0" json:"status"` // 0: active - 1: hidden
	OwnerID     uint           `gorm:"not null" json:"ownerId"`
	Owner       User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Reviews     []Review       `gorm:"foreignKey:VehicleID" json:"reviews,omitempty"`
}
