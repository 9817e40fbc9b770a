package models

import (
	"time"

	"github.com/lib/pq"
)

type Review struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	VehicleID       uint           `gorm:"not null;uniqueIndex:idx_review_user_vehicle" json:"vehicleId"`
	UserID          uint           `gorm:"not null;uniqueIndex:idx_review_user_vehicle" json:"userId"`
	Rating          int            `gorm:"not null" json:"rating"` // 1-5
	Comment         string         `json:"comment"`
	Photos          pq.StringArray `gorm:"type:text[]" json:"photos"`
	OwnerResponse   string         `json:"ownerResponse,omitempty"`
	OwnerResponseAt *time.Time     `json:"ownerResponseAt,omitempty"`
	User            User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
