package models

import "time"

type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	VehicleID uint      `gorm:"not null" json:"vehicleId"`
	UserID    uint      `gorm:"not null" json:"userId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    int       `gorm:"default:0" json:"status"` // 0: pending - 1: confirmed - 2: cancelled
	Note      string    `json:"note"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Vehicle   Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}
