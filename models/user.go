package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name      string    `gorm:"default:New User" json:"name"`
	Email     string    `gorm:"unique" json:"email"`
	Password  string    `json:"password"`
	Avatar    string    `json:"avatar"`
	Role      int       `gorm:"default:0" json:"role"`   // 0: User - 1: Vehicle owner - 2: Admin
	Status    int       `gorm:"default:0" json:"status"` // 0: active - 1: banned
	Favorites []Vehicle `gorm:"many2many:user_favorites" json:"favorites,omitempty"`
}
