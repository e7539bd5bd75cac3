package models

import "time"

type User struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100" json:"name"`
	Phone  string `gorm:"size:20;uniqueIndex" json:"phone"`
	Role   string `gorm:"size:20;default:'customer'" json:"role"`
	Points int    `gorm:"not null;default:0" json:"points"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
