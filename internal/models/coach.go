package models

import "time"

type Coach struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Price       float64 `json:"price"`
	Status      string  `gorm:"size:20;default:'active'" json:"status"`
	LessonCount int     `gorm:"not null;default:0" json:"lessonCount"`

	// FreeCancelHours overrides the coach-module default when set.
	FreeCancelHours *int `json:"freeCancelHours,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
