package models

import "time"

type Venue struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	OpenTime    string  `gorm:"size:5;not null" json:"openTime"`
	CloseTime   string  `gorm:"size:5;not null" json:"closeTime"`
	MinDuration int     `gorm:"not null;default:60" json:"minDuration"`
	Price       float64 `json:"price"`
	PeakPrice   float64 `json:"peakPrice"`
	Status      string  `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
