package models

import "time"

// CoachSchedule is a time block published by a coach. IsBooked is only
// flipped by the reservation engine when a booking claims or releases it.
type CoachSchedule struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	CoachID uint  `gorm:"not null;uniqueIndex:ux_coach_schedules_slot" json:"coachId"`
	Coach   Coach `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      string `gorm:"size:10;not null;uniqueIndex:ux_coach_schedules_slot" json:"date"`
	StartTime string `gorm:"size:5;not null;uniqueIndex:ux_coach_schedules_slot" json:"startTime"`
	EndTime   string `gorm:"size:5;not null" json:"endTime"`
	IsBooked  bool   `gorm:"not null;default:false" json:"isBooked"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
