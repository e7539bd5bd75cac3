package models

import "time"

type Booking struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OrderNo string `gorm:"size:32;uniqueIndex;not null" json:"orderNo"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	BookingType string `gorm:"size:10;not null" json:"bookingType"`
	VenueID     *uint  `gorm:"index" json:"venueId,omitempty"`
	CoachID     *uint  `gorm:"index" json:"coachId,omitempty"`
	CourseID    *uint  `json:"courseId,omitempty"`
	ScheduleID  *uint  `json:"scheduleId,omitempty"`

	BookingDate string `gorm:"size:10;not null;index" json:"bookingDate"`
	StartTime   string `gorm:"size:5;not null" json:"startTime"`
	EndTime     string `gorm:"size:5;not null" json:"endTime"`
	StartMinute int    `gorm:"not null" json:"-"`
	EndMinute   int    `gorm:"not null" json:"-"`

	OriginalPrice float64 `json:"originalPrice"`
	FinalPrice    float64 `json:"finalPrice"`

	Status       string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	CancelReason *string `gorm:"size:255" json:"cancelReason,omitempty"`
	RefundAmount float64 `json:"refundAmount"`
	CancelFee    float64 `json:"cancelFee"`

	RequestID *string `gorm:"size:64;uniqueIndex:ux_bookings_request_id" json:"-"`
	Version   int     `gorm:"not null;default:0" json:"version"`

	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
