package dto

import (
	"time"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	Type       string  `json:"type" binding:"required,oneof=venue coach course"`
	VenueID    *uint   `json:"venueId"`
	CoachID    *uint   `json:"coachId"`
	ScheduleID *uint   `json:"scheduleId"`
	Date       string  `json:"date" binding:"required,ymd"`
	StartTime  string  `json:"startTime" binding:"omitempty,clock"`
	Duration   int     `json:"duration" binding:"required"`
	TotalPrice float64 `json:"totalPrice" binding:"gte=0"`
	RequestID  string  `json:"requestId" binding:"max=64"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

type AdminTransitionRequest struct {
	Action string `json:"action" binding:"required,oneof=confirm complete cancel no_show"`
	Reason string `json:"reason" binding:"max=255"`
}

// ======================================================
// RESPONSES
// ======================================================

type CreateBookingResponse struct {
	ID      uint   `json:"id"`
	OrderNo string `json:"orderNo"`
}

type CancelBookingResponse struct {
	RefundAmount float64 `json:"refundAmount"`
	CancelFee    float64 `json:"cancelFee"`
}

type AdminTransitionResponse struct {
	Message       string `json:"message"`
	EarnedPoints  *int   `json:"earnedPoints,omitempty"`
	PenaltyPoints *int   `json:"penaltyPoints,omitempty"`
}

type BookingDTO struct {
	ID            uint       `json:"id"`
	OrderNo       string     `json:"orderNo"`
	UserID        uint       `json:"userId"`
	Type          string     `json:"type"`
	VenueID       *uint      `json:"venueId,omitempty"`
	CoachID       *uint      `json:"coachId,omitempty"`
	ScheduleID    *uint      `json:"scheduleId,omitempty"`
	Date          string     `json:"date"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	OriginalPrice float64    `json:"originalPrice"`
	FinalPrice    float64    `json:"finalPrice"`
	Status        string     `json:"status"`
	Version       int        `json:"version"`
	CancelReason  *string    `json:"cancelReason,omitempty"`
	RefundAmount  float64    `json:"refundAmount"`
	CancelFee     float64    `json:"cancelFee"`
	ConfirmedAt   *time.Time `json:"confirmedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`

	// AllowedActions is what the viewer may do next.
	AllowedActions []domain.Action `json:"allowedActions"`
}

func NewBookingDTO(b models.Booking, viewer domain.Role) BookingDTO {
	actions := domain.NewStateMachine().AllowedActions(domain.Status(b.Status), viewer)
	if actions == nil {
		actions = []domain.Action{}
	}

	return BookingDTO{
		ID:             b.ID,
		OrderNo:        b.OrderNo,
		UserID:         b.UserID,
		Type:           b.BookingType,
		VenueID:        b.VenueID,
		CoachID:        b.CoachID,
		ScheduleID:     b.ScheduleID,
		Date:           b.BookingDate,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		OriginalPrice:  b.OriginalPrice,
		FinalPrice:     b.FinalPrice,
		Status:         b.Status,
		Version:        b.Version,
		CancelReason:   b.CancelReason,
		RefundAmount:   b.RefundAmount,
		CancelFee:      b.CancelFee,
		ConfirmedAt:    b.ConfirmedAt,
		CompletedAt:    b.CompletedAt,
		CancelledAt:    b.CancelledAt,
		CreatedAt:      b.CreatedAt,
		AllowedActions: actions,
	}
}
