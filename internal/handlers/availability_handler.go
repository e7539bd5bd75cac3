package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
	"github.com/BruksfildServices01/golf-reservation/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/golf-reservation/internal/usecase/booking"
)

type AvailabilityService interface {
	VenueSlots(ctx context.Context, venueID uint, date string) ([]ucBooking.SlotView, error)
	CoachSchedules(ctx context.Context, coachID uint, date string) ([]ucBooking.ScheduleView, error)
}

type AvailabilityHandler struct {
	svc AvailabilityService
}

func NewAvailabilityHandler(svc AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) VenueSlots(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.FromError(c, domain.Validation("date", "date is required"))
		return
	}

	slots, err := h.svc.VenueSlots(c.Request.Context(), id, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"venueId": id,
		"date":    date,
		"slots":   slots,
	})
}

func (h *AvailabilityHandler) CoachSchedules(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.FromError(c, domain.Validation("date", "date is required"))
		return
	}

	schedules, err := h.svc.CoachSchedules(c.Request.Context(), id, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, schedules)
}
