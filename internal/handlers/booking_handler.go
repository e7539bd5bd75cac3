package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/dto"
	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
	"github.com/BruksfildServices01/golf-reservation/internal/httpresp"
	"github.com/BruksfildServices01/golf-reservation/internal/middleware"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
	ucBooking "github.com/BruksfildServices01/golf-reservation/internal/usecase/booking"
)

// BookingService is what the HTTP layer needs from the reservation engine.
type BookingService interface {
	Create(ctx context.Context, in ucBooking.CreateInput) (*ucBooking.CreateResult, error)
	Transition(ctx context.Context, in ucBooking.TransitionInput) (*ucBooking.TransitionResult, error)
	Get(ctx context.Context, actor domain.Actor, id uint) (*models.Booking, error)
	ListForUser(ctx context.Context, userID uint, page, limit int) ([]models.Booking, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	svc BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = c.GetHeader("Idempotency-Key")
	}
	if err := domain.CheckRequestID(requestID); err != nil {
		httperr.FromError(c, err)
		return
	}

	res, err := h.svc.Create(c.Request.Context(), ucBooking.CreateInput{
		UserID:     actor.UserID,
		Type:       domain.Type(req.Type),
		VenueID:    req.VenueID,
		CoachID:    req.CoachID,
		ScheduleID: req.ScheduleID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Duration:   req.Duration,
		FinalPrice: req.TotalPrice,
		RequestID:  requestID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	body := dto.CreateBookingResponse{ID: res.ID, OrderNo: res.OrderNo}
	if res.Duplicate {
		httpresp.OK(c, body)
		return
	}
	httpresp.Created(c, body)
}

// ======================================================
// CANCEL (customer)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CancelBookingRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Transition(c.Request.Context(), ucBooking.TransitionInput{
		BookingID: id,
		Actor:     middleware.CurrentActor(c),
		Action:    domain.ActionCancel,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.CancelBookingResponse{
		RefundAmount: res.RefundAmount,
		CancelFee:    res.CancelFee,
	})
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	actor := middleware.CurrentActor(c)
	b, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewBookingDTO(*b, actor.Role))
}

func (h *BookingHandler) List(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	page, limit := pageParams(c, 20, 100)

	items, total, err := h.svc.ListForUser(c.Request.Context(), actor.UserID, page, limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]dto.BookingDTO, 0, len(items))
	for _, b := range items {
		out = append(out, dto.NewBookingDTO(b, actor.Role))
	}

	httpresp.Page(c, out, page, limit, total)
}

// ======================================================
// ADMIN
// ======================================================

func (h *BookingHandler) AdminTransition(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.AdminTransitionRequest
	if !bindJSON(c, &req) {
		return
	}

	action, _ := domain.ParseAction(req.Action)
	res, err := h.svc.Transition(c.Request.Context(), ucBooking.TransitionInput{
		BookingID: id,
		Actor:     middleware.CurrentActor(c),
		Action:    action,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	body := dto.AdminTransitionResponse{
		Message: "booking " + string(res.To),
	}
	switch res.To {
	case domain.StatusCompleted:
		body.EarnedPoints = &res.EarnedPoints
	case domain.StatusNoShow:
		body.PenaltyPoints = &res.PenaltyPoints
	}

	c.JSON(http.StatusOK, body)
}
