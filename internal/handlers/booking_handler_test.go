package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/middleware"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
	ucBooking "github.com/BruksfildServices01/golf-reservation/internal/usecase/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

type stubService struct {
	create         func(ucBooking.CreateInput) (*ucBooking.CreateResult, error)
	transition     func(ucBooking.TransitionInput) (*ucBooking.TransitionResult, error)
	get            func(domain.Actor, uint) (*models.Booking, error)
	list           func(uint, int, int) ([]models.Booking, int64, error)
	venueSlots     func(uint, string) ([]ucBooking.SlotView, error)
	coachSchedules func(uint, string) ([]ucBooking.ScheduleView, error)
}

func (s *stubService) Create(_ context.Context, in ucBooking.CreateInput) (*ucBooking.CreateResult, error) {
	return s.create(in)
}

func (s *stubService) Transition(_ context.Context, in ucBooking.TransitionInput) (*ucBooking.TransitionResult, error) {
	return s.transition(in)
}

func (s *stubService) Get(_ context.Context, a domain.Actor, id uint) (*models.Booking, error) {
	return s.get(a, id)
}

func (s *stubService) ListForUser(_ context.Context, userID uint, page, limit int) ([]models.Booking, int64, error) {
	return s.list(userID, page, limit)
}

func (s *stubService) VenueSlots(_ context.Context, id uint, date string) ([]ucBooking.SlotView, error) {
	return s.venueSlots(id, date)
}

func (s *stubService) CoachSchedules(_ context.Context, id uint, date string) ([]ucBooking.ScheduleView, error) {
	return s.coachSchedules(id, date)
}

func newTestRouter(svc *stubService, role string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(middleware.NewStaticResolver(100, role)))

	bh := NewBookingHandler(svc)
	ah := NewAvailabilityHandler(svc)

	r.POST("/bookings", bh.Create)
	r.GET("/bookings", bh.List)
	r.GET("/bookings/:id", bh.Get)
	r.POST("/bookings/:id/cancel", bh.Cancel)
	r.PUT("/admin/bookings/:id", middleware.RequireRole(domain.RoleAdmin), bh.AdminTransition)
	r.GET("/venues/:id/slots", ah.VenueSlots)
	r.GET("/coaches/:id/schedules", ah.CoachSchedules)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func validCreateBody() map[string]any {
	return map[string]any{
		"type":       "venue",
		"venueId":    1,
		"date":       "2025-06-03",
		"startTime":  "10:00",
		"duration":   60,
		"totalPrice": 100,
		"requestId":  "req-1",
	}
}

func TestCreate_Returns201(t *testing.T) {
	var got ucBooking.CreateInput
	svc := &stubService{create: func(in ucBooking.CreateInput) (*ucBooking.CreateResult, error) {
		got = in
		return &ucBooking.CreateResult{ID: 9, OrderNo: "GB1"}, nil
	}}

	w, body := do(t, newTestRouter(svc, "customer"), http.MethodPost, "/bookings", validCreateBody())
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(9), body["id"])
	assert.Equal(t, "GB1", body["orderNo"])

	assert.Equal(t, uint(100), got.UserID)
	assert.Equal(t, domain.TypeVenue, got.Type)
	require.NotNil(t, got.VenueID)
	assert.Equal(t, uint(1), *got.VenueID)
	assert.Equal(t, 100.0, got.FinalPrice)
	assert.Equal(t, "req-1", got.RequestID)
}

func TestCreate_ReplayReturns200(t *testing.T) {
	svc := &stubService{create: func(ucBooking.CreateInput) (*ucBooking.CreateResult, error) {
		return &ucBooking.CreateResult{ID: 9, OrderNo: "GB1", Duplicate: true}, nil
	}}

	w, body := do(t, newTestRouter(svc, "customer"), http.MethodPost, "/bookings", validCreateBody())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(9), body["id"])
}

func TestCreate_ConflictBody(t *testing.T) {
	svc := &stubService{create: func(ucBooking.CreateInput) (*ucBooking.CreateResult, error) {
		return nil, domain.Conflict([]domain.Interval{{StartTime: "10:00", EndTime: "11:00"}})
	}}

	w, body := do(t, newTestRouter(svc, "customer"), http.MethodPost, "/bookings", validCreateBody())
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BOOKING_CONFLICT", body["code"])
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, []any{map[string]any{"startTime": "10:00", "endTime": "11:00"}}, body["conflicts"])
}

func TestCreate_BindingValidation(t *testing.T) {
	svc := &stubService{create: func(ucBooking.CreateInput) (*ucBooking.CreateResult, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}
	r := newTestRouter(svc, "customer")

	for field, value := range map[string]any{
		"startTime": "10:10",
		"date":      "tomorrow",
		"type":      "lounge",
	} {
		body := validCreateBody()
		body[field] = value

		w, out := do(t, r, http.MethodPost, "/bookings", body)
		require.Equal(t, http.StatusBadRequest, w.Code, field)
		assert.Equal(t, "VALIDATION", out["code"])
		assert.Equal(t, field, out["details"].(map[string]any)["field"])
	}
}

func postWithKey(t *testing.T, r http.Handler, body map[string]any, key string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/bookings", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", key)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestCreate_IdempotencyKeyHeader(t *testing.T) {
	var got ucBooking.CreateInput
	svc := &stubService{create: func(in ucBooking.CreateInput) (*ucBooking.CreateResult, error) {
		got = in
		return &ucBooking.CreateResult{ID: 9, OrderNo: "GB1"}, nil
	}}
	r := newTestRouter(svc, "customer")

	body := validCreateBody()
	delete(body, "requestId")

	w, _ := postWithKey(t, r, body, "hdr-1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "hdr-1", got.RequestID)

	w, _ = postWithKey(t, r, validCreateBody(), "hdr-2")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "req-1", got.RequestID)
}

func TestCreate_IdempotencyKeyHeaderTooLong(t *testing.T) {
	svc := &stubService{create: func(ucBooking.CreateInput) (*ucBooking.CreateResult, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	body := validCreateBody()
	delete(body, "requestId")

	w, out := postWithKey(t, newTestRouter(svc, "customer"), body, strings.Repeat("k", 100))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Equal(t, "requestId", out["details"].(map[string]any)["field"])
}

func TestCreate_RequestIDTooLongInBody(t *testing.T) {
	svc := &stubService{create: func(ucBooking.CreateInput) (*ucBooking.CreateResult, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	body := validCreateBody()
	body["requestId"] = strings.Repeat("k", 65)

	w, out := do(t, newTestRouter(svc, "customer"), http.MethodPost, "/bookings", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Equal(t, "requestId must be at most 64 characters", out["message"])
}

func TestCancel_ReturnsRefund(t *testing.T) {
	var got ucBooking.TransitionInput
	svc := &stubService{transition: func(in ucBooking.TransitionInput) (*ucBooking.TransitionResult, error) {
		got = in
		return &ucBooking.TransitionResult{To: domain.StatusCancelled, RefundAmount: 80, CancelFee: 20}, nil
	}}

	w, body := do(t, newTestRouter(svc, "customer"), http.MethodPost, "/bookings/5/cancel", map[string]any{"reason": "rain"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 80.0, body["refundAmount"])
	assert.Equal(t, 20.0, body["cancelFee"])

	assert.Equal(t, uint(5), got.BookingID)
	assert.Equal(t, domain.ActionCancel, got.Action)
	assert.Equal(t, "rain", got.Reason)
	assert.Equal(t, domain.RoleCustomer, got.Actor.Role)
}

func TestCancel_ConcurrentModification(t *testing.T) {
	svc := &stubService{transition: func(ucBooking.TransitionInput) (*ucBooking.TransitionResult, error) {
		return nil, domain.ConcurrentModification()
	}}

	w, body := do(t, newTestRouter(svc, "customer"), http.MethodPost, "/bookings/5/cancel", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONCURRENT_MODIFICATION", body["code"])
}

func TestAdminTransition(t *testing.T) {
	svc := &stubService{transition: func(in ucBooking.TransitionInput) (*ucBooking.TransitionResult, error) {
		switch in.Action {
		case domain.ActionComplete:
			return &ucBooking.TransitionResult{To: domain.StatusCompleted, EarnedPoints: 199}, nil
		case domain.ActionNoShow:
			return &ucBooking.TransitionResult{To: domain.StatusNoShow, PenaltyPoints: 50}, nil
		default:
			return &ucBooking.TransitionResult{To: domain.StatusConfirmed}, nil
		}
	}}
	r := newTestRouter(svc, "admin")

	w, body := do(t, r, http.MethodPut, "/admin/bookings/5", map[string]any{"action": "complete"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "booking completed", body["message"])
	assert.Equal(t, float64(199), body["earnedPoints"])
	assert.NotContains(t, body, "penaltyPoints")

	_, body = do(t, r, http.MethodPut, "/admin/bookings/5", map[string]any{"action": "no_show"})
	assert.Equal(t, float64(50), body["penaltyPoints"])
	assert.NotContains(t, body, "earnedPoints")

	_, body = do(t, r, http.MethodPut, "/admin/bookings/5", map[string]any{"action": "confirm"})
	assert.NotContains(t, body, "earnedPoints")
	assert.NotContains(t, body, "penaltyPoints")

	w, body = do(t, r, http.MethodPut, "/admin/bookings/5", map[string]any{"action": "refund"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestAdminTransition_CustomerForbidden(t *testing.T) {
	w, body := do(t, newTestRouter(&stubService{}, "customer"), http.MethodPut, "/admin/bookings/5", map[string]any{"action": "confirm"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestAdminTransition_InvalidTransition(t *testing.T) {
	svc := &stubService{transition: func(ucBooking.TransitionInput) (*ucBooking.TransitionResult, error) {
		return nil, domain.InvalidTransition(domain.StatusCompleted, domain.ActionCancel)
	}}

	w, body := do(t, newTestRouter(svc, "admin"), http.MethodPut, "/admin/bookings/5", map[string]any{"action": "cancel"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "STATE_TRANSITION_INVALID", body["code"])
	assert.Equal(t, "completed", body["details"].(map[string]any)["currentStatus"])
}

func TestGet_NotFoundAndBadID(t *testing.T) {
	svc := &stubService{get: func(domain.Actor, uint) (*models.Booking, error) {
		return nil, domain.NotFound("booking", 5)
	}}
	r := newTestRouter(svc, "customer")

	w, _ := do(t, r, http.MethodGet, "/bookings/5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body := do(t, r, http.MethodGet, "/bookings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestGet_IncludesAllowedActions(t *testing.T) {
	svc := &stubService{get: func(domain.Actor, uint) (*models.Booking, error) {
		return &models.Booking{ID: 5, UserID: 100, Status: "confirmed"}, nil
	}}

	w, body := do(t, newTestRouter(svc, "customer"), http.MethodGet, "/bookings/5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"cancel"}, body["allowedActions"])
}

func TestList_Paginates(t *testing.T) {
	svc := &stubService{list: func(userID uint, page, limit int) ([]models.Booking, int64, error) {
		assert.Equal(t, uint(100), userID)
		assert.Equal(t, 2, page)
		assert.Equal(t, 5, limit)
		return []models.Booking{{ID: 1, Status: "pending"}}, 6, nil
	}}

	w, body := do(t, newTestRouter(svc, "customer"), http.MethodGet, "/bookings?page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(6), body["total"])
	assert.Len(t, body["data"], 1)
}

func TestVenueSlots(t *testing.T) {
	svc := &stubService{venueSlots: func(id uint, date string) ([]ucBooking.SlotView, error) {
		return []ucBooking.SlotView{{StartTime: "08:00", EndTime: "08:30", Available: true, Price: 50}}, nil
	}}
	r := newTestRouter(svc, "customer")

	w, body := do(t, r, http.MethodGet, "/venues/1/slots?date=2025-06-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-06-03", body["date"])
	assert.Len(t, body["slots"], 1)

	w, _ = do(t, r, http.MethodGet, "/venues/1/slots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCoachSchedules(t *testing.T) {
	svc := &stubService{coachSchedules: func(id uint, date string) ([]ucBooking.ScheduleView, error) {
		return []ucBooking.ScheduleView{{ID: 70, StartTime: "14:00", EndTime: "15:00", Available: true}}, nil
	}}

	w, body := do(t, newTestRouter(svc, "customer"), http.MethodGet, "/coaches/7/schedules?date=2025-06-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["total"])
}
