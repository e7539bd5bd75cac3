package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/handlers"
	"github.com/BruksfildServices01/golf-reservation/internal/middleware"
	ucBooking "github.com/BruksfildServices01/golf-reservation/internal/usecase/booking"
)

// Deps are the singletons main builds once.
type Deps struct {
	DB       *gorm.DB
	Bookings *ucBooking.Service
	Resolver middleware.Resolver
	Gatherer prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(d.Bookings)
	availabilityHandler := handlers.NewAvailabilityHandler(d.Bookings)
	meHandler := handlers.NewMeHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// ======================================================
	// PUBLIC AVAILABILITY
	// ======================================================
	r.GET("/venues/:id/slots", availabilityHandler.VenueSlots)
	r.GET("/coaches/:id/schedules", availabilityHandler.CoachSchedules)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Resolver))
	{
		secured.GET("/me", meHandler.GetMe)
		secured.GET("/me/points", meHandler.PointHistory)

		secured.POST("/bookings", bookingHandler.Create)
		secured.GET("/bookings", bookingHandler.List)
		secured.GET("/bookings/:id", bookingHandler.Get)
		secured.POST("/bookings/:id/cancel", bookingHandler.Cancel)

		admin := secured.Group("/admin")
		admin.Use(middleware.RequireRole(domain.RoleAdmin))
		{
			admin.PUT("/bookings/:id", bookingHandler.AdminTransition)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
