package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
	"github.com/BruksfildServices01/golf-reservation/internal/httpresp"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List is admin-only; the route group enforces the role.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pageParams(c, 50, 200)
	offset := (page - 1) * limit

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if raw := c.Query("entityId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.FromError(c, domain.Validation("entityId", "entityId must be a positive integer"))
			return
		}
		q = q.Where("entity_id = ?", id)
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			httperr.FromError(c, domain.Validation("from", "from must be YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			httperr.FromError(c, domain.Validation("to", "to must be YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.FromError(c, domain.Internal("count audit logs", err))
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.FromError(c, domain.Internal("list audit logs", err))
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
