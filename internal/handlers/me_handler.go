package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
	"github.com/BruksfildServices01/golf-reservation/internal/httpresp"
	"github.com/BruksfildServices01/golf-reservation/internal/middleware"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var user models.User
	err := h.db.WithContext(c.Request.Context()).First(&user, actor.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.FromError(c, domain.NotFound("user", actor.UserID))
		return
	}
	if err != nil {
		httperr.FromError(c, domain.Internal("load user", err))
		return
	}

	httpresp.OK(c, gin.H{
		"id":     user.ID,
		"name":   user.Name,
		"phone":  user.Phone,
		"role":   actor.Role,
		"points": user.Points,
	})
}

// PointHistory is the caller's points ledger, newest first.
func (h *MeHandler) PointHistory(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	page, limit := pageParams(c, 20, 100)

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.PointLog{}).
		Where("user_id = ?", actor.UserID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.FromError(c, domain.Internal("count point logs", err))
		return
	}

	var logs []models.PointLog
	if err := q.
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		httperr.FromError(c, domain.Internal("list point logs", err))
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
