package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
	"github.com/BruksfildServices01/golf-reservation/internal/validators"
)

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.FromError(c, domain.Validation(name, name+" must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		field, msg := validators.Describe(err)
		httperr.FromError(c, domain.Validation(field, msg))
		return false
	}
	return true
}

func pageParams(c *gin.Context, defLimit, maxLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit)))
	if limit <= 0 || limit > maxLimit {
		limit = defLimit
	}
	return page, limit
}
