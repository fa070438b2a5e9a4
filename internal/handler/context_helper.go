package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/intellixel001/suvashpanel/internal/middleware"
	"github.com/intellixel001/suvashpanel/internal/models"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
	"github.com/intellixel001/suvashpanel/pkg/response"
)

func userFromContext(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

// bindJSON decodes the body into dst and writes a validation error on failure.
func bindJSON(c *gin.Context, dst interface{}, what string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+what+" payload"))
		return false
	}
	return true
}

// bindQuery decodes query parameters into dst and writes a validation error on failure.
func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return false
	}
	return true
}

func param(c *gin.Context, name string) string {
	return strings.TrimSpace(c.Param(name))
}

// respondList writes items with their counts in meta.
func respondList(c *gin.Context, items interface{}, total, filtered int, extra map[string]interface{}) {
	middleware.SetCounts(c, total, filtered)
	meta := middleware.ExtractMeta(c)
	for k, v := range extra {
		meta[k] = v
	}
	response.JSON(c, http.StatusOK, items, meta)
}
