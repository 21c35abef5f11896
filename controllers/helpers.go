package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"openrole-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openrole-api/config"
)

// Pipeline is wired once at startup; controllers stay thin bindings over it.
var Pipeline *services.PipelineService

// UsePipeline injects the pipeline service the controllers delegate to.
func UsePipeline(svc *services.PipelineService) {
	Pipeline = svc
}

func getDB() *gorm.DB { return config.DB }

func getCurrentUserID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			return int(t), true
		}
	}
	return 0, false
}

func getCurrentRoleID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("roleID"); ok {
		switch t := v.(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			return int(t), true
		}
	}
	return 0, false
}

// parseFilters reads the shared list-query parameters.
func parseFilters(c *gin.Context) services.ApplicationFilters {
	var filters services.ApplicationFilters
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		if status, err := services.ParseStatus(raw); err == nil {
			filters.Status = &status
		}
	}
	if raw := strings.TrimSpace(c.Query("job_id")); raw != "" {
		if jobID, err := strconv.Atoi(raw); err == nil && jobID > 0 {
			filters.JobID = &jobID
		}
	}
	return filters
}

func parsePage(c *gin.Context) services.Page {
	page := services.Page{Number: 1, Size: 20}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page.Number = v
	}
	if v, err := strconv.Atoi(c.Query("per_page")); err == nil && v > 0 && v <= 100 {
		page.Size = v
	}
	return page
}

// respondError maps domain errors onto HTTP codes. Authorization failures
// stay opaque: the payload never says why access was denied.
func respondError(c *gin.Context, err error) {
	var transition *services.InvalidTransitionError
	switch {
	case errors.As(err, &transition):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       transition.Error(),
			"from_status": transition.From,
			"to_status":   transition.To,
		})
	case errors.Is(err, services.ErrDuplicateApplication):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrIllegalWithdrawal),
		errors.Is(err, services.ErrInvalidApplicationID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrOwnershipMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
