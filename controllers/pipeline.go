package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"openrole-api/models"
	"openrole-api/services"
	"openrole-api/utils"

	"github.com/gin-gonic/gin"
)

// UpdateApplicationStatus applies an employer-driven status transition
func UpdateApplicationStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status string  `json:"status" binding:"required"`
		Notes  *string `json:"notes"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := services.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	app, err := Pipeline.UpdateStatus(id, userID, roleID, status, utils.SanitizePtr(req.Notes))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Status updated successfully",
		"application": app,
	})
}

// AddApplicationFeedback records employer evaluation without changing status
func AddApplicationFeedback(c *gin.Context) {
	var input services.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	app, err := Pipeline.AddFeedback(id, userID, roleID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Feedback recorded",
		"application": app,
	})
}

// BulkUpdateApplications applies one action to a batch of applications
func BulkUpdateApplications(c *gin.Context) {
	type BulkRequest struct {
		ApplicationIDs []string `json:"application_ids" binding:"required"`
		Action         string   `json:"action" binding:"required"`
		Reason         string   `json:"reason"`
		TargetStatus   string   `json:"target_status"`
		InterviewType  string   `json:"interview_type"`
		ScheduledAt    string   `json:"scheduled_at"`
	}

	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := parseBulkAction(req.Action, req.Reason, req.TargetStatus, req.InterviewType, req.ScheduledAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	result, err := Pipeline.BulkUpdate(req.ApplicationIDs, userID, roleID, action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseBulkAction(name, reason, targetStatus, interviewType, scheduledAt string) (services.BulkAction, error) {
	switch strings.TrimSpace(name) {
	case "reject":
		return services.BulkReject{Reason: reason}, nil
	case "advance":
		status, err := services.ParseStatus(targetStatus)
		if err != nil {
			return nil, err
		}
		return services.BulkAdvance{TargetStatus: status}, nil
	case "schedule_interview":
		when, err := time.Parse(time.RFC3339, scheduledAt)
		if err != nil {
			return nil, err
		}
		return services.BulkScheduleInterview{
			Type: models.InterviewType(interviewType),
			When: when,
		}, nil
	case "mark_as_reviewed":
		return services.BulkMarkReviewed{}, nil
	}
	return nil, &unknownBulkActionError{name: name}
}

type unknownBulkActionError struct {
	name string
}

func (e *unknownBulkActionError) Error() string {
	return "unknown bulk action " + strconv.Quote(e.name)
}

// GetPipelineView groups the employer's applications into the fixed stage order
func GetPipelineView(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	var jobID *int
	if raw := strings.TrimSpace(c.Query("job_id")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
			return
		}
		jobID = &v
	}

	stages, err := Pipeline.GetPipelineView(userID, jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pipeline": stages})
}

// GetEmployerApplications lists applications across all the employer's jobs
func GetEmployerApplications(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	result, err := Pipeline.GetEmployerApplications(userID, parseFilters(c), c.Query("sort"), parsePage(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetJobApplications lists applications for one job, ownership-gated
func GetJobApplications(c *gin.Context) {
	jobID, err := strconv.Atoi(c.Param("job_id"))
	if err != nil || jobID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	result, err := Pipeline.ListJobApplications(jobID, userID, roleID, parseFilters(c), parsePage(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
