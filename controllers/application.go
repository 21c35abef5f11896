package controllers

import (
	"net/http"
	"strconv"

	"openrole-api/services"
	"openrole-api/utils"

	"github.com/gin-gonic/gin"
)

// SubmitApplication creates a new application for the authenticated candidate
func SubmitApplication(c *gin.Context) {
	type SubmitRequest struct {
		JobID   int                    `json:"job_id" binding:"required"`
		Payload services.SubmitPayload `json:"payload"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := getCurrentUserID(c)
	req.Payload.CoverLetter = utils.SanitizePtr(req.Payload.CoverLetter)

	app, err := Pipeline.Submit(req.JobID, userID, req.Payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// GetApplication returns a single application, visibility-gated by role
func GetApplication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	app, err := Pipeline.GetByID(id, userID, roleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": app,
	})
}

// GetApplications returns the caller's applications (candidate view)
func GetApplications(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	result, err := Pipeline.ListCandidateApplications(userID, parseFilters(c), parsePage(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// WithdrawApplication is candidate-only; permitted from any non-terminal state
func WithdrawApplication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := getCurrentUserID(c)

	app, err := Pipeline.Withdraw(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application withdrawn",
		"application": app,
	})
}

// GetApplicationHistory returns the append-only status transition log
func GetApplicationHistory(c *gin.Context) {
	id := c.Param("id")
	userID, _ := getCurrentUserID(c)
	roleID, _ := getCurrentRoleID(c)

	history, err := Pipeline.History(id, userID, roleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"total":   len(history),
	})
}

// GetCandidateStats returns the per-status dashboard buckets for the caller
func GetCandidateStats(c *gin.Context) {
	userID, _ := getCurrentUserID(c)

	stats, err := Pipeline.GetCandidateStats(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetProfile returns a privacy-filtered candidate profile. Anonymous
// requests are allowed; the visibility policy decides what they see.
func GetProfile(c *gin.Context) {
	target, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || target <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var viewerID *int
	if uid, ok := getCurrentUserID(c); ok {
		viewerID = &uid
	}

	profile, err := Pipeline.ViewProfile(viewerID, target)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
