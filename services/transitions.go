package services

import (
	"fmt"

	"openrole-api/models"
)

// The hiring pipeline state machine.
//
// Valid status graph (employer-driven):
//
//	submitted ──► screening ──► phone_interview ──► technical_interview ──► final_interview ──► reference_check ──► offer_extended ──► hired
//	    │             │               │    └───────────────────────────────────────►│                  │                  │
//	    └─────────────┴───────────────┴────────────────────────────────────────────┴──────────────────┴──────────────────┴──► rejected
//
// withdrawn is reached only through the candidate withdrawal action, from any
// non-terminal state. hired, rejected and withdrawn are terminal.

// validTransitions lists every allowed employer-driven (from → to) pair.
// Terminal states are absent on purpose: no outgoing transitions.
var validTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusSubmitted:          {models.StatusScreening, models.StatusRejected},
	models.StatusScreening:          {models.StatusPhoneInterview, models.StatusRejected},
	models.StatusPhoneInterview:     {models.StatusTechnicalInterview, models.StatusFinalInterview, models.StatusRejected},
	models.StatusTechnicalInterview: {models.StatusFinalInterview, models.StatusRejected},
	models.StatusFinalInterview:     {models.StatusReferenceCheck, models.StatusOfferExtended, models.StatusRejected},
	models.StatusReferenceCheck:     {models.StatusOfferExtended, models.StatusRejected},
	models.StatusOfferExtended:      {models.StatusHired, models.StatusRejected},
}

// PipelineStages is the fixed 9-stage ordering used by the employer pipeline
// board. Every stage is always reported, even at count zero. Withdrawn
// applications are not part of the board.
var PipelineStages = []models.ApplicationStatus{
	models.StatusSubmitted,
	models.StatusScreening,
	models.StatusPhoneInterview,
	models.StatusTechnicalInterview,
	models.StatusFinalInterview,
	models.StatusReferenceCheck,
	models.StatusOfferExtended,
	models.StatusHired,
	models.StatusRejected,
}

// InProgressStatuses is the union of active review/interview states used by
// the stats aggregations.
var InProgressStatuses = []models.ApplicationStatus{
	models.StatusScreening,
	models.StatusPhoneInterview,
	models.StatusTechnicalInterview,
	models.StatusFinalInterview,
	models.StatusReferenceCheck,
}

// ParseStatus converts a raw string to an ApplicationStatus, returning an
// error for unknown values.
func ParseStatus(s string) (models.ApplicationStatus, error) {
	st := models.ApplicationStatus(s)
	switch st {
	case models.StatusSubmitted, models.StatusScreening, models.StatusPhoneInterview,
		models.StatusTechnicalInterview, models.StatusFinalInterview, models.StatusReferenceCheck,
		models.StatusOfferExtended, models.StatusHired, models.StatusRejected, models.StatusWithdrawn:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTerminalStatus reports whether the status has no outgoing transitions.
func IsTerminalStatus(s models.ApplicationStatus) bool {
	return s == models.StatusHired || s == models.StatusRejected || s == models.StatusWithdrawn
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// employer-driven state machine.
func IsTransitionAllowed(from, to models.ApplicationStatus) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError identifying the
// attempted pair when the move is not in the edge table.
func ValidateTransition(from, to models.ApplicationStatus) error {
	if !IsTransitionAllowed(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// InterviewStageFor maps an interview type to the pipeline stage it places
// the application in.
func InterviewStageFor(t models.InterviewType) (models.ApplicationStatus, error) {
	switch t {
	case models.InterviewPhone:
		return models.StatusPhoneInterview, nil
	case models.InterviewTechnical:
		return models.StatusTechnicalInterview, nil
	case models.InterviewFinal:
		return models.StatusFinalInterview, nil
	}
	return "", fmt.Errorf("unknown interview type %q", t)
}
