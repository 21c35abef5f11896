package services

import (
	"fmt"
	"time"

	"openrole-api/models"
)

// BulkAction is the closed set of operations BulkUpdate can apply to a
// batch of applications. Each variant derives the target status and the
// per-application field changes, so the pipeline handles the set
// exhaustively instead of probing an untyped payload.
type BulkAction interface {
	// Name is the wire identifier reported back in the BulkResult.
	Name() string
	// Target returns the status each application should move to.
	Target() (models.ApplicationStatus, error)
	// Mutate applies the variant's extra field changes.
	Mutate(app *models.Application)
}

// BulkReject moves every application to rejected with a shared reason.
type BulkReject struct {
	Reason string
}

func (BulkReject) Name() string { return "reject" }

func (BulkReject) Target() (models.ApplicationStatus, error) {
	return models.StatusRejected, nil
}

func (a BulkReject) Mutate(app *models.Application) {
	if a.Reason != "" {
		reason := a.Reason
		app.RejectionReason = &reason
	}
}

// BulkAdvance moves every application to an explicit target stage. The
// transition table still gates each application individually.
type BulkAdvance struct {
	TargetStatus models.ApplicationStatus
}

func (BulkAdvance) Name() string { return "advance" }

func (a BulkAdvance) Target() (models.ApplicationStatus, error) {
	if IsTerminalStatus(a.TargetStatus) && a.TargetStatus != models.StatusHired {
		return "", fmt.Errorf("cannot advance to %q", a.TargetStatus)
	}
	return a.TargetStatus, nil
}

func (BulkAdvance) Mutate(*models.Application) {}

// BulkScheduleInterview records the interview slot and moves each
// application into the stage matching the interview type.
type BulkScheduleInterview struct {
	Type models.InterviewType
	When time.Time
}

func (BulkScheduleInterview) Name() string { return "schedule_interview" }

func (a BulkScheduleInterview) Target() (models.ApplicationStatus, error) {
	return InterviewStageFor(a.Type)
}

func (a BulkScheduleInterview) Mutate(app *models.Application) {
	t := a.Type
	when := a.When
	app.InterviewType = &t
	app.InterviewScheduledAt = &when
}

// BulkMarkReviewed moves freshly submitted applications into screening.
type BulkMarkReviewed struct{}

func (BulkMarkReviewed) Name() string { return "mark_as_reviewed" }

func (BulkMarkReviewed) Target() (models.ApplicationStatus, error) {
	return models.StatusScreening, nil
}

func (BulkMarkReviewed) Mutate(*models.Application) {}

// BulkResult reports per-item outcomes of a bulk update. Only the
// ownership pre-check aborts the whole batch; afterwards one item's failure
// never blocks its siblings.
type BulkResult struct {
	Action       string   `json:"action"`
	UpdatedCount int      `json:"updated_count"`
	UpdatedIDs   []string `json:"updated_ids"`
	FailedIDs    []string `json:"failed_ids,omitempty"`
}
