package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"openrole-api/models"
)

// PipelineService orchestrates the application lifecycle: it composes the
// visibility policy, the transition validator and the repository, and fires
// the advisory collaborators only after the authoritative change commits.
type PipelineService struct {
	store     ApplicationStore
	notifier  Notifier
	analytics AnalyticsCounter
}

func NewPipelineService(store ApplicationStore, notifier Notifier, analytics AnalyticsCounter) *PipelineService {
	return &PipelineService{store: store, notifier: notifier, analytics: analytics}
}

// SubmitPayload is the candidate-supplied part of a new application.
type SubmitPayload struct {
	ProfileID     *int    `json:"profile_id"`
	CoverLetter   *string `json:"cover_letter"`
	CVFileID      *int    `json:"cv_file_id"`
	CustomAnswers *string `json:"custom_answers"`
	Portfolio     *string `json:"portfolio_items"`
}

// FeedbackInput routes employer feedback by type into the matching rating
// field and the append-only feedback history.
type FeedbackInput struct {
	Type               models.FeedbackType `json:"feedback_type"`
	Rating             *int                `json:"rating"`
	Comments           *string             `json:"comments"`
	InterviewNotes     *string             `json:"interview_notes"`
	ShareWithCandidate *bool               `json:"share_with_candidate"`
}

// Submit creates the application at status submitted, bumps the job's
// application counter, and dispatches the advisory side effects.
func (s *PipelineService) Submit(jobID, candidateID int, payload SubmitPayload) (*models.Application, error) {
	job, err := s.store.GetJob(jobID)
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		JobID:         jobID,
		CandidateID:   candidateID,
		ProfileID:     payload.ProfileID,
		CoverLetter:   payload.CoverLetter,
		CVFileID:      payload.CVFileID,
		CustomAnswers: payload.CustomAnswers,
		Portfolio:     payload.Portfolio,
	}
	if err := s.store.Create(app); err != nil {
		return nil, err
	}

	if err := s.store.IncrementJobApplications(jobID); err != nil {
		log.Printf("Warning: failed to increment applications counter for job %d: %v", jobID, err)
	}

	s.incrementMetric(jobID, "applications")
	s.notify(job.EmployerID, EventApplicationSubmitted,
		"New application received",
		fmt.Sprintf("A new application was submitted for %q.", job.Title),
		&app.ApplicationID)

	return app, nil
}

// GetByID loads an application and authorizes the viewer: the owning
// candidate, the employer owning the job, or an admin. Candidates never see
// the evaluation payload, including on their own application.
func (s *PipelineService) GetByID(id string, actorID, actorRole int) (*models.Application, error) {
	app, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}

	switch {
	case actorRole == models.RoleAdmin:
		return app, nil
	case actorRole == models.RoleCandidate && app.CandidateID == actorID:
		sanitized := SanitizeForCandidate(*app)
		return &sanitized, nil
	case actorRole == models.RoleEmployer && app.Job.EmployerID == actorID:
		return app, nil
	}
	return nil, ErrForbidden
}

// UpdateStatus applies an employer-driven transition. Ownership is resolved
// first; the legality check and the write run atomically in the repository.
// The candidate is notified only when the status actually changed.
func (s *PipelineService) UpdateStatus(id string, actorID, actorRole int, to models.ApplicationStatus, notes *string) (*models.Application, error) {
	app, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && app.Job.EmployerID != actorID {
		return nil, ErrOwnershipMismatch
	}

	updated, from, err := s.store.TransitionStatus(id, to, actorID, notes, nil)
	if err != nil {
		return nil, err
	}

	if updated.Status != from {
		s.notify(updated.CandidateID, EventStatusChanged,
			"Application status updated",
			fmt.Sprintf("Your application moved from %s to %s.", from, updated.Status),
			&updated.ApplicationID)
	}
	return updated, nil
}

// Withdraw is candidate-only and permitted from any non-terminal state.
func (s *PipelineService) Withdraw(id string, candidateID int) (*models.Application, error) {
	app, changed, err := s.store.Withdraw(id, candidateID)
	if err != nil {
		return nil, err
	}
	if changed {
		s.incrementMetric(app.JobID, "withdrawals")
	}
	return app, nil
}

// AddFeedback records employer evaluation without touching the status.
func (s *PipelineService) AddFeedback(id string, actorID, actorRole int, input FeedbackInput) (*models.Application, error) {
	app, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && app.Job.EmployerID != actorID {
		return nil, ErrOwnershipMismatch
	}

	mutate, err := feedbackMutator(input)
	if err != nil {
		return nil, err
	}

	record := &models.ApplicationFeedback{
		FeedbackType: input.Type,
		Rating:       input.Rating,
		Comments:     input.Comments,
		GivenBy:      actorID,
	}
	return s.store.AddFeedback(id, record, mutate)
}

func feedbackMutator(input FeedbackInput) (func(*models.Application), error) {
	var setRating func(*models.Application, *int)
	switch input.Type {
	case models.FeedbackRecruiter:
		setRating = func(a *models.Application, r *int) { a.RecruiterRating = r }
	case models.FeedbackHiringManager:
		setRating = func(a *models.Application, r *int) { a.HiringManagerRating = r }
	case models.FeedbackTechnical:
		setRating = func(a *models.Application, r *int) { a.TechnicalScore = r }
	case models.FeedbackCultureFit:
		setRating = func(a *models.Application, r *int) { a.CultureFitScore = r }
	default:
		return nil, fmt.Errorf("unknown feedback type %q", input.Type)
	}

	return func(app *models.Application) {
		if input.Rating != nil {
			setRating(app, input.Rating)
		}
		if input.InterviewNotes != nil {
			app.InterviewNotes = input.InterviewNotes
		}
		if input.ShareWithCandidate != nil {
			app.FeedbackShared = *input.ShareWithCandidate
		}
	}, nil
}

// BulkUpdate applies one action to a batch of applications. Every id must
// belong to a job owned by the acting employer or the whole batch is
// rejected before any mutation; afterwards each application is updated in
// its own transaction and failures are collected per item.
func (s *PipelineService) BulkUpdate(ids []string, actorID, actorRole int, action BulkAction) (*BulkResult, error) {
	if len(ids) == 0 {
		return &BulkResult{Action: action.Name(), UpdatedIDs: []string{}}, nil
	}

	apps, err := s.store.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]models.Application, len(apps))
	for _, app := range apps {
		owned[app.ApplicationID] = app
	}
	for _, id := range ids {
		app, ok := owned[id]
		if !ok {
			return nil, ErrInvalidApplicationID
		}
		if actorRole != models.RoleAdmin && app.Job.EmployerID != actorID {
			return nil, ErrInvalidApplicationID
		}
	}

	target, err := action.Target()
	if err != nil {
		return nil, err
	}

	result := &BulkResult{Action: action.Name(), UpdatedIDs: []string{}}
	for _, id := range ids {
		updated, from, err := s.store.TransitionStatus(id, target, actorID, nil, action.Mutate)
		if err != nil {
			log.Printf("Warning: bulk %s skipped application %s: %v", action.Name(), id, err)
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.UpdatedCount++
		result.UpdatedIDs = append(result.UpdatedIDs, id)

		if updated.Status != from {
			s.notify(updated.CandidateID, EventStatusChanged,
				"Application status updated",
				fmt.Sprintf("Your application moved from %s to %s.", from, updated.Status),
				&updated.ApplicationID)
		}
	}
	return result, nil
}

// History returns the append-only transition log, gated like GetByID.
func (s *PipelineService) History(id string, actorID, actorRole int) ([]models.ApplicationStatusHistory, error) {
	if _, err := s.GetByID(id, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.store.HistoryByApplication(id)
}

// ViewProfile applies the visibility policy to a candidate profile. A nil
// viewerID is an unauthenticated request.
func (s *PipelineService) ViewProfile(viewerID *int, targetUserID int) (*models.CandidateProfile, error) {
	profile, err := s.store.GetProfileWithSettings(targetUserID)
	if err != nil {
		return nil, err
	}
	if !CanView(viewerID, profile.UserID, profile.Settings) {
		return nil, ErrForbidden
	}
	filtered := FilterProfile(viewerID, *profile, profile.Settings)
	filtered.Settings = models.PrivacySettings{}
	return &filtered, nil
}

// notify dispatches best-effort; a failure never rolls back the committed
// state change.
func (s *PipelineService) notify(userID int, event, title, message string, applicationID *string) {
	if err := s.notifier.Notify(userID, event, title, message, applicationID); err != nil {
		log.Printf("Warning: notification %s for user %d failed: %v", event, userID, err)
	}
}

func (s *PipelineService) incrementMetric(jobID int, metric string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.analytics.IncrementDailyMetric(ctx, jobID, time.Now(), metric); err != nil {
		log.Printf("Warning: analytics %s for job %d failed: %v", metric, jobID, err)
	}
}
