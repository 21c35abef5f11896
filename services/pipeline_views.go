package services

import (
	"time"

	"openrole-api/models"
)

// PipelineItem is the denormalized summary shown on the employer board.
type PipelineItem struct {
	ApplicationID   string                   `json:"application_id"`
	CandidateName   string                   `json:"candidate_name"`
	JobTitle        string                   `json:"job_title"`
	AppliedAt       time.Time                `json:"applied_at"`
	RecruiterRating *int                     `json:"recruiter_rating,omitempty"`
	Status          models.ApplicationStatus `json:"status"`
}

// PipelineStage is one column of the board. Every stage is present in the
// response, count zero included.
type PipelineStage struct {
	Stage models.ApplicationStatus `json:"stage"`
	Count int                      `json:"count"`
	Items []PipelineItem           `json:"items"`
}

// CandidateStats buckets a candidate's applications for their dashboard.
type CandidateStats struct {
	Total      int64 `json:"total"`
	Submitted  int64 `json:"submitted"`
	InProgress int64 `json:"in_progress"`
	Offers     int64 `json:"offers"`
	Hired      int64 `json:"hired"`
	Rejected   int64 `json:"rejected"`
	Withdrawn  int64 `json:"withdrawn"`
}

// GetPipelineView groups the employer's applications into the fixed 9-stage
// pipeline ordering, optionally narrowed to one job.
func (s *PipelineService) GetPipelineView(employerID int, jobID *int) ([]PipelineStage, error) {
	apps, err := s.store.ListForPipeline(employerID, jobID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[models.ApplicationStatus][]PipelineItem, len(PipelineStages))
	for _, app := range apps {
		item := PipelineItem{
			ApplicationID:   app.ApplicationID,
			CandidateName:   app.Candidate.FullName(),
			JobTitle:        app.Job.Title,
			AppliedAt:       app.AppliedAt,
			RecruiterRating: app.RecruiterRating,
			Status:          app.Status,
		}
		grouped[app.Status] = append(grouped[app.Status], item)
	}

	stages := make([]PipelineStage, 0, len(PipelineStages))
	for _, stage := range PipelineStages {
		items := grouped[stage]
		if items == nil {
			items = []PipelineItem{}
		}
		stages = append(stages, PipelineStage{Stage: stage, Count: len(items), Items: items})
	}
	return stages, nil
}

// GetCandidateStats aggregates per-status counts into the dashboard
// buckets; in_progress is the union of all active review/interview states.
func (s *PipelineService) GetCandidateStats(candidateID int) (*CandidateStats, error) {
	counts, err := s.store.CountByStatusForCandidate(candidateID)
	if err != nil {
		return nil, err
	}

	stats := &CandidateStats{
		Submitted: counts[models.StatusSubmitted],
		Offers:    counts[models.StatusOfferExtended],
		Hired:     counts[models.StatusHired],
		Rejected:  counts[models.StatusRejected],
		Withdrawn: counts[models.StatusWithdrawn],
	}
	for _, status := range InProgressStatuses {
		stats.InProgress += counts[status]
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// ListCandidateApplications returns the candidate's own applications with
// the evaluation payload stripped.
func (s *PipelineService) ListCandidateApplications(candidateID int, filters ApplicationFilters, page Page) (*PagedApplications, error) {
	result, err := s.store.ListByCandidate(candidateID, filters, page)
	if err != nil {
		return nil, err
	}
	for i := range result.Applications {
		result.Applications[i] = SanitizeForCandidate(result.Applications[i])
	}
	return result, nil
}

// ListJobApplications requires the actor to own the job (or be admin).
func (s *PipelineService) ListJobApplications(jobID, actorID, actorRole int, filters ApplicationFilters, page Page) (*PagedApplications, error) {
	job, err := s.store.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && job.EmployerID != actorID {
		return nil, ErrForbidden
	}
	return s.store.ListByJob(jobID, filters, page)
}

// GetEmployerApplications lists everything across the employer's jobs.
func (s *PipelineService) GetEmployerApplications(employerID int, filters ApplicationFilters, sort string, page Page) (*PagedApplications, error) {
	return s.store.ListByEmployer(employerID, filters, sort, page)
}
