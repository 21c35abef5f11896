package models

import "time"

// ApplicationStatus is the canonical status enum shared by the transition
// validator, the visibility policy and the repository layer.
type ApplicationStatus string

const (
	StatusSubmitted          ApplicationStatus = "submitted"
	StatusScreening          ApplicationStatus = "screening"
	StatusPhoneInterview     ApplicationStatus = "phone_interview"
	StatusTechnicalInterview ApplicationStatus = "technical_interview"
	StatusFinalInterview     ApplicationStatus = "final_interview"
	StatusReferenceCheck     ApplicationStatus = "reference_check"
	StatusOfferExtended      ApplicationStatus = "offer_extended"
	StatusHired              ApplicationStatus = "hired"
	StatusRejected           ApplicationStatus = "rejected"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
)

// FeedbackType routes employer feedback into the matching rating field.
type FeedbackType string

const (
	FeedbackRecruiter     FeedbackType = "recruiter"
	FeedbackHiringManager FeedbackType = "hiring_manager"
	FeedbackTechnical     FeedbackType = "technical"
	FeedbackCultureFit    FeedbackType = "culture_fit"
)

// InterviewType classifies a scheduled interview round.
type InterviewType string

const (
	InterviewPhone     InterviewType = "phone"
	InterviewTechnical InterviewType = "technical"
	InterviewFinal     InterviewType = "final"
)

// Application represents one candidate's submission to one job.
// At most one row may exist per (job_id, candidate_id) pair.
type Application struct {
	ApplicationID string            `gorm:"primaryKey;column:application_id" json:"application_id"`
	JobID         int               `gorm:"column:job_id;uniqueIndex:uniq_job_candidate" json:"job_id"`
	CandidateID   int               `gorm:"column:candidate_id;uniqueIndex:uniq_job_candidate" json:"candidate_id"`
	ProfileID     *int              `gorm:"column:profile_id" json:"profile_id,omitempty"`
	Status        ApplicationStatus `gorm:"column:status" json:"status"`

	// Submission payload
	CoverLetter   *string `gorm:"column:cover_letter" json:"cover_letter,omitempty"`
	CVFileID      *int    `gorm:"column:cv_file_id" json:"cv_file_id,omitempty"`
	CustomAnswers *string `gorm:"column:custom_answers;type:json" json:"custom_answers,omitempty"`
	Portfolio     *string `gorm:"column:portfolio_items;type:json" json:"portfolio_items,omitempty"`

	// Evaluation payload. Employer/admin only, never returned to candidates.
	RecruiterRating     *int    `gorm:"column:recruiter_rating" json:"recruiter_rating,omitempty"`
	HiringManagerRating *int    `gorm:"column:hiring_manager_rating" json:"hiring_manager_rating,omitempty"`
	TechnicalScore      *int    `gorm:"column:technical_score" json:"technical_score,omitempty"`
	CultureFitScore     *int    `gorm:"column:culture_fit_score" json:"culture_fit_score,omitempty"`
	InterviewNotes      *string `gorm:"column:interview_notes" json:"interview_notes,omitempty"`
	RejectionReason     *string `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	FeedbackShared      bool    `gorm:"column:feedback_shared" json:"feedback_shared"`

	// Interview metadata
	InterviewType        *InterviewType `gorm:"column:interview_type" json:"interview_type,omitempty"`
	InterviewScheduledAt *time.Time     `gorm:"column:interview_scheduled_at" json:"interview_scheduled_at,omitempty"`

	AppliedAt       time.Time  `gorm:"column:applied_at" json:"applied_at"`
	StatusUpdatedAt *time.Time `gorm:"column:status_updated_at" json:"status_updated_at,omitempty"`
	StatusUpdatedBy *int       `gorm:"column:status_updated_by" json:"status_updated_by,omitempty"`
	CreateAt        time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt        time.Time  `gorm:"column:update_at" json:"update_at"`

	// Relations
	Job       Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Candidate User `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}

// ApplicationStatusHistory tracks historical status changes for applications.
// Rows are append-only: created once per transition, never mutated or deleted.
type ApplicationStatusHistory struct {
	HistoryID     string             `gorm:"primaryKey;column:history_id" json:"history_id"`
	ApplicationID string             `gorm:"column:application_id" json:"application_id"`
	FromStatus    *ApplicationStatus `gorm:"column:from_status" json:"from_status"`
	ToStatus      ApplicationStatus  `gorm:"column:to_status" json:"to_status"`
	Notes         *string            `gorm:"column:notes" json:"notes"`
	ChangedBy     int                `gorm:"column:changed_by" json:"changed_by"`
	ChangedAt     time.Time          `gorm:"column:changed_at" json:"changed_at"`
}

// ApplicationFeedback is the append-only record behind AddFeedback.
type ApplicationFeedback struct {
	FeedbackID    string       `gorm:"primaryKey;column:feedback_id" json:"feedback_id"`
	ApplicationID string       `gorm:"column:application_id" json:"application_id"`
	FeedbackType  FeedbackType `gorm:"column:feedback_type" json:"feedback_type"`
	Rating        *int         `gorm:"column:rating" json:"rating,omitempty"`
	Comments      *string      `gorm:"column:comments" json:"comments,omitempty"`
	GivenBy       int          `gorm:"column:given_by" json:"given_by"`
	CreatedAt     time.Time    `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Application) TableName() string {
	return "applications"
}

func (ApplicationStatusHistory) TableName() string {
	return "application_status_history"
}

func (ApplicationFeedback) TableName() string {
	return "application_feedback"
}
