package services

import (
	"errors"
	"strings"
	"time"

	"openrole-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplicationFilters narrows list queries.
type ApplicationFilters struct {
	Status *models.ApplicationStatus
	JobID  *int
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

func (p Page) normalized() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 || p.Size > 100 {
		p.Size = 20
	}
	return p
}

func (p Page) offset() int { return (p.Number - 1) * p.Size }

// PagedApplications is one page of results plus the unpaged total.
type PagedApplications struct {
	Applications []models.Application `json:"applications"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	PerPage      int                  `json:"per_page"`
}

// ApplicationStore owns persistence for application records and their
// history. Mutating operations are atomic per application: the read of the
// current status, the legality check and the write share one transaction so
// concurrent writers are serialized by the storage layer.
type ApplicationStore interface {
	Create(app *models.Application) error
	GetByID(id string) (*models.Application, error)
	ListByIDs(ids []string) ([]models.Application, error)
	ListByCandidate(candidateID int, filters ApplicationFilters, page Page) (*PagedApplications, error)
	ListByJob(jobID int, filters ApplicationFilters, page Page) (*PagedApplications, error)
	ListByEmployer(employerID int, filters ApplicationFilters, sort string, page Page) (*PagedApplications, error)
	ListForPipeline(employerID int, jobID *int) ([]models.Application, error)
	CountByStatusForCandidate(candidateID int) (map[models.ApplicationStatus]int64, error)

	TransitionStatus(id string, to models.ApplicationStatus, actorID int, notes *string, mutate func(*models.Application)) (*models.Application, models.ApplicationStatus, error)
	Withdraw(id string, candidateID int) (*models.Application, bool, error)
	AddFeedback(id string, feedback *models.ApplicationFeedback, mutate func(*models.Application)) (*models.Application, error)
	HistoryByApplication(id string) ([]models.ApplicationStatusHistory, error)

	GetJob(jobID int) (*models.Job, error)
	IncrementJobApplications(jobID int) error
	GetProfileWithSettings(userID int) (*models.CandidateProfile, error)
}

type gormApplicationStore struct {
	db *gorm.DB
}

// NewApplicationStore wraps a gorm connection in the ApplicationStore
// contract.
func NewApplicationStore(db *gorm.DB) ApplicationStore {
	return &gormApplicationStore{db: db}
}

func (s *gormApplicationStore) Create(app *models.Application) error {
	var count int64
	if err := s.db.Model(&models.Application{}).
		Where("job_id = ? AND candidate_id = ?", app.JobID, app.CandidateID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateApplication
	}

	now := time.Now()
	if app.ApplicationID == "" {
		app.ApplicationID = uuid.NewString()
	}
	app.Status = models.StatusSubmitted
	app.AppliedAt = now
	app.CreateAt = now
	app.UpdateAt = now

	if err := s.db.Create(app).Error; err != nil {
		// The unique index on (job_id, candidate_id) is the authority; the
		// count above only avoids burning an id in the common case.
		if strings.Contains(err.Error(), "Duplicate entry") || errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (s *gormApplicationStore) GetByID(id string) (*models.Application, error) {
	var app models.Application
	err := s.db.Preload("Job").Preload("Candidate").
		Where("application_id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (s *gormApplicationStore) ListByIDs(ids []string) ([]models.Application, error) {
	var apps []models.Application
	if len(ids) == 0 {
		return apps, nil
	}
	err := s.db.Preload("Job").Where("application_id IN ?", ids).Find(&apps).Error
	return apps, err
}

func applyFilters(query *gorm.DB, filters ApplicationFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("applications.status = ?", *filters.Status)
	}
	if filters.JobID != nil {
		query = query.Where("applications.job_id = ?", *filters.JobID)
	}
	return query
}

func (s *gormApplicationStore) paginate(query *gorm.DB, page Page) (*PagedApplications, error) {
	page = page.normalized()

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var apps []models.Application
	if err := query.Limit(page.Size).Offset(page.offset()).Find(&apps).Error; err != nil {
		return nil, err
	}

	return &PagedApplications{
		Applications: apps,
		Total:        total,
		Page:         page.Number,
		PerPage:      page.Size,
	}, nil
}

func (s *gormApplicationStore) ListByCandidate(candidateID int, filters ApplicationFilters, page Page) (*PagedApplications, error) {
	query := s.db.Model(&models.Application{}).Preload("Job").
		Where("candidate_id = ?", candidateID).
		Order("applied_at DESC")
	return s.paginate(applyFilters(query, filters), page)
}

func (s *gormApplicationStore) ListByJob(jobID int, filters ApplicationFilters, page Page) (*PagedApplications, error) {
	query := s.db.Model(&models.Application{}).Preload("Candidate").
		Where("job_id = ?", jobID).
		Order("applied_at DESC")
	return s.paginate(applyFilters(query, filters), page)
}

var employerSortColumns = map[string]string{
	"applied_at":       "applications.applied_at DESC",
	"status":           "applications.status ASC",
	"recruiter_rating": "applications.recruiter_rating DESC",
}

func (s *gormApplicationStore) ListByEmployer(employerID int, filters ApplicationFilters, sort string, page Page) (*PagedApplications, error) {
	order, ok := employerSortColumns[sort]
	if !ok {
		order = employerSortColumns["applied_at"]
	}
	query := s.db.Model(&models.Application{}).Preload("Job").Preload("Candidate").
		Joins("JOIN jobs ON jobs.job_id = applications.job_id").
		Where("jobs.employer_id = ?", employerID).
		Order(order)
	return s.paginate(applyFilters(query, filters), page)
}

func (s *gormApplicationStore) ListForPipeline(employerID int, jobID *int) ([]models.Application, error) {
	query := s.db.Model(&models.Application{}).Preload("Job").Preload("Candidate").
		Joins("JOIN jobs ON jobs.job_id = applications.job_id").
		Where("jobs.employer_id = ?", employerID).
		Where("applications.status <> ?", models.StatusWithdrawn).
		Order("applications.applied_at ASC")
	if jobID != nil {
		query = query.Where("applications.job_id = ?", *jobID)
	}
	var apps []models.Application
	err := query.Find(&apps).Error
	return apps, err
}

func (s *gormApplicationStore) CountByStatusForCandidate(candidateID int) (map[models.ApplicationStatus]int64, error) {
	type row struct {
		Status models.ApplicationStatus
		Count  int64
	}
	var rows []row
	err := s.db.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Where("candidate_id = ?", candidateID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// TransitionStatus performs the locked read, the legality check and the
// write in one single-row transaction, then appends the history entry.
func (s *gormApplicationStore) TransitionStatus(id string, to models.ApplicationStatus, actorID int, notes *string, mutate func(*models.Application)) (*models.Application, models.ApplicationStatus, error) {
	var updated models.Application
	var from models.ApplicationStatus

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ?", id).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		from = app.Status
		if err := ValidateTransition(from, to); err != nil {
			return err
		}

		now := time.Now()
		app.Status = to
		app.StatusUpdatedAt = &now
		app.StatusUpdatedBy = &actorID
		app.UpdateAt = now
		if mutate != nil {
			mutate(&app)
		}

		if err := tx.Save(&app).Error; err != nil {
			return err
		}

		history := models.ApplicationStatusHistory{
			HistoryID:     uuid.NewString(),
			ApplicationID: app.ApplicationID,
			FromStatus:    &from,
			ToStatus:      to,
			Notes:         notes,
			ChangedBy:     actorID,
			ChangedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		updated = app
		return nil
	})
	if err != nil {
		return nil, from, err
	}
	return &updated, from, nil
}

// Withdraw is candidate-initiated and sits outside the employer-driven
// graph. The bool result reports whether the status actually changed; a
// second withdraw on an already-withdrawn application no-ops without
// appending history.
func (s *gormApplicationStore) Withdraw(id string, candidateID int) (*models.Application, bool, error) {
	var updated models.Application
	changed := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ?", id).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if app.CandidateID != candidateID {
			return ErrOwnershipMismatch
		}
		if app.Status == models.StatusWithdrawn {
			updated = app
			return nil
		}
		if app.Status == models.StatusHired || app.Status == models.StatusRejected {
			return ErrIllegalWithdrawal
		}

		now := time.Now()
		from := app.Status
		app.Status = models.StatusWithdrawn
		app.StatusUpdatedAt = &now
		app.StatusUpdatedBy = &candidateID
		app.UpdateAt = now
		if err := tx.Save(&app).Error; err != nil {
			return err
		}

		history := models.ApplicationStatusHistory{
			HistoryID:     uuid.NewString(),
			ApplicationID: app.ApplicationID,
			FromStatus:    &from,
			ToStatus:      models.StatusWithdrawn,
			ChangedBy:     candidateID,
			ChangedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		updated = app
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &updated, changed, nil
}

// AddFeedback applies the rating mutation and appends the immutable
// feedback record in one transaction. The application status is untouched.
func (s *gormApplicationStore) AddFeedback(id string, feedback *models.ApplicationFeedback, mutate func(*models.Application)) (*models.Application, error) {
	var updated models.Application

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("application_id = ?", id).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		app.UpdateAt = time.Now()
		if mutate != nil {
			mutate(&app)
		}
		if err := tx.Save(&app).Error; err != nil {
			return err
		}

		feedback.FeedbackID = uuid.NewString()
		feedback.ApplicationID = app.ApplicationID
		feedback.CreatedAt = time.Now()
		if err := tx.Create(feedback).Error; err != nil {
			return err
		}

		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *gormApplicationStore) HistoryByApplication(id string) ([]models.ApplicationStatusHistory, error) {
	var history []models.ApplicationStatusHistory
	err := s.db.Where("application_id = ?", id).
		Order("changed_at ASC").Find(&history).Error
	return history, err
}

func (s *gormApplicationStore) GetJob(jobID int) (*models.Job, error) {
	var job models.Job
	err := s.db.Where("job_id = ? AND delete_at IS NULL", jobID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (s *gormApplicationStore) IncrementJobApplications(jobID int) error {
	return s.db.Model(&models.Job{}).
		Where("job_id = ?", jobID).
		UpdateColumn("applications_count", gorm.Expr("applications_count + ?", 1)).Error
}

func (s *gormApplicationStore) GetProfileWithSettings(userID int) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	err := s.db.Preload("Settings").
		Where("user_id = ? AND delete_at IS NULL", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
