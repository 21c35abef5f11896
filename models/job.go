package models

import "time"

// Job carries only what the pipeline core reads: ownership for
// authorization checks and the running applications counter.
type Job struct {
	JobID             int        `gorm:"primaryKey;column:job_id" json:"job_id"`
	EmployerID        int        `gorm:"column:employer_id" json:"employer_id"`
	Title             string     `gorm:"column:title" json:"title"`
	Status            string     `gorm:"column:status" json:"status"`
	ApplicationsCount int        `gorm:"column:applications_count" json:"applications_count"`
	CreateAt          time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt          *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Job) TableName() string {
	return "jobs"
}
