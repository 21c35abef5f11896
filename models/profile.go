package models

import "time"

// PrivacyLevel is the coarse profile-privacy setting.
type PrivacyLevel string

const (
	PrivacyPublic      PrivacyLevel = "public"
	PrivacySemiPrivate PrivacyLevel = "semi_private"
	PrivacyPrivate     PrivacyLevel = "private"
	PrivacyAnonymous   PrivacyLevel = "anonymous"
)

// PrivacySettings is one-to-one with a candidate profile. Created with
// defaults when the profile is created; mutated only by its owner.
type PrivacySettings struct {
	SettingsID   int          `gorm:"primaryKey;column:settings_id" json:"settings_id"`
	ProfileID    int          `gorm:"column:profile_id;unique" json:"profile_id"`
	PrivacyLevel PrivacyLevel `gorm:"column:privacy_level" json:"privacy_level"`

	// Field-visibility toggles. A false toggle hides the field from
	// non-owner viewers; fields without a toggle are always visible once
	// base visibility passes.
	ShowContactInfo bool `gorm:"column:show_contact_info" json:"show_contact_info"`
	ShowSalary      bool `gorm:"column:show_salary" json:"show_salary"`
	ShowWorkHistory bool `gorm:"column:show_work_history" json:"show_work_history"`
	ShowEducation   bool `gorm:"column:show_education" json:"show_education"`
	ShowPortfolio   bool `gorm:"column:show_portfolio" json:"show_portfolio"`

	AllowRecruiterContact bool `gorm:"column:allow_recruiter_contact" json:"allow_recruiter_contact"`
	AllowCompanyContact   bool `gorm:"column:allow_company_contact" json:"allow_company_contact"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
}

// DefaultPrivacySettings returns the settings a new profile starts with.
func DefaultPrivacySettings(profileID int) PrivacySettings {
	return PrivacySettings{
		ProfileID:             profileID,
		PrivacyLevel:          PrivacySemiPrivate,
		ShowContactInfo:       false,
		ShowSalary:            false,
		ShowWorkHistory:       true,
		ShowEducation:         true,
		ShowPortfolio:         true,
		AllowRecruiterContact: true,
		AllowCompanyContact:   true,
	}
}

// CandidateProfile is the candidate-owned record the visibility policy
// filters. Toggle-governed fields are pointers so a filtered copy can drop
// them cleanly from JSON output.
type CandidateProfile struct {
	ProfileID int    `gorm:"primaryKey;column:profile_id" json:"profile_id"`
	UserID    int    `gorm:"column:user_id" json:"user_id"`
	Headline  string `gorm:"column:headline" json:"headline"`
	Skills    string `gorm:"column:skills" json:"skills"`
	Location  string `gorm:"column:location" json:"location"`
	Verified  bool   `gorm:"column:verified" json:"verified"`

	Phone             *string `gorm:"column:phone" json:"phone,omitempty"`
	ContactEmail      *string `gorm:"column:contact_email" json:"contact_email,omitempty"`
	SalaryExpectation *int    `gorm:"column:salary_expectation" json:"salary_expectation,omitempty"`
	WorkHistory       *string `gorm:"column:work_history;type:json" json:"work_history,omitempty"`
	Education         *string `gorm:"column:education;type:json" json:"education,omitempty"`
	PortfolioURL      *string `gorm:"column:portfolio_url" json:"portfolio_url,omitempty"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Settings PrivacySettings `gorm:"foreignKey:ProfileID;references:ProfileID" json:"settings,omitempty"`
}

// TableName overrides
func (PrivacySettings) TableName() string {
	return "privacy_settings"
}

func (CandidateProfile) TableName() string {
	return "candidate_profiles"
}
