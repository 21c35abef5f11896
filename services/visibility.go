package services

import "openrole-api/models"

// Visibility policy for candidate-owned profile data. Pure functions, no
// I/O. Rules are evaluated in order, first match wins:
//
//  1. the owner always sees everything
//  2. private/anonymous profiles are hidden from every other viewer
//  3. public profiles are visible to anyone, including anonymous viewers
//  4. semi_private profiles require an authenticated viewer
//
// A nil viewerID means the request is unauthenticated.

// CanView reports whether the viewer may see the record at all.
func CanView(viewerID *int, ownerID int, settings models.PrivacySettings) bool {
	if viewerID != nil && *viewerID == ownerID {
		return true
	}
	switch settings.PrivacyLevel {
	case models.PrivacyPrivate, models.PrivacyAnonymous:
		return false
	case models.PrivacyPublic:
		return true
	case models.PrivacySemiPrivate:
		return viewerID != nil
	}
	// Unknown levels are treated as private.
	return false
}

// FilterProfile returns a copy of the profile reduced to what the viewer may
// see. Structural fields (id, headline, skills, location, verified) are kept
// whenever base visibility passes; toggle-governed fields are dropped when
// their toggle is off. Fields not covered by a toggle default to visible.
func FilterProfile(viewerID *int, profile models.CandidateProfile, settings models.PrivacySettings) models.CandidateProfile {
	if viewerID != nil && *viewerID == profile.UserID {
		return profile
	}

	if !CanView(viewerID, profile.UserID, settings) {
		// Near-empty record: identity only, nothing the owner has locked.
		return models.CandidateProfile{ProfileID: profile.ProfileID, UserID: profile.UserID}
	}

	filtered := profile
	if !settings.ShowContactInfo {
		filtered.Phone = nil
		filtered.ContactEmail = nil
	}
	if !settings.ShowSalary {
		filtered.SalaryExpectation = nil
	}
	if !settings.ShowWorkHistory {
		filtered.WorkHistory = nil
	}
	if !settings.ShowEducation {
		filtered.Education = nil
	}
	if !settings.ShowPortfolio {
		filtered.PortfolioURL = nil
	}
	return filtered
}

// SanitizeForCandidate strips the evaluation payload from an application.
// Evaluation data is employer/admin-only: the owning candidate never sees
// it, regardless of any profile visibility toggles. Rejection feedback is
// kept only when the employer explicitly shared it.
func SanitizeForCandidate(app models.Application) models.Application {
	app.RecruiterRating = nil
	app.HiringManagerRating = nil
	app.TechnicalScore = nil
	app.CultureFitScore = nil
	app.InterviewNotes = nil
	if !app.FeedbackShared {
		app.RejectionReason = nil
	}
	return app
}
