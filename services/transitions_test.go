package services

import (
	"errors"
	"testing"

	"openrole-api/models"
)

var allStatuses = []models.ApplicationStatus{
	models.StatusSubmitted,
	models.StatusScreening,
	models.StatusPhoneInterview,
	models.StatusTechnicalInterview,
	models.StatusFinalInterview,
	models.StatusReferenceCheck,
	models.StatusOfferExtended,
	models.StatusHired,
	models.StatusRejected,
	models.StatusWithdrawn,
}

var allowedEdges = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusSubmitted:          {models.StatusScreening, models.StatusRejected},
	models.StatusScreening:          {models.StatusPhoneInterview, models.StatusRejected},
	models.StatusPhoneInterview:     {models.StatusTechnicalInterview, models.StatusFinalInterview, models.StatusRejected},
	models.StatusTechnicalInterview: {models.StatusFinalInterview, models.StatusRejected},
	models.StatusFinalInterview:     {models.StatusReferenceCheck, models.StatusOfferExtended, models.StatusRejected},
	models.StatusReferenceCheck:     {models.StatusOfferExtended, models.StatusRejected},
	models.StatusOfferExtended:      {models.StatusHired, models.StatusRejected},
}

func edgeAllowed(from, to models.ApplicationStatus) bool {
	for _, t := range allowedEdges[from] {
		if t == to {
			return true
		}
	}
	return false
}

func TestParseStatus_ValidValues(t *testing.T) {
	for _, s := range allStatuses {
		got, err := ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValues(t *testing.T) {
	for _, s := range []string{"", "SUBMITTED", "interview", "offer", "unknown"} {
		if _, err := ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

// Every (from, to) pair across the full status set must agree with the
// allowed-edges table: anything absent is rejected with an error naming
// the attempted pair.
func TestValidateTransition_FullClosure(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := ValidateTransition(from, to)
			if edgeAllowed(from, to) {
				if err != nil {
					t.Errorf("ValidateTransition(%s, %s) = %v, want nil", from, to, err)
				}
				continue
			}

			if err == nil {
				t.Errorf("ValidateTransition(%s, %s) = nil, want InvalidTransitionError", from, to)
				continue
			}
			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Errorf("ValidateTransition(%s, %s) returned %T, want *InvalidTransitionError", from, to, err)
				continue
			}
			if invalid.From != from || invalid.To != to {
				t.Errorf("InvalidTransitionError names (%s, %s), want (%s, %s)",
					invalid.From, invalid.To, from, to)
			}
		}
	}
}

func TestTerminalStatuses_NoOutgoingTransitions(t *testing.T) {
	terminals := []models.ApplicationStatus{
		models.StatusHired, models.StatusRejected, models.StatusWithdrawn,
	}
	for _, from := range terminals {
		if !IsTerminalStatus(from) {
			t.Errorf("IsTerminalStatus(%s) = false, want true", from)
		}
		for _, to := range allStatuses {
			if IsTransitionAllowed(from, to) {
				t.Errorf("IsTransitionAllowed(%s, %s) = true, terminal states must have no outgoing transitions", from, to)
			}
		}
	}
}

func TestNonTerminalStatuses(t *testing.T) {
	for from := range allowedEdges {
		if IsTerminalStatus(from) {
			t.Errorf("IsTerminalStatus(%s) = true for a state with outgoing edges", from)
		}
	}
}

func TestPipelineStages_FixedNineStageOrdering(t *testing.T) {
	if len(PipelineStages) != 9 {
		t.Fatalf("PipelineStages has %d stages, want 9", len(PipelineStages))
	}
	for _, stage := range PipelineStages {
		if stage == models.StatusWithdrawn {
			t.Error("withdrawn must not appear on the pipeline board")
		}
	}
	if PipelineStages[0] != models.StatusSubmitted {
		t.Errorf("first stage = %s, want submitted", PipelineStages[0])
	}
	if PipelineStages[8] != models.StatusRejected {
		t.Errorf("last stage = %s, want rejected", PipelineStages[8])
	}
}

func TestInterviewStageFor(t *testing.T) {
	cases := []struct {
		in   models.InterviewType
		want models.ApplicationStatus
	}{
		{models.InterviewPhone, models.StatusPhoneInterview},
		{models.InterviewTechnical, models.StatusTechnicalInterview},
		{models.InterviewFinal, models.StatusFinalInterview},
	}
	for _, tc := range cases {
		got, err := InterviewStageFor(tc.in)
		if err != nil {
			t.Errorf("InterviewStageFor(%s) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("InterviewStageFor(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := InterviewStageFor("onsite"); err == nil {
		t.Error("InterviewStageFor(\"onsite\") expected error, got nil")
	}
}
