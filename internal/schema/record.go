// Package schema defines the standardized SOP record and what it means
// for extracted data to be valid.
package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Confidence score bounds. A score outside this range is a validation
// failure, never silently clamped.
const (
	MinConfidence = 1
	MaxConfidence = 10
)

// FixedVersion is the version tag assigned to every first standardized
// migration of a legacy document.
const FixedVersion = "2.0"

// ErrInvalidRecord indicates extracted data that does not satisfy the
// SOP schema. Use errors.Is() to check for it in calling code.
var ErrInvalidRecord = errors.New("record does not satisfy the SOP schema")

// documentIDPattern is the suggested shape of generated document IDs,
// e.g. "SOP-2024-001". It is a formatting hint: the ID is synthesized
// by the extraction capability, so validation does not enforce it.
var documentIDPattern = regexp.MustCompile(`^SOP-\d{4}-\d{3}$`)

// Record is the validated structured form of a migrated SOP.
//
// A Record is constructed exactly once per extraction and never mutated
// afterwards; rendering reads it as a value. Sequence order is
// meaningful and preserved end-to-end, steps in particular carry
// execution order.
type Record struct {
	// Title is the standardized, professional title of the procedure.
	Title string `json:"title"`

	// DocumentID is a plausible document identifier (e.g. SOP-2024-001).
	// Uniqueness is not enforced here.
	DocumentID string `json:"document_id"`

	// Version is the standardized version tag (e.g. "2.0").
	Version string `json:"version"`

	// Department is the responsible department or area.
	Department string `json:"department"`

	// SafetyWarnings lists every safety precaution and warning found in
	// the source, rewritten as standalone sentences. May be empty.
	SafetyWarnings []string `json:"safety_warnings"`

	// Equipment lists all tools, instruments and equipment required.
	Equipment []string `json:"equipment"`

	// Steps lists the procedure steps in execution order.
	Steps []string `json:"steps"`

	// ConfidenceScore is the capability's self-assessed completeness
	// estimate in [1,10]. It is reported, not verified.
	ConfidenceScore int `json:"confidence_score"`
}

// Validate reports whether the record fully satisfies the schema.
// Every field must be present and non-empty (sequences may be empty,
// but their entries may not be), and the confidence score must be in
// range. All failures wrap ErrInvalidRecord.
func (r Record) Validate() error {
	for _, f := range []struct{ name, val string }{
		{"title", r.Title},
		{"document_id", r.DocumentID},
		{"version", r.Version},
		{"department", r.Department},
	} {
		if strings.TrimSpace(f.val) == "" {
			return fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidRecord, f.name)
		}
	}

	for _, seq := range []struct {
		name    string
		entries []string
	}{
		{"safety_warnings", r.SafetyWarnings},
		{"equipment", r.Equipment},
		{"steps", r.Steps},
	} {
		for i, entry := range seq.entries {
			if strings.TrimSpace(entry) == "" {
				return fmt.Errorf("%w: %s[%d] is empty", ErrInvalidRecord, seq.name, i)
			}
		}
	}

	if r.ConfidenceScore < MinConfidence || r.ConfidenceScore > MaxConfidence {
		return fmt.Errorf("%w: confidence_score %d outside [%d,%d]",
			ErrInvalidRecord, r.ConfidenceScore, MinConfidence, MaxConfidence)
	}

	return nil
}

// MatchesIDPattern reports whether the document ID follows the
// suggested SOP-YYYY-NNN shape. Informational only.
func (r Record) MatchesIDPattern() bool {
	return documentIDPattern.MatchString(r.DocumentID)
}
