// Package extractor builds the migration instruction, invokes the
// extraction capability, and validates the response into a Record.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"github.com/raphaelgruber/sopmigrate-go/internal/schema"
)

// ErrExtraction indicates the capability was unreachable,
// unauthenticated, or returned data that fails schema validation.
// The underlying cause is wrapped; use errors.Is/As to inspect it.
var ErrExtraction = errors.New("structured extraction failed")

// Capability is the external structured-extraction collaborator. It is
// responsible for natural-language understanding; this package is
// responsible for instruction construction and response validation only.
// model selects among capability variants and is passed through as-is.
type Capability interface {
	Complete(ctx context.Context, instruction, model string) (string, error)
}

// extractionTemplate is the fixed instruction sent to the capability,
// with exactly one substitution point: the raw document text, inserted
// verbatim.
const extractionTemplate = `You are a senior Quality Assurance Document Specialist at Siemens Digital Industries.

Your task is to read the following messy, unstructured Standard Operating Procedure (SOP) and extract ALL relevant information into a clean, standardized JSON format.

Rules:
1. "title": Create a professional, standardized title for this procedure.
2. "document_id": Generate a plausible document ID in the format "SOP-YYYY-NNN".
3. "version": Assign version "2.0" (this is the first standardized migration).
4. "department": Infer the responsible department from context.
5. "safety_warnings": Extract EVERY safety warning, caution, danger notice, PPE requirement, and EHS reference. Do NOT miss any. Rewrite each one as a clear, professional, standalone sentence.
6. "equipment": List ALL tools, instruments, and equipment mentioned. Standardize names.
7. "steps": Extract the procedural steps in logical execution order. Clean up language, remove informal tone, and write each step as a clear, actionable instruction.
8. "confidence_score": Rate 1-10 (integer) how confident you are that you captured ALL information from the source document. Be honest: if the source was very messy, a score of 7-8 is fine.

Respond with a single JSON object containing exactly these fields:
"title" (string), "document_id" (string), "version" (string), "department" (string), "safety_warnings" (array of strings), "equipment" (array of strings), "steps" (array of strings), "confidence_score" (integer).

Source Document:
---
{{.document_text}}
---

Extract the data now. Return ONLY the structured JSON.`

var extractionPrompt = prompts.NewPromptTemplate(extractionTemplate, []string{"document_text"})

// Extractor drives one extraction per call. It holds no state between
// invocations.
type Extractor struct {
	capability Capability
	log        *slog.Logger
}

// New creates an extractor backed by the given capability.
func New(capability Capability, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{capability: capability, log: log}
}

// Extract sends the raw document text to the capability and returns the
// validated record. model is the capability variant selector, passed
// through unvalidated. No retries: on failure the caller decides
// whether to re-invoke.
func (e *Extractor) Extract(ctx context.Context, rawText, model string) (schema.Record, error) {
	instruction, err := BuildInstruction(rawText)
	if err != nil {
		return schema.Record{}, fmt.Errorf("%w: build instruction: %v", ErrExtraction, err)
	}

	response, err := e.capability.Complete(ctx, instruction, model)
	if err != nil {
		return schema.Record{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	rec, err := schema.Decode([]byte(stripCodeFence(response)))
	if err != nil {
		return schema.Record{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	e.log.Debug("extract.ok",
		"title", rec.Title,
		"confidence", rec.ConfidenceScore,
		"warnings", len(rec.SafetyWarnings),
		"steps", len(rec.Steps),
	)

	return rec, nil
}

// BuildInstruction renders the fixed instruction template around the
// raw document text.
func BuildInstruction(rawText string) (string, error) {
	return extractionPrompt.Format(map[string]any{"document_text": rawText})
}

// stripCodeFence unwraps a ```json fenced response. Some capability
// variants fence their output even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
