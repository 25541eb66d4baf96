// Package service orchestrates the end-to-end SOP migration pipeline:
// read raw text, extract a structured record, render the artifact.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/raphaelgruber/sopmigrate-go/internal/reader"
	"github.com/raphaelgruber/sopmigrate-go/internal/render"
	"github.com/raphaelgruber/sopmigrate-go/internal/schema"
)

// Extractor turns raw document text into a validated record. Satisfied
// by *extractor.Extractor; tests supply a stub.
type Extractor interface {
	Extract(ctx context.Context, rawText, model string) (schema.Record, error)
}

// MigrationService runs migrations. It holds no state between
// invocations; each call owns its own record instance.
type MigrationService struct {
	extractor Extractor
	outDir    string
	log       *slog.Logger
}

// NewMigrationService creates a migration service writing artifacts to
// outDir.
func NewMigrationService(extractor Extractor, outDir string, log *slog.Logger) *MigrationService {
	if log == nil {
		log = slog.Default()
	}
	return &MigrationService{extractor: extractor, outDir: outDir, log: log}
}

// Input identifies one document to migrate.
type Input struct {
	// Path to the input document.
	Path string
	// Kind is the declared input format.
	Kind reader.Kind
	// Model selects the extraction-capability variant; empty means the
	// capability's default.
	Model string
}

// Result is the outcome of one migration.
type Result struct {
	// InvocationID correlates log lines of a single pipeline run.
	InvocationID string
	Record       schema.Record
	ArtifactPath string
	// RawText is kept so a failed or unsatisfying extraction can be
	// re-invoked without re-reading the input.
	RawText string
	Elapsed time.Duration
}

// Migrate runs the full pipeline for one document. The three stages run
// as one synchronous sequence; the extraction call blocks for its
// duration.
func (s *MigrationService) Migrate(ctx context.Context, in Input) (*Result, error) {
	raw, err := reader.Read(in.Path, in.Kind)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return s.MigrateText(ctx, raw, in.Model)
}

// MigrateText runs extraction and rendering over already-read raw text.
// Callers retrying after an extraction failure use this to avoid
// re-reading the input.
func (s *MigrationService) MigrateText(ctx context.Context, rawText, model string) (*Result, error) {
	id := uuid.NewString()
	start := time.Now()

	s.log.Info("migrate.start", "invocation_id", id, "raw_chars", len(rawText), "model", model)

	rec, err := s.extractor.Extract(ctx, rawText, model)
	if err != nil {
		s.log.Error("migrate.extract.failed", "invocation_id", id, "error", err)
		return nil, err
	}

	path, err := render.Render(rec, s.outDir)
	if err != nil {
		s.log.Error("migrate.render.failed", "invocation_id", id, "error", err)
		return nil, err
	}

	elapsed := time.Since(start)
	s.log.Info("migrate.ok",
		"invocation_id", id,
		"title", rec.Title,
		"document_id", rec.DocumentID,
		"confidence", rec.ConfidenceScore,
		"warnings", len(rec.SafetyWarnings),
		"equipment", len(rec.Equipment),
		"steps", len(rec.Steps),
		"artifact", path,
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return &Result{
		InvocationID: id,
		Record:       rec,
		ArtifactPath: path,
		RawText:      rawText,
		Elapsed:      elapsed,
	}, nil
}

// Render produces a fresh artifact from an already-extracted record,
// e.g. after the caller changed the output directory. The record is
// consumed as-is; rendering the same record again overwrites the same
// path.
func (s *MigrationService) Render(rec schema.Record) (string, error) {
	return render.Render(rec, s.outDir)
}
