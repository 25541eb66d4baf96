package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/sopmigrate-go/internal/schema"
)

func sampleRecord() schema.Record {
	return schema.Record{
		Title:           "Valve Operation",
		DocumentID:      "SOP-2024-001",
		Version:         "2.0",
		Department:      "Manufacturing",
		SafetyWarnings:  []string{"Wear gloves"},
		Equipment:       []string{},
		Steps:           []string{"Open valve.", "Close valve."},
		ConfidenceScore: 8,
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		version string
		want    string
	}{
		{"plain", "Valve Operation", "2.0", "Valve_Operation_v2.0.docx"},
		{"special chars stripped", "Pump #4 (Main!) Startup", "2.0", "Pump_4_Main_Startup_v2.0.docx"},
		{"hyphens kept", "Lock-out Tag-out", "2.0", "Lock-out_Tag-out_v2.0.docx"},
		{"whitespace collapsed", "A   B\t C", "2.0", "A_B_C_v2.0.docx"},
		{"leading and trailing space", "  Edge  ", "2.0", "Edge_v2.0.docx"},
		{
			"long title truncated",
			strings.Repeat("Calibration ", 10),
			"2.0",
			// 50 chars of sanitized title, then the version tag.
			"Calibration_Calibration_Calibration_Calibration_Ca_v2.0.docx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename(tt.title, tt.version)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilenameTitleBound(t *testing.T) {
	got := Filename(strings.Repeat("x", 200), "2.0")
	title := strings.TrimSuffix(got, "_v2.0.docx")
	assert.Len(t, []rune(title), maxTitleLen)
}

func TestLayoutSectionOrder(t *testing.T) {
	blocks := layout(sampleRecord())

	var kinds []blockKind
	for _, b := range blocks {
		kinds = append(kinds, b.kind)
	}

	want := []blockKind{
		blockTitle, blockSubtitle,
		blockMeta, blockMeta, blockMeta, blockMeta,
		blockSection, blockWarning,
		blockSection, // equipment header, zero items
		blockSection, blockStep, blockStep,
		blockFooter,
	}
	assert.Equal(t, want, kinds)
}

func TestLayoutMetadataOrder(t *testing.T) {
	blocks := layout(sampleRecord())

	var labels []string
	for _, b := range blocks {
		if b.kind == blockMeta {
			labels = append(labels, b.label)
		}
	}
	assert.Equal(t, []string{"Document Title", "Document ID", "Version", "Department"}, labels)
}

func TestLayoutSteps(t *testing.T) {
	rec := sampleRecord()
	rec.Steps = []string{"First.", "Second.", "Third."}
	blocks := layout(rec)

	var steps []string
	for _, b := range blocks {
		if b.kind == blockStep {
			steps = append(steps, fmt.Sprintf("Step %d: %s", b.num, b.text))
		}
	}

	// Numbering is 1-based and contiguous, one entry per step, in order.
	assert.Equal(t, []string{
		"Step 1: First.",
		"Step 2: Second.",
		"Step 3: Third.",
	}, steps)
}

func TestLayoutWarningsVerbatimInOrder(t *testing.T) {
	rec := sampleRecord()
	rec.SafetyWarnings = []string{
		"Wear safety goggles at all times.",
		"Disconnect power before servicing.",
		"Refer to EHS directive 42.",
	}
	blocks := layout(rec)

	var warnings []string
	for _, b := range blocks {
		if b.kind == blockWarning {
			warnings = append(warnings, b.text)
		}
	}
	assert.Equal(t, rec.SafetyWarnings, warnings)
}

func TestLayoutEmptySectionsKeepHeaders(t *testing.T) {
	rec := sampleRecord()
	rec.SafetyWarnings = nil
	rec.Equipment = nil
	rec.Steps = nil
	blocks := layout(rec)

	var sections []string
	for _, b := range blocks {
		if b.kind == blockSection {
			sections = append(sections, b.text)
		}
	}
	assert.Equal(t, []string{safetyHeading, equipmentHeading, stepsHeading}, sections)

	for _, b := range blocks {
		assert.NotContains(t, []blockKind{blockWarning, blockBullet, blockStep}, b.kind)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	rec := sampleRecord()
	assert.Equal(t, layout(rec), layout(rec), "same record must yield the same document model")
}

func TestRenderWritesArtifact(t *testing.T) {
	dir := t.TempDir()

	path, err := Render(sampleRecord(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Valve_Operation_v2.0.docx"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderOverwritesSamePath(t *testing.T) {
	dir := t.TempDir()

	first, err := Render(sampleRecord(), dir)
	require.NoError(t, err)
	second, err := Render(sampleRecord(), dir)
	require.NoError(t, err)

	// Same sanitized title and version map to the same path; the second
	// render silently overwrites, last writer wins.
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRenderCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	_, err := Render(sampleRecord(), dir)
	require.NoError(t, err)
}

func TestRenderUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := Render(sampleRecord(), filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, ErrRender)
}

func TestRenderDoesNotMutateRecord(t *testing.T) {
	rec := sampleRecord()
	before := rec

	_, err := Render(rec, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, before, rec)
}
