// Package render produces the standardized SOP document artifact from a
// validated record. Rendering is deterministic: the same record always
// yields the same document structure and the same output path.
package render

import "github.com/raphaelgruber/sopmigrate-go/internal/schema"

// Fixed document chrome.
const (
	organizationName = "Siemens Digital Industries"
	documentClass    = "Standard Operating Procedure"
	disclaimerText   = "This document was auto-generated by the Siemens AI Document Migration System. " +
		"Please review and approve before use."

	safetyHeading    = "⚠  Safety Warnings & Precautions"
	equipmentHeading = "🔧  Required Equipment"
	stepsHeading     = "📋  Procedure Steps"
)

type blockKind int

const (
	blockTitle blockKind = iota
	blockSubtitle
	blockMeta
	blockSection
	blockWarning
	blockBullet
	blockStep
	blockFooter
)

// block is one structural element of the rendered document. The block
// sequence is the document model; the docx writer only styles it.
type block struct {
	kind  blockKind
	label string // metadata label
	text  string
	num   int // 1-based step number
}

// layout flattens a record into the fixed section order: title block,
// metadata, safety warnings, equipment, numbered steps, disclaimer.
// Empty sequences still contribute their section header. The record is
// read as a value and never mutated.
func layout(rec schema.Record) []block {
	blocks := []block{
		{kind: blockTitle, text: organizationName},
		{kind: blockSubtitle, text: documentClass},
		{kind: blockMeta, label: "Document Title", text: rec.Title},
		{kind: blockMeta, label: "Document ID", text: rec.DocumentID},
		{kind: blockMeta, label: "Version", text: rec.Version},
		{kind: blockMeta, label: "Department", text: rec.Department},
	}

	blocks = append(blocks, block{kind: blockSection, text: safetyHeading})
	for _, w := range rec.SafetyWarnings {
		blocks = append(blocks, block{kind: blockWarning, text: w})
	}

	blocks = append(blocks, block{kind: blockSection, text: equipmentHeading})
	for _, item := range rec.Equipment {
		blocks = append(blocks, block{kind: blockBullet, text: item})
	}

	blocks = append(blocks, block{kind: blockSection, text: stepsHeading})
	for i, step := range rec.Steps {
		blocks = append(blocks, block{kind: blockStep, num: i + 1, text: step})
	}

	blocks = append(blocks, block{kind: blockFooter, text: disclaimerText})

	return blocks
}
