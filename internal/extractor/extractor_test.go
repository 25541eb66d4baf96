package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/sopmigrate-go/internal/schema"
)

const validResponse = `{
	"title": "Valve Operation",
	"document_id": "SOP-2024-001",
	"version": "2.0",
	"department": "Manufacturing",
	"safety_warnings": ["Wear gloves"],
	"equipment": [],
	"steps": ["Open valve.", "Close valve."],
	"confidence_score": 8
}`

// stubCapability records the instruction and model it was invoked with
// and returns a canned response.
type stubCapability struct {
	response    string
	err         error
	instruction string
	model       string
	calls       int
}

func (s *stubCapability) Complete(_ context.Context, instruction, model string) (string, error) {
	s.calls++
	s.instruction = instruction
	s.model = model
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestBuildInstruction(t *testing.T) {
	raw := "Wear gloves. Step 1: open valve. Step 2: close valve."
	instruction, err := BuildInstruction(raw)
	require.NoError(t, err)

	// The raw text is inserted verbatim, untruncated.
	assert.Contains(t, instruction, raw)

	// The instruction mandates every extraction rule.
	for _, want := range []string{
		"safety_warnings",
		"SOP-YYYY-NNN",
		`Assign version "2.0"`,
		"PPE requirement",
		"confidence_score",
		"7-8 is fine",
		"Return ONLY the structured JSON",
	} {
		assert.Contains(t, instruction, want)
	}
}

func TestBuildInstructionDeterministic(t *testing.T) {
	a, err := BuildInstruction("some document")
	require.NoError(t, err)
	b, err := BuildInstruction("some document")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtract(t *testing.T) {
	stub := &stubCapability{response: validResponse}
	ext := New(stub, nil)

	rec, err := ext.Extract(context.Background(), "raw sop text", "gpt-4o")
	require.NoError(t, err)

	assert.Equal(t, "Valve Operation", rec.Title)
	assert.Equal(t, []string{"Open valve.", "Close valve."}, rec.Steps)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "gpt-4o", stub.model, "model selector is passed through as-is")
	assert.Contains(t, stub.instruction, "raw sop text")
}

func TestExtractFencedResponse(t *testing.T) {
	stub := &stubCapability{response: "```json\n" + validResponse + "\n```"}
	ext := New(stub, nil)

	rec, err := ext.Extract(context.Background(), "raw", "")
	require.NoError(t, err)
	assert.Equal(t, "SOP-2024-001", rec.DocumentID)
}

func TestExtractCapabilityFailure(t *testing.T) {
	stub := &stubCapability{err: errors.New("401 unauthorized")}
	ext := New(stub, nil)

	_, err := ext.Extract(context.Background(), "raw", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)

	// No retry: one invocation, the caller decides whether to re-invoke.
	assert.Equal(t, 1, stub.calls)
}

func TestExtractMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "I could not process that document."},
		{"missing fields", `{"title": "X"}`},
		{"score out of range", `{
			"title": "T", "document_id": "SOP-2024-001", "version": "2.0",
			"department": "QA", "safety_warnings": [], "equipment": [],
			"steps": ["Do."], "confidence_score": 11}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := New(&stubCapability{response: tt.response}, nil)
			_, err := ext.Extract(context.Background(), "raw", "")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExtraction)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"anonymous fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestExtractReturnsValidatedRecord(t *testing.T) {
	stub := &stubCapability{response: validResponse}
	ext := New(stub, nil)

	rec, err := ext.Extract(context.Background(), "raw", "")
	require.NoError(t, err)
	require.NoError(t, rec.Validate())
	assert.IsType(t, schema.Record{}, rec)
}
