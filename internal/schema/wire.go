package schema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchemaJSON mirrors Record's field constraints for the wire
// format the extraction capability returns. It is the machine-checkable
// half of the contract; Validate() on the decoded Record is the other.
const recordSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "StructuredProcedureRecord",
  "type": "object",
  "required": [
    "title", "document_id", "version", "department",
    "safety_warnings", "equipment", "steps", "confidence_score"
  ],
  "properties": {
    "title":       {"type": "string", "minLength": 1},
    "document_id": {"type": "string", "minLength": 1},
    "version":     {"type": "string", "minLength": 1},
    "department":  {"type": "string", "minLength": 1},
    "safety_warnings": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "equipment": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "steps": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "confidence_score": {"type": "integer", "minimum": 1, "maximum": 10}
  }
}`

var recordSchema = jsonschema.MustCompileString("sop-record.json", recordSchemaJSON)

// Decode validates raw capability output against the record schema and
// coerces it into a typed Record. The returned record additionally
// passes Validate(), so callers can rely on every invariant holding.
func Decode(data []byte) (Record, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Record{}, fmt.Errorf("%w: response is not valid JSON: %v", ErrInvalidRecord, err)
	}

	if err := recordSchema.Validate(v); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	// Schema validation above catches wire-level problems; this catches
	// whitespace-only strings the JSON Schema minLength cannot see.
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}

	return rec, nil
}
