package todos

import (
	"encoding/json"
	"fmt"
	"strconv"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/worktravel/internal/model"
)

// Persistence keys.
const (
	KeyToDos   = "@toDos"
	KeyWorking = "@working"
)

// wireRecord is the persisted shape of a record. Category travels as
// the "working" boolean.
type wireRecord struct {
	Text      string `json:"text"`
	Working   bool   `json:"working"`
	Completed bool   `json:"completed"`
}

// Older writers had no "completed" and also stored "editing"; both are
// accepted here and the latter is dropped on the next write.
const toDosSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["text", "working"],
    "properties": {
      "text": {"type": "string"},
      "working": {"type": "boolean"},
      "completed": {"type": "boolean"},
      "editing": {"type": "boolean"}
    }
  }
}`

var toDosValidator = jsonschema.MustCompileString("worktravel-todos.json", toDosSchema)

// EncodeRecords serializes the full mapping.
func EncodeRecords(records map[string]model.Record) (string, error) {
	wire := make(map[string]wireRecord, len(records))
	for id, r := range records {
		wire[id] = wireRecord{
			Text:      r.Text,
			Working:   r.Category.Working(),
			Completed: r.Completed,
		}
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// DecodeRecords parses and validates a persisted mapping.
func DecodeRecords(s string) (map[string]model.Record, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := toDosValidator.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	var wire map[string]wireRecord
	if err := json.Unmarshal([]byte(s), &wire); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	out := make(map[string]model.Record, len(wire))
	for id, w := range wire {
		out[id] = model.Record{
			ID:        id,
			Text:      w.Text,
			Category:  model.CategoryFromWorking(w.Working),
			Completed: w.Completed,
		}
	}
	return out, nil
}

// EncodeMode serializes the mode as a bare boolean.
func EncodeMode(c model.Category) string {
	return strconv.FormatBool(c.Working())
}

// DecodeMode parses a bare boolean.
func DecodeMode(s string) (model.Category, error) {
	var working bool
	if err := json.Unmarshal([]byte(s), &working); err != nil {
		return model.Work, fmt.Errorf("json unmarshal: %w", err)
	}
	return model.CategoryFromWorking(working), nil
}
