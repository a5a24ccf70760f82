package todos

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolist/internal/model"
)

//go:embed todos.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("todos.schema.json", schemaJSON)

// ShapeError reports persisted bytes that are not a todo collection.
type ShapeError struct {
	Path    string // JSON pointer of the offending value, "" for the root
	Message string
}

func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid todo list at %s: %s", e.Path, e.Message)
	}
	return "invalid todo list: " + e.Message
}

// Encode serializes the full collection.
func Encode(list []model.Todo) ([]byte, error) {
	if list == nil {
		list = []model.Todo{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a persisted collection, preserving its order. Empty input
// and a JSON null decode to an empty list. Anything not matching the
// schema, or carrying duplicate ids, is a *ShapeError.
func Decode(b []byte) ([]model.Todo, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return []model.Todo{}, nil
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &ShapeError{Message: err.Error()}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var list []model.Todo
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, &ShapeError{Message: err.Error()}
	}
	seen := make(map[int]int, len(list))
	for i, t := range list {
		if j, dup := seen[t.ID]; dup {
			return nil, &ShapeError{
				Path:    fmt.Sprintf("/%d/id", i),
				Message: fmt.Sprintf("duplicate id %d (also at /%d)", t.ID, j),
			}
		}
		seen[t.ID] = i
	}
	return list, nil
}

// schemaError reduces a validation tree to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ShapeError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ShapeError{Path: ve.InstanceLocation, Message: ve.Message}
}
