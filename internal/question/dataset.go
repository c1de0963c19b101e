package question

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// Dataset is the serialized form of a question bank, shared by the bundled
// file and the remote source.
type Dataset struct {
	Version   string     `json:"version,omitempty"`
	Questions []Question `json:"questions"`
}

//go:embed data/questions.json
var bundledJSON []byte

// ErrMalformedDataset is returned when a payload does not have the
// dataset shape. The payload is rejected as a whole.
var ErrMalformedDataset = errors.New("malformed question dataset")

// datasetSchema describes the wire shape of a dataset. Semantic checks
// (answer range, unique ids) are done by Validate after decoding.
var datasetSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "type", "prompt", "options", "answerIndex"},
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"type":        map[string]any{"enum": []any{"multiple-choice", "boolean", "code"}},
					"prompt":      map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"code":        map[string]any{"type": "string"},
					"options": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items":    map[string]any{"type": "string"},
					},
					"answerIndex": map[string]any{"type": "integer", "minimum": 0},
					"explanation": map[string]any{"type": "string"},
					"topic":       map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, not Go literals.
		defBytes, err := json.Marshal(datasetSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal dataset schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			schemaErr = fmt.Errorf("parse dataset schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://question-dataset.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}

// Parse decodes and validates a dataset payload. Any structural or
// semantic problem rejects the whole payload.
func Parse(data []byte) (Dataset, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Dataset{}, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedDataset, err)
	}

	schema, err := compiled()
	if err != nil {
		return Dataset{}, fmt.Errorf("compile dataset schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	if ds.Version != "" && !semver.IsValid(ds.Version) {
		return Dataset{}, fmt.Errorf("%w: version %q is not a semantic version", ErrMalformedDataset, ds.Version)
	}
	if err := Validate(ds.Questions); err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}
	return ds, nil
}

// Bundled returns the dataset compiled into the binary.
func Bundled() (Dataset, error) {
	ds, err := Parse(bundledJSON)
	if err != nil {
		return Dataset{}, fmt.Errorf("bundled dataset: %w", err)
	}
	return ds, nil
}

// Supersedes reports whether a dataset at version next may replace one at
// version current. Only a strictly older, well-formed version is refused;
// unversioned datasets always replace.
func Supersedes(current, next string) bool {
	if !semver.IsValid(current) || !semver.IsValid(next) {
		return true
	}
	return semver.Compare(next, current) >= 0
}
