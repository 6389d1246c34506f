package testresult

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const artifactSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["unique", "passed", "failed", "totalRun", "results"],
	"anyOf": [
		{"required": ["current_iteration"]},
		{"required": ["currentIteration"]}
	],
	"properties": {
		"unique": {"type": "integer"},
		"passed": {"type": "integer"},
		"failed": {"type": "integer"},
		"totalRun": {"type": "integer"},
		"current_iteration": {"type": "integer", "minimum": 0},
		"currentIteration": {"type": "integer", "minimum": 0},
		"results": {
			"type": "array",
			"items": {"$ref": "#/definitions/result"}
		}
	},
	"definitions": {
		"result": {
			"type": "object",
			"required": ["name", "iteration", "result"],
			"properties": {
				"name": {"type": "string"},
				"iteration": {"type": "integer", "minimum": 0},
				"result": {"type": "string", "enum": ["passed", "failed"]},
				"startTime": {"type": ["string", "number", "null"]},
				"endTime": {"type": ["string", "number", "null"]},
				"error": {"type": ["string", "null"]}
			}
		}
	}
}`

// DecodeError is returned when the result artifact is malformed or incomplete.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid test result artifact: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid test result artifact: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// artifact mirrors TestRun but keeps both spellings of the iteration counter.
type artifact struct {
	Unique                int      `json:"unique"`
	Passed                int      `json:"passed"`
	Failed                int      `json:"failed"`
	TotalRun              int      `json:"totalRun"`
	CurrentIteration      *int     `json:"current_iteration"`
	CurrentIterationAlias *int     `json:"currentIteration"`
	Results               []Result `json:"results"`
}

// Decode parses a result artifact. Missing required fields are a hard failure, unknown fields are ignored.
func Decode(data []byte) (TestRun, error) {
	schemaLoader := gojsonschema.NewStringLoader(artifactSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return TestRun{}, &DecodeError{Reason: "not well-formed JSON", Err: err}
	}
	if !validation.Valid() {
		var violations []string
		for _, desc := range validation.Errors() {
			violations = append(violations, desc.String())
		}
		return TestRun{}, &DecodeError{Reason: "schema validation failed: " + strings.Join(violations, "; ")}
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return TestRun{}, &DecodeError{Reason: "failed to unmarshal", Err: err}
	}

	currentIteration := a.CurrentIteration
	if currentIteration == nil {
		currentIteration = a.CurrentIterationAlias
	}

	results := a.Results
	if results == nil {
		results = []Result{}
	}

	return TestRun{
		Unique:           a.Unique,
		Passed:           a.Passed,
		Failed:           a.Failed,
		TotalRun:         a.TotalRun,
		CurrentIteration: *currentIteration,
		Results:          results,
	}, nil
}
