package client

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var mediaSchema = map[string]any{
	"type":     "object",
	"required": []string{"name", "url"},
	"properties": map[string]any{
		"name": map[string]any{"type": "string", "minLength": 1},
		"url":  map[string]any{"type": "string"},
	},
}

var questionSchema = map[string]any{
	"type":     "object",
	"required": []string{"question", "options", "correctOptionIndex"},
	"properties": map[string]any{
		"question": map[string]any{"type": "string"},
		"options": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string"},
		},
		"correctOptionIndex": map[string]any{"type": "integer", "minimum": 0},
	},
}

var moduleSchema = map[string]any{
	"type":     "object",
	"required": []string{"id", "title", "videos", "books", "questions", "requiredScorePercent", "isActive"},
	"properties": map[string]any{
		"id":                   map[string]any{"type": "integer", "minimum": 1},
		"title":                map[string]any{"type": "string", "minLength": 1},
		"description":          map[string]any{"type": "string"},
		"videos":               map[string]any{"type": "array", "items": mediaSchema},
		"books":                map[string]any{"type": "array", "items": mediaSchema},
		"questions":            map[string]any{"type": "array", "items": questionSchema},
		"requiredScorePercent": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"isActive":             map[string]any{"type": "boolean"},
	},
}

// catalogSchema describes the data payload of GET /trainings.
var catalogSchema = map[string]any{
	"type":     "object",
	"required": []string{"trainings"},
	"properties": map[string]any{
		"trainings": map[string]any{"type": "array", "items": moduleSchema},
	},
}

// trainingSchema describes the data payload of GET /trainings/:id.
var trainingSchema = map[string]any{
	"type":     "object",
	"required": []string{"training"},
	"properties": map[string]any{
		"training": moduleSchema,
	},
}

var (
	catalogValidator  = &payloadSchema{name: "catalog", definition: catalogSchema}
	trainingValidator = &payloadSchema{name: "training", definition: trainingSchema}
)

// payloadSchema compiles its definition on first use.
type payloadSchema struct {
	name       string
	definition map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

func (p *payloadSchema) validate(raw json.RawMessage) error {
	p.once.Do(func() {
		p.compiled, p.err = compile(p.name, p.definition)
	})
	if p.err != nil {
		return p.err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := p.compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compile(name string, definition map[string]any) (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
}
