// Package schema builds structured-output JSON schemas and renders the
// two wire shapes: response_format for chat/completions and text.format
// for the responses endpoint.
package schema

import (
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"

	"github.com/oaitools/openaitools-go/apierr"
)

// Definition is a JSON-schema node.
type Definition struct {
	Type                 string                 `json:"type"`
	Description          string                 `json:"description,omitempty"`
	Properties           map[string]*Definition `json:"properties,omitempty"`
	Items                *Definition            `json:"items,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Enum                 []any                  `json:"enum,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
}

// Object returns an object node with additionalProperties pinned false,
// as strict mode requires.
func Object() *Definition {
	f := false
	return &Definition{
		Type:                 "object",
		Properties:           map[string]*Definition{},
		Required:             []string{},
		AdditionalProperties: &f,
	}
}

// Add attaches a property and marks it required.
func (d *Definition) Add(name string, prop *Definition) *Definition {
	d.Properties[name] = prop
	d.Required = append(d.Required, name)
	return d
}

// AddString attaches a required string property.
func (d *Definition) AddString(name, description string) *Definition {
	return d.Add(name, &Definition{Type: "string", Description: description})
}

// AddNumber attaches a required number property.
func (d *Definition) AddNumber(name, description string) *Definition {
	return d.Add(name, &Definition{Type: "number", Description: description})
}

// AddBoolean attaches a required boolean property.
func (d *Definition) AddBoolean(name, description string) *Definition {
	return d.Add(name, &Definition{Type: "boolean", Description: description})
}

// AddArray attaches a required array property with the given item node.
func (d *Definition) AddArray(name, description string, items *Definition) *Definition {
	return d.Add(name, &Definition{Type: "array", Description: description, Items: items})
}

// Schema is a named structured-output schema. Raw holds a pre-rendered
// schema when reflected from a Go type; otherwise Def is used.
type Schema struct {
	Name   string
	Def    *Definition
	Raw    json.RawMessage
	Strict bool
}

// New returns an empty strict object schema.
func New(name string) *Schema {
	return &Schema{Name: name, Def: Object(), Strict: true}
}

// From reflects a schema from a Go type. Struct fields need json tags;
// jsonschema tags refine descriptions and constraints.
func From[T any](name string) (*Schema, error) {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
	}
	var v T
	js := r.Reflect(&v)
	raw, err := json.Marshal(js)
	if err != nil {
		return nil, &apierr.DecodeError{What: "schema reflection", Err: err}
	}
	return &Schema{Name: name, Raw: raw, Strict: true}, nil
}

func (s *Schema) schemaJSON() (json.RawMessage, error) {
	if s.Raw != nil {
		return s.Raw, nil
	}
	return json.Marshal(s.Def)
}

// ChatResponseFormat renders the chat/completions response_format value:
// {"type":"json_schema","json_schema":{name,schema,strict}}.
func (s *Schema) ChatResponseFormat() (any, error) {
	raw, err := s.schemaJSON()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   s.Name,
			"schema": raw,
			"strict": s.Strict,
		},
	}, nil
}

// ResponsesTextFormat renders the responses text.format value:
// {"type":"json_schema","name":...,"schema":...,"strict":...}.
func (s *Schema) ResponsesTextFormat() (any, error) {
	raw, err := s.schemaJSON()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":   "json_schema",
		"name":   s.Name,
		"schema": raw,
		"strict": s.Strict,
	}, nil
}
