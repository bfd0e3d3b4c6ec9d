// Package tool defines function tools and the parameter schema builder
// shared by the chat, responses and realtime surfaces.
package tool

import "github.com/goccy/go-json"

// Choice controls how the model selects tools.
type Choice string

const (
	ChoiceAuto     Choice = "auto"
	ChoiceNone     Choice = "none"
	ChoiceRequired Choice = "required"
)

// Named forces the model to call one specific function. It marshals as
// the object form of tool_choice.
type Named struct {
	Name string
}

func (n Named) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	}{Type: "function", Function: struct {
		Name string `json:"name"`
	}{Name: n.Name}})
}

// Tool is a callable exposed to the model. Type is "function" for local
// functions or "mcp" for remote MCP servers.
type Tool struct {
	Type        string      `json:"type"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Parameters  *Parameters `json:"parameters,omitempty"`
	Strict      bool        `json:"strict,omitempty"`

	// MCP fields.
	ServerLabel     string `json:"server_label,omitempty"`
	ServerURL       string `json:"server_url,omitempty"`
	RequireApproval string `json:"require_approval,omitempty"`
}

// Function returns a function tool with the given schema.
func Function(name, description string, params *Parameters) Tool {
	return Tool{Type: "function", Name: name, Description: description, Parameters: params}
}

// MCP returns a remote MCP server tool.
func MCP(label, url string) Tool {
	return Tool{Type: "mcp", ServerLabel: label, ServerURL: url, RequireApproval: "never"}
}

// Parameters is a JSON-schema object describing function arguments.
type Parameters struct {
	Type                 string     `json:"type"`
	Properties           Properties `json:"properties"`
	Required             []string   `json:"required"`
	AdditionalProperties bool       `json:"additionalProperties"`
}

// NewParameters returns an empty object schema.
func NewParameters() *Parameters {
	return &Parameters{Type: "object", Properties: Properties{}, Required: []string{}}
}

type Properties map[string]Property

type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
}

func (p *Parameters) add(name string, prop Property, required bool) *Parameters {
	p.Properties[name] = prop
	if required {
		p.Required = append(p.Required, name)
	}
	return p
}

// AddString adds a string property.
func (p *Parameters) AddString(name, description string, required bool) *Parameters {
	return p.add(name, Property{Type: "string", Description: description}, required)
}

// AddEnum adds a string property constrained to the given values.
func (p *Parameters) AddEnum(name, description string, values []string, required bool) *Parameters {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return p.add(name, Property{Type: "string", Description: description, Enum: enum}, required)
}

// AddNumber adds a number property.
func (p *Parameters) AddNumber(name, description string, required bool) *Parameters {
	return p.add(name, Property{Type: "number", Description: description}, required)
}

// AddInteger adds an integer property.
func (p *Parameters) AddInteger(name, description string, required bool) *Parameters {
	return p.add(name, Property{Type: "integer", Description: description}, required)
}

// AddBoolean adds a boolean property.
func (p *Parameters) AddBoolean(name, description string, required bool) *Parameters {
	return p.add(name, Property{Type: "boolean", Description: description}, required)
}
