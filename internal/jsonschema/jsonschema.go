// Package jsonschema provides the JSON Schema model used for tool parameter
// declarations and structured-output constraints. It follows the JSON Schema
// standard, supporting the subset of keywords the chat-completion APIs
// understand.
package jsonschema

// Schema represents the structure of a JSON Schema. It is typically supplied
// by the host to describe the expected shape of tool arguments or of a
// schema-constrained response, and is forwarded to the provider verbatim.
type Schema struct {
	// Type specifies the data type (e.g. "object", "array", "string", "number").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of the object, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items defines the schema of array elements for array types.
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls whether undeclared properties are allowed.
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Default value for the parameter.
	Default any `json:"default,omitempty"`
	// Enum contains the list of allowed values for the parameter.
	Enum []any `json:"enum,omitempty"`
	// Ref is used for JSON Schema references to avoid infinite recursion.
	Ref string `json:"$ref,omitempty"`
	// Defs contains reusable schema definitions.
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// Object is a convenience constructor for the common case of an object
// schema with named properties.
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// String returns a string schema with the given description.
func String(description string) *Schema {
	return &Schema{Type: "string", Description: description}
}

// Number returns a number schema with the given description.
func Number(description string) *Schema {
	return &Schema{Type: "number", Description: description}
}
