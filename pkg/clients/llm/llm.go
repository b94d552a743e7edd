// Package llm holds the provider-neutral request shape shared by the model clients.
package llm

import "context"

// Type is a JSON schema value type.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema declares the JSON shape a response must follow.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Role identifies who authored a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one prior message of a conversation.
type Turn struct {
	Role Role
	Text string
}

// Image is inline binary input sent alongside the prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request is a single generation call.
type Request struct {
	System  string
	Prompt  string
	Image   *Image
	Schema  *Schema
	History []Turn
}

// Model generates text for a request. When Schema is set the returned text is expected to be JSON.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)
}
