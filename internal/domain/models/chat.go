package models

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// AssistantGreeting opens every conversation transcript.
const AssistantGreeting = "Hello! I'm your Kitchen AI Chef. Ask me anything about your ingredients, recipes, or cooking tips!"

// ChatMessage is one entry of the append-only conversation transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
