package domain

import (
	"encoding/json"
	"time"
)

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatFailureReply is stored as the assistant reply when the backend call fails.
const ChatFailureReply = "Sorry, something went wrong. Please try again."

// ChatSuggestions are the starter prompts shown on an empty thread.
var ChatSuggestions = []string{
	"Show me all customers",
	"What tables do I have?",
	"List all schemas in PostgreSQL",
	"How many products are there?",
}

// ChatMessage is one turn of a conversation as sent to the backend.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of a chat or query-generation call.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history,omitempty"`
}

// ToolResult is the raw output of a tool the assistant invoked.
type ToolResult struct {
	ToolName string          `json:"toolName"`
	Data     json.RawMessage `json:"data"`
}

// ChatResponse is the assistant reply.
type ChatResponse struct {
	Message     string       `json:"message"`
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}

// QueryGenerationResponse carries SQL drafted by the assistant.
type QueryGenerationResponse struct {
	Message      string `json:"message"`
	GeneratedSQL string `json:"generatedSQL"`
}

// ChatThread is a locally persisted conversation.
type ChatThread struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoredMessage is a persisted chat turn.
type StoredMessage struct {
	ID          string
	ThreadID    string
	Role        string
	Content     string
	ToolResults []ToolResult
	CreatedAt   time.Time
}
