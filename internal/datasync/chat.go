package datasync

import (
	"context"
	"net/http"

	"datasync-console/internal/domain"
)

// SendChatMessage sends a user message with the prior conversation.
func (c *Client) SendChatMessage(ctx context.Context, message string, history []domain.ChatMessage) (*domain.ChatResponse, error) {
	var out domain.ChatResponse
	req := domain.ChatRequest{Message: message, History: history}
	if err := c.do(ctx, http.MethodPost, "/chatbot/message", req, &out, "Failed to send message"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateQuery asks the assistant to draft SQL for a request.
func (c *Client) GenerateQuery(ctx context.Context, message string, history []domain.ChatMessage) (*domain.QueryGenerationResponse, error) {
	var out domain.QueryGenerationResponse
	req := domain.ChatRequest{Message: message, History: history}
	if err := c.do(ctx, http.MethodPost, "/chatbot/generate-query", req, &out, "Failed to generate query"); err != nil {
		return nil, err
	}
	return &out, nil
}
