// Package chat keeps assistant conversations in local threads.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"datasync-console/internal/domain"
)

// Conversation is a thread with its messages in order.
type Conversation struct {
	Thread   domain.ChatThread
	Messages []domain.StoredMessage
}

// Service sends chat turns to the assistant and stores them.
type Service struct {
	backend domain.AssistantBackend
	repo    domain.ChatRepository
	logger  *slog.Logger
}

// NewService creates a chat Service.
func NewService(backend domain.AssistantBackend, repo domain.ChatRepository, logger *slog.Logger) *Service {
	return &Service{backend: backend, repo: repo, logger: logger}
}

// Suggestions returns the starter prompts for an empty thread.
func (s *Service) Suggestions() []string {
	out := make([]string, len(domain.ChatSuggestions))
	copy(out, domain.ChatSuggestions)
	return out
}

// NewThread starts an empty thread. Its title is set by the first message.
func (s *Service) NewThread(ctx context.Context) (*domain.ChatThread, error) {
	return s.repo.CreateThread(ctx, &domain.ChatThread{})
}

// Threads lists threads by most recent activity.
func (s *Service) Threads(ctx context.Context, page domain.PageRequest) ([]domain.ChatThread, int64, error) {
	return s.repo.ListThreads(ctx, page)
}

// Conversation loads a thread and its messages.
func (s *Service) Conversation(ctx context.Context, threadID string) (*Conversation, error) {
	t, err := s.repo.GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.repo.ListMessages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return &Conversation{Thread: *t, Messages: msgs}, nil
}

// DeleteThread deletes a thread and its messages.
func (s *Service) DeleteThread(ctx context.Context, threadID string) error {
	return s.repo.DeleteThread(ctx, threadID)
}

// Send stores the user's message, asks the assistant with the prior turns as
// history and stores the reply. When the assistant call fails the stored
// reply is domain.ChatFailureReply and the error is only logged.
func (s *Service) Send(ctx context.Context, threadID, text string) (*domain.StoredMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrValidation("message is required")
	}
	if _, err := s.repo.GetThread(ctx, threadID); err != nil {
		return nil, err
	}

	prior, err := s.repo.ListMessages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	history := make([]domain.ChatMessage, 0, len(prior))
	for _, m := range prior {
		history = append(history, domain.ChatMessage{Role: m.Role, Content: m.Content})
	}

	if _, err := s.repo.AppendMessage(ctx, &domain.StoredMessage{
		ThreadID: threadID,
		Role:     domain.RoleUser,
		Content:  text,
	}); err != nil {
		return nil, fmt.Errorf("store user message: %w", err)
	}

	reply := &domain.StoredMessage{ThreadID: threadID, Role: domain.RoleAssistant}
	resp, err := s.backend.SendChatMessage(ctx, text, history)
	if err != nil {
		s.logger.ErrorContext(ctx, "chat message failed", "thread", threadID, "error", err)
		reply.Content = domain.ChatFailureReply
	} else {
		reply.Content = resp.Message
		reply.ToolResults = resp.ToolResults
	}

	stored, err := s.repo.AppendMessage(ctx, reply)
	if err != nil {
		return nil, fmt.Errorf("store assistant reply: %w", err)
	}
	return stored, nil
}
