package kitchen

import (
	"context"
	"fmt"
	"strings"

	"github.com/mamadbah2/kitchen/internal/domain/models"
)

func (s *Service) greeting() models.ChatMessage {
	return models.ChatMessage{
		ID:        s.newID(),
		Role:      models.RoleModel,
		Text:      models.AssistantGreeting,
		Timestamp: s.now(),
	}
}

// Transcript returns the conversation so far, oldest first.
func (s *Service) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.chat...)
}

// SendChat appends the user's message, asks the assistant and appends its reply. The reply
// is always appended, falling back to a canned answer when the assistant is unavailable.
func (s *Service) SendChat(ctx context.Context, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, fmt.Errorf("%w: chat message must not be blank", models.ErrInvalidInput)
	}

	s.mu.Lock()
	history := append([]models.ChatMessage(nil), s.chat...)
	inventory := cloneIngredients(s.inventory)
	s.chat = append(s.chat, models.ChatMessage{
		ID:        s.newID(),
		Role:      models.RoleUser,
		Text:      text,
		Timestamp: s.now(),
	})
	token := s.requests.begin(OpChat, s.now())
	s.mu.Unlock()

	reply := s.ai.Chat(ctx, history, text, inventory)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests.finish(OpChat, token, nil, s.now())
	msg := models.ChatMessage{
		ID:        s.newID(),
		Role:      models.RoleModel,
		Text:      reply,
		Timestamp: s.now(),
	}
	s.chat = append(s.chat, msg)
	return msg, nil
}
