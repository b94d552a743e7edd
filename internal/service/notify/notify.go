package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/service/kitchen"
)

// AlertTitle heads every expiry alert.
const AlertTitle = "KitchenWiz Alert"

// Alert is one message delivered to the user.
type Alert struct {
	Title string
	Body  string
}

// Sender delivers alerts to the user.
type Sender interface {
	Send(ctx context.Context, alert Alert) error
}

// Session tracks whether the user was already alerted. Starting a new session resets it.
type Session struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	Notified  bool      `json:"notified"`
}

// Service sends at most one expiry alert per session, and only when alerts are permitted.
type Service struct {
	mu        sync.Mutex
	sender    Sender
	permitted bool
	session   Session
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a notifier. permitted mirrors the user's grant; without it nothing is sent.
func NewService(sender Sender, permitted bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		sender:    sender,
		permitted: permitted,
		logger:    logger,
		now:       time.Now,
	}
	s.session = s.newSession()
	return s
}

func (s *Service) newSession() Session {
	return Session{ID: uuid.New().String(), StartedAt: s.now()}
}

// StartSession begins a new session so the next check may alert again.
func (s *Service) StartSession() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = s.newSession()
	s.logger.Info("notification session started", zap.String("session", s.session.ID))
	return s.session
}

// Session returns the current session.
func (s *Service) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// CheckExpiring alerts about items expiring within the next days if this session has not
// been alerted yet. It reports whether an alert was sent.
func (s *Service) CheckExpiring(ctx context.Context, inventory []models.Ingredient) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.permitted || s.session.Notified {
		return false, nil
	}
	expiring := kitchen.ExpiringSoon(inventory, s.now())
	if len(expiring) == 0 {
		return false, nil
	}

	alert := Alert{Title: AlertTitle, Body: ExpiryMessage(len(expiring))}
	if err := s.sender.Send(ctx, alert); err != nil {
		return false, fmt.Errorf("send expiry alert: %w", err)
	}
	s.session.Notified = true
	s.logger.Info("expiry alert sent", zap.Int("expiring", len(expiring)), zap.String("session", s.session.ID))
	return true, nil
}

// Observe adapts CheckExpiring to a kitchen inventory observer; failures are logged.
func (s *Service) Observe(ctx context.Context, inventory []models.Ingredient) {
	if _, err := s.CheckExpiring(ctx, inventory); err != nil {
		s.logger.Warn("expiry check failed", zap.Error(err))
	}
}

// ExpiryMessage is the alert body for count expiring items.
func ExpiryMessage(count int) string {
	return fmt.Sprintf("%d items are expiring soon! Check your inventory to avoid waste.", count)
}
