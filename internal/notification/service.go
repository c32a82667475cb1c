package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/core/events"
)

type Repository interface {
	Create(n *Notification) error
	GetByID(id int64) (*Notification, error)
	ListByUser(userID int64, unreadOnly bool, limit, offset int) ([]*Notification, error)
	CountUnread(userID int64) (int64, error)
	Update(n *Notification) error
	MarkAllRead(userID int64) error
}

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterSubscribers attaches the notification handlers to the event
// bus. Decisions and assignments elsewhere in the system fan out here.
func (s *Service) RegisterSubscribers(bus Subscriber) {
	bus.Subscribe(events.EventTypeDrawingApproved, s.onDrawingReviewed)
	bus.Subscribe(events.EventTypeDrawingRejected, s.onDrawingReviewed)
	bus.Subscribe(events.EventTypeDrawingRevisionRequested, s.onDrawingReviewed)
	bus.Subscribe(events.EventTypeSpecApproved, s.onSpecReviewed)
	bus.Subscribe(events.EventTypeSpecRejected, s.onSpecReviewed)
	bus.Subscribe(events.EventTypeTaskAssigned, s.onTaskAssigned)
}

func (s *Service) onDrawingReviewed(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.DrawingReviewedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	n := &Notification{
		UserID:    e.SubmittedBy,
		Kind:      KindDrawingReviewed,
		Title:     fmt.Sprintf("Shop drawing %s", e.Status),
		Body:      reviewBody("Drawing", e.DrawingID, e.Status, e.Note),
		CreatedAt: time.Now(),
	}
	return s.repo.Create(n)
}

func (s *Service) onSpecReviewed(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.SpecReviewedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	n := &Notification{
		UserID:    e.SubmittedBy,
		Kind:      KindSpecReviewed,
		Title:     fmt.Sprintf("Material spec %s", e.Status),
		Body:      reviewBody("Spec", e.SpecID, e.Status, e.Note),
		CreatedAt: time.Now(),
	}
	return s.repo.Create(n)
}

func (s *Service) onTaskAssigned(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.TaskAssignedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	n := &Notification{
		UserID:    e.AssigneeID,
		Kind:      KindTaskAssigned,
		Title:     "Task assigned to you",
		Body:      e.Title,
		CreatedAt: time.Now(),
	}
	return s.repo.Create(n)
}

func reviewBody(noun string, id int64, status, note string) string {
	if note == "" {
		return fmt.Sprintf("%s #%d is now %s.", noun, id, status)
	}
	return fmt.Sprintf("%s #%d is now %s: %s", noun, id, status, note)
}

func (s *Service) ListNotifications(userID int64, unreadOnly bool, limit, offset int) ([]*Notification, error) {
	notifications, err := s.repo.ListByUser(userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list notifications", err)
	}
	return notifications, nil
}

func (s *Service) UnreadCount(userID int64) (int64, error) {
	count, err := s.repo.CountUnread(userID)
	if err != nil {
		return 0, internal.NewInternalError("failed to count notifications", err)
	}
	return count, nil
}

// MarkRead marks one notification read. Users can only touch their own
// notifications.
func (s *Service) MarkRead(id, userID int64) (*Notification, error) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrNotificationNotFound
	}
	if n.UserID != userID {
		return nil, internal.ErrUnauthorizedAccess
	}
	if n.IsRead() {
		return n, nil
	}

	n.MarkRead()
	if err := s.repo.Update(n); err != nil {
		return nil, internal.NewInternalError("failed to mark notification read", err)
	}
	return n, nil
}

func (s *Service) MarkAllRead(userID int64) error {
	if err := s.repo.MarkAllRead(userID); err != nil {
		return internal.NewInternalError("failed to mark notifications read", err)
	}
	return nil
}
