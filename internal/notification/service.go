package notification

import (
	"context"
	"time"

	"laundry-be/internal/apperr"
	"laundry-be/internal/utils"
)

type Service interface {
	Notify(ctx context.Context, userID *string, kind, title, message, priority string) (*Notification, error)
	List(ctx context.Context, viewer utils.Identity) ([]*Notification, error)
	UnreadCount(ctx context.Context, viewer utils.Identity) (int64, error)
	MarkRead(ctx context.Context, viewer utils.Identity, id string) error
	MarkAllRead(ctx context.Context, viewer utils.Identity) error
	Delete(ctx context.Context, viewer utils.Identity, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Notify stores one notification; a nil userID broadcasts to everyone.
func (s *service) Notify(ctx context.Context, userID *string, kind, title, message, priority string) (*Notification, error) {
	if priority == "" {
		priority = PriorityMedium
	}
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return nil, apperr.Validation("priority must be one of: low medium high")
	}

	n := &Notification{
		ID:        utils.NewID("NOTIF"),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Priority:  priority,
		CreatedAt: s.now(),
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) List(ctx context.Context, viewer utils.Identity) ([]*Notification, error) {
	return s.repo.ListForViewer(ctx, viewer.ID, listLimit)
}

func (s *service) UnreadCount(ctx context.Context, viewer utils.Identity) (int64, error) {
	return s.repo.UnreadCount(ctx, viewer.ID)
}

func (s *service) MarkRead(ctx context.Context, viewer utils.Identity, id string) error {
	return s.repo.MarkRead(ctx, id, viewer.ID, viewer.IsAdmin())
}

func (s *service) MarkAllRead(ctx context.Context, viewer utils.Identity) error {
	return s.repo.MarkAllRead(ctx, viewer.ID)
}

func (s *service) Delete(ctx context.Context, viewer utils.Identity, id string) error {
	return s.repo.Delete(ctx, id, viewer.ID, viewer.IsAdmin())
}
