package store

import (
	"context"
	"fmt"

	"github.com/erazemk/trznica/internal/model"
)

// NotificationsFor returns owner's inbox entries in append order.
func (s *Store) NotificationsFor(ctx context.Context, owner string) ([]model.Notification, error) {
	s.inboxMu.Lock()
	defer s.inboxMu.Unlock()

	all, err := s.readNotifications()
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	mine := []model.Notification{}
	for _, n := range all {
		if n.Owner == owner {
			mine = append(mine, n)
		}
	}
	return mine, nil
}

// ClearNotificationsFor removes all of owner's inbox entries. Entries of
// other owners are kept in their original order.
func (s *Store) ClearNotificationsFor(ctx context.Context, owner string) error {
	s.inboxMu.Lock()
	defer s.inboxMu.Unlock()

	all, err := s.readNotifications()
	if err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}

	remaining := []model.Notification{}
	for _, n := range all {
		if n.Owner != owner {
			remaining = append(remaining, n)
		}
	}
	if len(remaining) == len(all) {
		return nil
	}
	if err := s.writeDocument(notificationsFile, remaining); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}
	return nil
}

// appendNotification persists one new inbox entry. Callers must not hold
// inboxMu.
func (s *Store) appendNotification(n model.Notification) error {
	s.inboxMu.Lock()
	defer s.inboxMu.Unlock()

	all, err := s.readNotifications()
	if err != nil {
		return err
	}
	all = append(all, n)
	return s.writeDocument(notificationsFile, all)
}
