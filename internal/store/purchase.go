package store

import (
	"context"
	"fmt"

	"github.com/erazemk/trznica/internal/model"
)

// Placeholders used when a listing is missing optional text fields.
const (
	unknownQuantity = "unknown quantity"
	unknownLocation = "Unknown Location"
)

// Receipt confirms a completed purchase. Location is surfaced to the buyer
// as a confirmation hint; Owner and Message feed the live inbox push.
type Receipt struct {
	ItemID   int64
	Location string
	Owner    string
	Message  string
}

// PurchaseMessage composes the owner's notification text for a purchase.
func PurchaseMessage(buyer string, item model.Item) string {
	quantity := item.Quantity
	if quantity == "" {
		quantity = unknownQuantity
	}
	location := item.Location
	if location == "" {
		location = unknownLocation
	}
	return fmt.Sprintf("%s has ordered %s of %s from %s.", buyer, quantity, item.Name, location)
}

// Purchase removes a listing and notifies its owner. An unknown id returns
// ErrNotFound with no side effects. The notification is persisted before the
// listing is removed: a failure between the two writes leaves a stray
// notification rather than an unannounced sale.
func (s *Store) Purchase(ctx context.Context, id int64, buyer string) (*Receipt, error) {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()

	doc, err := s.readItems()
	if err != nil {
		return nil, fmt.Errorf("purchasing item: %w", err)
	}

	idx := -1
	for i := range doc.Items {
		if doc.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	item := doc.Items[idx]

	notification := model.Notification{
		Owner:   item.Owner,
		Message: PurchaseMessage(buyer, item),
		Read:    false,
	}
	if err := s.appendNotification(notification); err != nil {
		return nil, fmt.Errorf("recording purchase notification: %w", err)
	}

	doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
	if err := s.writeDocument(itemsFile, doc); err != nil {
		return nil, fmt.Errorf("removing purchased item: %w", err)
	}

	return &Receipt{
		ItemID:   item.ID,
		Location: item.Location,
		Owner:    item.Owner,
		Message:  notification.Message,
	}, nil
}
