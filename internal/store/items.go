package store

import (
	"context"
	"fmt"

	"github.com/erazemk/trznica/internal/model"
)

// ListItems returns all listings in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]model.Item, error) {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()

	doc, err := s.readItems()
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return doc.Items, nil
}

// GetItem returns the listing with the given id, or nil if absent.
func (s *Store) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()

	doc, err := s.readItems()
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	for i := range doc.Items {
		if doc.Items[i].ID == id {
			item := doc.Items[i]
			return &item, nil
		}
	}
	return nil, nil
}

// CreateItem validates the draft, assigns the next id from the persisted
// counter and appends the listing. The counter only ever moves forward, so
// ids stay unique and strictly increasing across deletes.
func (s *Store) CreateItem(ctx context.Context, draft model.ItemDraft, owner, image string) (*model.Item, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()

	doc, err := s.readItems()
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	item := model.Item{
		ID:          doc.NextID,
		Name:        draft.Name,
		Description: draft.Description,
		Quantity:    draft.Quantity,
		Price:       draft.Price,
		Location:    draft.Location,
		Image:       image,
		Owner:       owner,
	}
	doc.NextID++
	doc.Items = append(doc.Items, item)

	if err := s.writeDocument(itemsFile, doc); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	return &item, nil
}

// DeleteItem removes caller's listing with the given id. Returns ErrNotFound
// if no listing matches and ErrNotOwner when caller does not own it.
func (s *Store) DeleteItem(ctx context.Context, id int64, caller string) error {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()

	doc, err := s.readItems()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	for i := range doc.Items {
		if doc.Items[i].ID != id {
			continue
		}
		if doc.Items[i].Owner != caller {
			return ErrNotOwner
		}
		doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
		if err := s.writeDocument(itemsFile, doc); err != nil {
			return fmt.Errorf("deleting item: %w", err)
		}
		return nil
	}
	return ErrNotFound
}
