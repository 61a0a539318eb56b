package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/erazemk/trznica/internal/model"
)

// Collection file names within the data directory.
const (
	itemsFile         = "items.json"
	usersFile         = "users.json"
	notificationsFile = "notifications.json"
)

// Sentinel errors surfaced to callers.
var (
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("not the owner")
	ErrDuplicateUser      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("invalid role")
)

// Store persists the marketplace collections as whole JSON documents inside
// a single directory. Every operation re-reads the relevant document,
// mutates it in memory and writes it back; a per-collection mutex serializes
// those read-modify-write cycles within the process.
type Store struct {
	dir string

	itemsMu sync.Mutex
	usersMu sync.Mutex
	inboxMu sync.Mutex
}

// Open prepares a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// itemsDocument is the items.json layout: the listing sequence in insertion
// order plus the persisted id counter.
type itemsDocument struct {
	Items  []model.Item `json:"items"`
	NextID int64        `json:"next_id"`
}

func (s *Store) readItems() (*itemsDocument, error) {
	doc := &itemsDocument{Items: []model.Item{}}
	if err := s.readDocument(itemsFile, doc); err != nil {
		return nil, err
	}
	if doc.Items == nil {
		doc.Items = []model.Item{}
	}
	if doc.NextID <= 0 {
		// Documents written before the counter existed derive it from the
		// highest assigned id.
		doc.NextID = 1
		for _, item := range doc.Items {
			if item.ID >= doc.NextID {
				doc.NextID = item.ID + 1
			}
		}
	}
	return doc, nil
}

func (s *Store) readUsers() (map[string]model.User, error) {
	users := make(map[string]model.User)
	if err := s.readDocument(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) readNotifications() ([]model.Notification, error) {
	notifications := []model.Notification{}
	if err := s.readDocument(notificationsFile, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// readDocument unmarshals a collection file into target. A missing or empty
// backing file leaves target at its collection default.
func (s *Store) readDocument(name string, target any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// writeDocument overwrites a collection file wholesale. The document is
// staged to a temporary file and renamed into place so readers never see a
// partial write.
func (s *Store) writeDocument(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, name+".*")
	if err != nil {
		return fmt.Errorf("staging %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}
