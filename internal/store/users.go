package store

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/trznica/internal/model"
)

// RegisterUser creates a credential record with a fixed role. Returns
// ErrDuplicateUser when the username is already taken; the existing record
// is left untouched.
func (s *Store) RegisterUser(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}
	if !model.ValidRole(role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return fmt.Errorf("registering user: %w", err)
	}
	if _, exists := users[username]; exists {
		return ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	users[username] = model.User{PasswordHash: string(hash), Role: role}
	if err := s.writeDocument(usersFile, users); err != nil {
		return fmt.Errorf("registering user: %w", err)
	}
	return nil
}

// Authenticate verifies a password and returns the stored role. Unknown
// usernames and wrong passwords both return ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, username, password string) (string, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return "", fmt.Errorf("authenticating user: %w", err)
	}

	user, exists := users[username]
	if !exists {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return user.Role, nil
}
