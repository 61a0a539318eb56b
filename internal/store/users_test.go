package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/trznica/internal/model"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	if err := s.RegisterUser(ctx, "alice", "pw1", model.RoleFarmer); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	role, err := s.Authenticate(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if role != model.RoleFarmer {
		t.Errorf("expected role 'farmer', got %q", role)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	s.RegisterUser(ctx, "alice", "pw1", model.RoleFarmer)

	if _, err := s.Authenticate(ctx, "alice", "pw2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Authenticate(ctx, "bob", "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterDuplicateKeepsFirstCredential(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	if err := s.RegisterUser(ctx, "alice", "pw1", model.RoleFarmer); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if err := s.RegisterUser(ctx, "alice", "pw2", model.RoleBuyer); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}

	// The original credential stays authoritative.
	role, err := s.Authenticate(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Authenticate with original password: %v", err)
	}
	if role != model.RoleFarmer {
		t.Errorf("expected role 'farmer', got %q", role)
	}
	if _, err := s.Authenticate(ctx, "alice", "pw2"); err == nil {
		t.Error("second signup's password should not authenticate")
	}
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	s := NewTestStore(t)

	err := s.RegisterUser(context.Background(), "alice", "pw1", "admin")
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterRejectsEmptyCredentials(t *testing.T) {
	s := NewTestStore(t)
	ctx := context.Background()

	if err := s.RegisterUser(ctx, "", "pw", model.RoleFarmer); err == nil {
		t.Error("expected error for empty username")
	}
	if err := s.RegisterUser(ctx, "alice", "", model.RoleFarmer); err == nil {
		t.Error("expected error for empty password")
	}
}
