package auth

import (
	"errors"
	"testing"
	"time"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hashed, err := hasher.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Fatal("expected hash to differ from plain password")
	}

	if err := hasher.Compare(hashed, "s3cret-pass"); err != nil {
		t.Fatalf("Compare returned error for correct password: %v", err)
	}

	err = hasher.Compare(hashed, "wrong-pass")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestJWTManagerIssueAndVerify(t *testing.T) {
	manager, err := NewJWTManager("test-secret", "stats-api", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}

	token, err := manager.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	subject, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("unexpected subject: %s", subject)
	}
}

func TestJWTManagerRejectsExpiredToken(t *testing.T) {
	manager, err := NewJWTManager("test-secret", "stats-api", time.Minute)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}

	issuedAt := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issuedAt }
	token, err := manager.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	manager.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTManagerRejectsTamperedToken(t *testing.T) {
	manager, err := NewJWTManager("test-secret", "stats-api", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}
	other, err := NewJWTManager("other-secret", "stats-api", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}

	token, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestNewJWTManagerValidation(t *testing.T) {
	if _, err := NewJWTManager("", "stats-api", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewJWTManager("secret", "stats-api", 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
