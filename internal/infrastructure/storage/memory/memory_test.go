package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/worksync/session-agent/internal/core/ports"
)

func TestStorage_RoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Get(ctx, "auth-token"); !errors.Is(err, ports.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	_ = s.Set(ctx, "auth-token", "tok")
	_ = s.Set(ctx, "user", "{}")

	if v, err := s.Get(ctx, "auth-token"); err != nil || v != "tok" {
		t.Fatalf("unexpected value %q, %v", v, err)
	}
	if err := s.Delete(ctx, "auth-token", "user", "missing"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := s.Get(ctx, "user"); !errors.Is(err, ports.ErrKeyNotFound) {
		t.Fatalf("expected key deleted, got %v", err)
	}
}
