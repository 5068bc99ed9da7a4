package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rently/rently-client/internal/core/domain"
)

func TestSaveRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, zerolog.Nop())
	ctx := context.Background()

	identity := &domain.Identity{
		ID:     "7",
		Name:   "Cesar",
		Role:   domain.RoleLandlord,
		Secret: domain.PlainSecret("hunter2"),
	}
	if err := store.Save(ctx, identity); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A second store over the same directory simulates a process restart.
	restored, err := NewStore(dir, zerolog.Nop()).Restore(ctx)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored == nil {
		t.Fatalf("expected a restored session")
	}
	if restored.ID != "7" || restored.Name != "Cesar" || restored.Role != domain.RoleLandlord {
		t.Fatalf("unexpected restored identity: %+v", restored)
	}

	data, err := os.ReadFile(filepath.Join(dir, sessionFile))
	if err != nil {
		t.Fatalf("reading slot: %v", err)
	}
	if strings.Contains(string(data), "hunter2") {
		t.Fatalf("credential must not be persisted, got %s", data)
	}
}

func TestRestoreMissingSlot(t *testing.T) {
	store := NewStore(t.TempDir(), zerolog.Nop())
	restored, err := store.Restore(context.Background())
	if err != nil || restored != nil {
		t.Fatalf("missing slot must restore to empty, got %+v, %v", restored, err)
	}
}

func TestRestoreCorruptSlot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, sessionFile), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("writing corrupt slot: %v", err)
	}

	restored, err := NewStore(dir, zerolog.Nop()).Restore(context.Background())
	if err != nil || restored != nil {
		t.Fatalf("corrupt slot must restore to empty, got %+v, %v", restored, err)
	}
}

func TestRestoreUnknownRole(t *testing.T) {
	dir := t.TempDir()
	payload := []byte(`{"id":"1","name":"Ana","role":"Admin"}`)
	if err := os.WriteFile(filepath.Join(dir, sessionFile), payload, 0o600); err != nil {
		t.Fatalf("writing slot: %v", err)
	}

	restored, err := NewStore(dir, zerolog.Nop()).Restore(context.Background())
	if err != nil || restored != nil {
		t.Fatalf("unknown role must restore to empty, got %+v, %v", restored, err)
	}
}

func TestStorageUnavailable(t *testing.T) {
	store := NewStore("", zerolog.Nop())
	ctx := context.Background()

	identity := &domain.Identity{ID: "1", Name: "Ana", Role: domain.RoleTenant}
	if err := store.Save(ctx, identity); err != nil {
		t.Fatalf("Save without storage must be a no-op, got %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear without storage must be a no-op, got %v", err)
	}
	if restored, err := store.Restore(ctx); err != nil || restored != nil {
		t.Fatalf("Restore without storage must be empty, got %+v, %v", restored, err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, zerolog.Nop())
	ctx := context.Background()

	identity := &domain.Identity{ID: "1", Name: "Ana", Role: domain.RoleTenant}
	if err := store.Save(ctx, identity); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear must succeed, got %v", err)
	}
	if restored, _ := store.Restore(ctx); restored != nil {
		t.Fatalf("slot should be empty after clear")
	}
}
