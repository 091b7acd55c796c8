package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
)

func TestSectionReplaceAndGet(t *testing.T) {
	t.Parallel()
	store := NewSectionStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.GetSection(ctx, "hero"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected not found for missing section, got %v", err)
	}

	document := json.RawMessage(`{"headline":"Welcome","subtitle":"We build things"}`)
	if _, err := store.ReplaceSection(ctx, "hero", document); err != nil {
		t.Fatalf("replace section: %v", err)
	}

	section, err := store.GetSection(ctx, "hero")
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if string(section.Document) != string(document) {
		t.Fatalf("expected stored document back, got %s", section.Document)
	}

	// Replace swaps the whole document.
	replacement := json.RawMessage(`{"headline":"Hello"}`)
	if _, err := store.ReplaceSection(ctx, "hero", replacement); err != nil {
		t.Fatalf("replace section again: %v", err)
	}
	section, err = store.GetSection(ctx, "hero")
	if err != nil {
		t.Fatalf("get section after replace: %v", err)
	}
	if string(section.Document) != string(replacement) {
		t.Fatalf("expected replacement document, got %s", section.Document)
	}
}
