package categories

import (
	"testing"
	"time"

	"github.com/anumeetkumar/restaurants-booking/persist"
)

func newTestStore(t *testing.T) (*Store, persist.KV) {
	t.Helper()
	kv := persist.NewMemoryKV()
	s, err := NewStore(kv)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, kv
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestAddThenGetByID(t *testing.T) {
	s, _ := newTestStore(t)

	cat, err := s.Add(CategoryInput{Name: "Veg Buffet", Description: "All vegetarian", PricePerPlate: 15.00})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if cat.ID == "" {
		t.Fatal("expected generated id")
	}
	if cat.CreatedAt.IsZero() || cat.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be stamped")
	}
	if cat.UpdatedAt.Before(cat.CreatedAt) {
		t.Fatal("updatedAt must not precede createdAt")
	}

	got, ok := s.GetByID(cat.ID)
	if !ok {
		t.Fatal("expected to find the category")
	}
	if got.Name != "Veg Buffet" || got.Description != "All vegetarian" || got.PricePerPlate != 15.00 {
		t.Fatalf("fields do not match input: %+v", got)
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	s, _ := newTestStore(t)
	cat, _ := s.Add(CategoryInput{Name: "Veg Buffet", Description: "desc", PricePerPlate: 15})

	time.Sleep(5 * time.Millisecond)
	updated, err := s.Update(cat.ID, CategoryPatch{PricePerPlate: floatPtr(18.50)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.PricePerPlate != 18.50 {
		t.Fatalf("expected new price, got %v", updated.PricePerPlate)
	}
	if updated.Name != "Veg Buffet" || updated.Description != "desc" {
		t.Fatal("unpatched fields must keep their prior values")
	}
	if !updated.CreatedAt.Equal(cat.CreatedAt) {
		t.Fatal("createdAt must never change")
	}
	if !updated.UpdatedAt.After(cat.UpdatedAt) {
		t.Fatal("updatedAt must be refreshed on update")
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(CategoryInput{Name: "a", Description: "b", PricePerPlate: 1})

	if _, err := s.Update("missing", CategoryPatch{Name: strPtr("x")}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)
	cat, _ := s.Add(CategoryInput{Name: "a", Description: "b", PricePerPlate: 1})

	if err := s.Delete(cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.GetByID(cat.ID); ok {
		t.Fatal("expected category to be gone")
	}

	// deleting an unknown id is a harmless no-op
	if err := s.Delete("missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if len(s.All()) != 0 {
		t.Fatal("collection must be unchanged")
	}
}

func TestRehydrateFromSlot(t *testing.T) {
	s, kv := newTestStore(t)
	cat, _ := s.Add(CategoryInput{Name: "Seafood", Description: "coastal", PricePerPlate: 32.5})

	reloaded, err := NewStore(kv)
	if err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	got, ok := reloaded.GetByID(cat.ID)
	if !ok {
		t.Fatal("expected record after rehydrate")
	}
	if got.Name != cat.Name || got.PricePerPlate != cat.PricePerPlate {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	// timestamps must come back as real times, not strings
	if !got.CreatedAt.Equal(cat.CreatedAt) || !got.UpdatedAt.Equal(cat.UpdatedAt) {
		t.Fatalf("timestamp round trip mismatch: %v vs %v", got.CreatedAt, cat.CreatedAt)
	}
}

func TestIDsAreUnique(t *testing.T) {
	s, _ := newTestStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		cat, err := s.Add(CategoryInput{Name: "n", Description: "d", PricePerPlate: 1})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if seen[cat.ID] {
			t.Fatalf("duplicate id generated: %s", cat.ID)
		}
		seen[cat.ID] = true
	}
}
