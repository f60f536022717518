package bookings_test

import (
	"strings"
	"testing"
	"time"

	"github.com/anumeetkumar/restaurants-booking/bookings"
	"github.com/anumeetkumar/restaurants-booking/persist"
	"github.com/anumeetkumar/restaurants-booking/qr"
)

func newTestStore(t *testing.T) (*bookings.Store, persist.KV) {
	t.Helper()
	kv := persist.NewMemoryKV()
	s, err := bookings.NewStore(kv, qr.BookingPayload)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, kv
}

func TestAddStampsDefaultsAndQRCode(t *testing.T) {
	s, _ := newTestStore(t)

	b, err := s.Add(bookings.BookingInput{Name: "Alice", Phone: "5551234567", NoOfPersons: 4, CategoryID: "cat-1"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if b.ID == "" {
		t.Fatal("expected generated id")
	}
	if b.CheckedIn {
		t.Fatal("new booking must start unchecked")
	}
	if b.QRCode != qr.CheckInPrefix+b.ID {
		t.Fatalf("QR payload must embed the new id: %s", b.QRCode)
	}
	if b.CreatedAt.IsZero() || b.UpdatedAt.Before(b.CreatedAt) {
		t.Fatalf("bad timestamps: %v %v", b.CreatedAt, b.UpdatedAt)
	}

	got, ok := s.GetByID(b.ID)
	if !ok {
		t.Fatal("expected booking by returned id")
	}
	if got.Name != "Alice" || got.Phone != "5551234567" || got.NoOfPersons != 4 || got.CategoryID != "cat-1" {
		t.Fatalf("fields do not match input: %+v", got)
	}
}

func TestCheckInIsOneWayAndIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	b, _ := s.Add(bookings.BookingInput{Name: "Bob", Phone: "555", NoOfPersons: 2, CategoryID: "cat"})

	first, err := s.CheckIn(b.ID)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if !first.CheckedIn {
		t.Fatal("expected checkedIn after check-in")
	}

	time.Sleep(5 * time.Millisecond)
	second, err := s.CheckIn(b.ID)
	if err != nil {
		t.Fatalf("repeat check in: %v", err)
	}
	if !second.CheckedIn {
		t.Fatal("repeat check-in must keep checkedIn true")
	}
	// repeat check-in still advances updatedAt, same as any update
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatal("expected updatedAt to advance on repeat check-in")
	}
}

func TestCheckInUnknownID(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.CheckIn("missing"); err != bookings.ErrNotFound {
		t.Fatalf("expected bookings.ErrNotFound, got %v", err)
	}
}

func TestUpdateDoesNotTouchCheckedIn(t *testing.T) {
	s, _ := newTestStore(t)
	b, _ := s.Add(bookings.BookingInput{Name: "Cara", Phone: "555", NoOfPersons: 3, CategoryID: "cat"})
	s.CheckIn(b.ID)

	name := "Cara M."
	updated, err := s.Update(b.ID, bookings.BookingPatch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.CheckedIn {
		t.Fatal("update must never reset checkedIn")
	}
	if updated.Name != "Cara M." || updated.Phone != "555" {
		t.Fatalf("partial update wrong: %+v", updated)
	}
}

func TestDeleteReachableFromEitherState(t *testing.T) {
	s, _ := newTestStore(t)
	unchecked, _ := s.Add(bookings.BookingInput{Name: "a", Phone: "1", NoOfPersons: 1, CategoryID: "c"})
	checked, _ := s.Add(bookings.BookingInput{Name: "b", Phone: "2", NoOfPersons: 1, CategoryID: "c"})
	s.CheckIn(checked.ID)

	if err := s.Delete(unchecked.ID); err != nil {
		t.Fatalf("delete unchecked: %v", err)
	}
	if err := s.Delete(checked.ID); err != nil {
		t.Fatalf("delete checked: %v", err)
	}
	if len(s.All()) != 0 {
		t.Fatal("expected empty collection")
	}
	if err := s.Delete("missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestBookingSurvivesCategoryDeletion(t *testing.T) {
	// the store holds no reference to the category store; an orphaned
	// categoryId simply stays in place
	s, _ := newTestStore(t)
	b, _ := s.Add(bookings.BookingInput{Name: "Dana", Phone: "555", NoOfPersons: 5, CategoryID: "gone"})

	got, ok := s.GetByID(b.ID)
	if !ok || got.CategoryID != "gone" {
		t.Fatalf("booking must keep its orphaned reference: %+v", got)
	}
}

func TestRehydrateFromSlot(t *testing.T) {
	s, kv := newTestStore(t)
	b, _ := s.Add(bookings.BookingInput{Name: "Eve", Phone: "555", NoOfPersons: 2, CategoryID: "cat"})
	s.CheckIn(b.ID)

	reloaded, err := bookings.NewStore(kv, qr.BookingPayload)
	if err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	got, ok := reloaded.GetByID(b.ID)
	if !ok {
		t.Fatal("expected booking after rehydrate")
	}
	if !got.CheckedIn {
		t.Fatal("checkedIn must survive the round trip")
	}
	if !strings.HasPrefix(got.QRCode, qr.CheckInPrefix) {
		t.Fatalf("qr payload lost in round trip: %s", got.QRCode)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Fatalf("createdAt round trip mismatch: %v vs %v", got.CreatedAt, b.CreatedAt)
	}
}
