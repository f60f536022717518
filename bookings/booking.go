package bookings

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/anumeetkumar/restaurants-booking/persist"
	"github.com/anumeetkumar/restaurants-booking/utils"
)

// StoreSlot is the durable key-value slot for the booking collection.
// The name is kept from the original dashboard's storage layout.
const StoreSlot = "user-store"

var ErrNotFound = errors.New("booking not found")

// Booking is a customer's reservation for a buffet category: party size,
// primary contact, QR check-in payload and check-in status.
type Booking struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	NoOfPersons int       `json:"noOfPersons"`
	CategoryID  string    `json:"categoryId"`
	QRCode      string    `json:"qrCode,omitempty"`
	CheckedIn   bool      `json:"checkedIn"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingInput carries caller-supplied fields for Add. The categoryId is
// not referentially checked here; an orphaned reference resolves to an
// unknown category downstream.
type BookingInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	NoOfPersons int    `json:"noOfPersons"`
	CategoryID  string `json:"categoryId"`
}

// BookingPatch is a partial update; nil fields are left untouched.
type BookingPatch struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	NoOfPersons *int    `json:"noOfPersons"`
	CategoryID  *string `json:"categoryId"`
	QRCode      *string `json:"qrCode"`
}

// Store owns the booking collection. The QR payload is computed from the
// freshly assigned id by the injected qrPayload func inside Add itself,
// so a stored booking never lacks its code.
type Store struct {
	mu        sync.RWMutex
	kv        persist.KV
	qrPayload func(id string) string
	list      []Booking
}

// NewStore rehydrates the collection from the kv slot. qrPayload maps a
// booking id to its check-in deep link and must not be nil.
func NewStore(kv persist.KV, qrPayload func(id string) string) (*Store, error) {
	s := &Store{kv: kv, qrPayload: qrPayload}
	data, found, err := kv.Load(StoreSlot)
	if err != nil {
		return nil, err
	}
	if found {
		if err := json.Unmarshal(data, &s.list); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.list)
	if err != nil {
		return err
	}
	return s.kv.Save(StoreSlot, data)
}

// Add appends a new unchecked booking, attaches its QR payload and
// persists. Returns the stored record; callers needing only the id take
// it from there.
func (s *Store) Add(in BookingInput) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	b := Booking{
		ID:          utils.GetUUID(),
		Name:        in.Name,
		Phone:       in.Phone,
		NoOfPersons: in.NoOfPersons,
		CategoryID:  in.CategoryID,
		CheckedIn:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.QRCode = s.qrPayload(b.ID)
	s.list = append(s.list, b)
	if err := s.persistLocked(); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// Update merges non-nil patch fields and refreshes updatedAt. CheckedIn
// is deliberately not patchable; the only way to set it is CheckIn.
func (s *Store) Update(id string, patch BookingPatch) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID != id {
			continue
		}
		b := &s.list[i]
		if patch.Name != nil {
			b.Name = *patch.Name
		}
		if patch.Phone != nil {
			b.Phone = *patch.Phone
		}
		if patch.NoOfPersons != nil {
			b.NoOfPersons = *patch.NoOfPersons
		}
		if patch.CategoryID != nil {
			b.CategoryID = *patch.CategoryID
		}
		if patch.QRCode != nil {
			b.QRCode = *patch.QRCode
		}
		b.UpdatedAt = time.Now()
		if err := s.persistLocked(); err != nil {
			return Booking{}, err
		}
		return *b, nil
	}
	return Booking{}, ErrNotFound
}

// CheckIn marks the booking as arrived. The transition is one-way; a
// repeat call keeps checkedIn true and still refreshes updatedAt, which
// doubles as the check-in time.
func (s *Store) CheckIn(id string) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID != id {
			continue
		}
		b := &s.list[i]
		b.CheckedIn = true
		b.UpdatedAt = time.Now()
		if err := s.persistLocked(); err != nil {
			return Booking{}, err
		}
		return *b, nil
	}
	return Booking{}, ErrNotFound
}

// Delete removes the matching record. Unknown ids are a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return s.persistLocked()
		}
	}
	return nil
}

func (s *Store) GetByID(id string) (Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.list {
		if b.ID == id {
			return b, true
		}
	}
	return Booking{}, false
}

// All returns a copy of the collection.
func (s *Store) All() []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Booking, len(s.list))
	copy(out, s.list)
	return out
}
