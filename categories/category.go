package categories

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/anumeetkumar/restaurants-booking/persist"
	"github.com/anumeetkumar/restaurants-booking/utils"
)

// StoreSlot is the durable key-value slot the full category collection is
// serialized into on every mutation.
const StoreSlot = "category-store"

var ErrNotFound = errors.New("category not found")

// BuffetCategory is a buffet offering with a per-plate price.
type BuffetCategory struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PricePerPlate float64   `json:"pricePerPlate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CategoryInput carries the caller-supplied fields for Add. The store
// generates id and timestamps itself.
type CategoryInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PricePerPlate float64 `json:"pricePerPlate"`
}

// CategoryPatch is a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	PricePerPlate *float64 `json:"pricePerPlate"`
}

// Store owns the category collection. It performs no input validation;
// that is the caller's job (the HTTP form layer).
type Store struct {
	mu   sync.RWMutex
	kv   persist.KV
	list []BuffetCategory
}

// NewStore rehydrates the collection from the kv slot. A missing slot
// means a fresh install and seeds an empty collection.
func NewStore(kv persist.KV) (*Store, error) {
	s := &Store{kv: kv}
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

// Add appends a new category and persists the collection. Returns the
// stored record with generated id and timestamps.
func (s *Store) Add(in CategoryInput) (BuffetCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cat := BuffetCategory{
		ID:            utils.GetUUID(),
		Name:          in.Name,
		Description:   in.Description,
		PricePerPlate: in.PricePerPlate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.list = append(s.list, cat)
	if err := s.persistLocked(); err != nil {
		return BuffetCategory{}, err
	}
	return cat, nil
}

// Update merges non-nil patch fields into the matching record and
// refreshes updatedAt. Returns ErrNotFound for an unknown id.
func (s *Store) Update(id string, patch CategoryPatch) (BuffetCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID != id {
			continue
		}
		cat := &s.list[i]
		if patch.Name != nil {
			cat.Name = *patch.Name
		}
		if patch.Description != nil {
			cat.Description = *patch.Description
		}
		if patch.PricePerPlate != nil {
			cat.PricePerPlate = *patch.PricePerPlate
		}
		cat.UpdatedAt = time.Now()
		if err := s.persistLocked(); err != nil {
			return BuffetCategory{}, err
		}
		return *cat, nil
	}
	return BuffetCategory{}, ErrNotFound
}

// Delete removes the matching record. Deleting an unknown id is a no-op.
// Bookings referencing the category are deliberately left alone; their
// category lookup degrades to an unknown state downstream.
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

// GetByID does a linear scan; collections stay small (tens to low
// hundreds of records).
func (s *Store) GetByID(id string) (BuffetCategory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cat := range s.list {
		if cat.ID == id {
			return cat, true
		}
	}
	return BuffetCategory{}, false
}

// All returns a copy of the collection.
func (s *Store) All() []BuffetCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]BuffetCategory, len(s.list))
	copy(out, s.list)
	return out
}
