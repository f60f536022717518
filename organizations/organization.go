package organizations

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/anumeetkumar/restaurants-booking/persist"
	"github.com/anumeetkumar/restaurants-booking/utils"
)

// StoreSlot is the durable key-value slot for the organization collection.
const StoreSlot = "organization-store"

var ErrNotFound = errors.New("organization not found")

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrganizationInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrganizationPatch is a partial update; nil fields are left untouched.
type OrganizationPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Store owns the organization collection. Same shape as the category
// store; update writes the mutated collection back and delete actually
// removes the record.
type Store struct {
	mu   sync.RWMutex
	kv   persist.KV
	list []Organization
}

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

func (s *Store) Add(in OrganizationInput) (Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	org := Organization{
		ID:        utils.GetUUID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.list = append(s.list, org)
	if err := s.persistLocked(); err != nil {
		return Organization{}, err
	}
	return org, nil
}

func (s *Store) Update(id string, patch OrganizationPatch) (Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID != id {
			continue
		}
		org := &s.list[i]
		if patch.Name != nil {
			org.Name = *patch.Name
		}
		if patch.Email != nil {
			org.Email = *patch.Email
		}
		if patch.Phone != nil {
			org.Phone = *patch.Phone
		}
		org.UpdatedAt = time.Now()
		if err := s.persistLocked(); err != nil {
			return Organization{}, err
		}
		return *org, nil
	}
	return Organization{}, ErrNotFound
}

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

func (s *Store) GetByID(id string) (Organization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, org := range s.list {
		if org.ID == id {
			return org, true
		}
	}
	return Organization{}, false
}

// All returns a copy of the collection.
func (s *Store) All() []Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Organization, len(s.list))
	copy(out, s.list)
	return out
}
