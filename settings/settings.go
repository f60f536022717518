package settings

import (
	"encoding/json"
	"sync"

	"github.com/anumeetkumar/restaurants-booking/persist"
)

// StoreSlot is the durable key-value slot for the settings singleton.
const StoreSlot = "settings-store"

// RestaurantSettings is the single restaurant-wide settings record.
type RestaurantSettings struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo"`
	Logo        string `json:"logo,omitempty"`
	Theme       string `json:"theme"`
}

// SettingsPatch is a partial update; nil fields are left untouched.
type SettingsPatch struct {
	Name        *string `json:"name"`
	ContactInfo *string `json:"contactInfo"`
	Logo        *string `json:"logo"`
	Theme       *string `json:"theme"`
}

// Default settings for a fresh install.
func defaultSettings() RestaurantSettings {
	return RestaurantSettings{
		Name:        "Akairis",
		ContactInfo: "+1 (555) 123-4567",
		Theme:       "light",
	}
}

// Store owns the settings singleton. There is always exactly one value;
// it is created with defaults at first load and mutated in place after.
type Store struct {
	mu       sync.RWMutex
	kv       persist.KV
	settings RestaurantSettings
}

// NewStore rehydrates the singleton, filling any blank field with its
// default so a schema change never leaves a hole.
func NewStore(kv persist.KV) (*Store, error) {
	s := &Store{kv: kv, settings: defaultSettings()}
	data, found, err := kv.Load(StoreSlot)
	if err != nil {
		return nil, err
	}
	if found {
		var stored RestaurantSettings
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, err
		}
		if stored.Name != "" {
			s.settings.Name = stored.Name
		}
		if stored.ContactInfo != "" {
			s.settings.ContactInfo = stored.ContactInfo
		}
		if stored.Theme != "" {
			s.settings.Theme = stored.Theme
		}
		s.settings.Logo = stored.Logo
	}
	return s, nil
}

// Get returns the current value; always defined.
func (s *Store) Get() RestaurantSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update merges non-nil patch fields into the singleton and persists.
func (s *Store) Update(patch SettingsPatch) (RestaurantSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Name != nil {
		s.settings.Name = *patch.Name
	}
	if patch.ContactInfo != nil {
		s.settings.ContactInfo = *patch.ContactInfo
	}
	if patch.Logo != nil {
		s.settings.Logo = *patch.Logo
	}
	if patch.Theme != nil {
		s.settings.Theme = *patch.Theme
	}

	data, err := json.Marshal(s.settings)
	if err != nil {
		return RestaurantSettings{}, err
	}
	if err := s.kv.Save(StoreSlot, data); err != nil {
		return RestaurantSettings{}, err
	}
	return s.settings, nil
}
