package persist

import "sync"

// MemoryKV holds slots in a map. Used by tests and ephemeral runs.
type MemoryKV struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[string][]byte)}
}

func (m *MemoryKV) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (m *MemoryKV) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	m.slots[key] = cp
	return nil
}
