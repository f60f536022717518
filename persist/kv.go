// Package persist provides the durable key-value slots the stores write
// their full serialized state into. Each store owns exactly one slot.
package persist

// KV is a named-slot blob store. Load reports found=false when the slot
// has never been written, which callers treat as an empty collection.
type KV interface {
	Load(key string) (data []byte, found bool, err error)
	Save(key string, data []byte) error
}
