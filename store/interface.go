package store

// KeyValue defines the interface for the local persistence collaborator.
// It is a plain get/set blob store with no compare-and-swap primitive;
// the policies layered on top (history cap, eviction, credential
// storage) perform load-mutate-overwrite cycles and accept lost updates
// under true concurrent writers. Callers needing strict ordering must
// serialize their own calls.
type KeyValue interface {
	// Get returns the value stored under key. The second return value
	// reports whether the key was present.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases any resources held by the store, such as file
	// locks. It should be called when the store is no longer needed.
	Close() error
}
