package port

// Cache is a generic key-value cache. Implementations must be safe for concurrent use.
type Cache[K comparable, V any] interface {
	// Get returns the value for key and whether it was present.
	Get(key K) (V, bool)

	// Set stores value for key, evicting the least recently used entry when full.
	Set(key K, value V)

	// Remove deletes key.
	Remove(key K)

	// Len returns the number of cached entries.
	Len() int
}
