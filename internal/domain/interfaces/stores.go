package interfaces

// KeyValueStore is the synchronous persistence substrate for local state.
//
// Get reports ok=false for a missing key; that is not an error.
type KeyValueStore interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
}
