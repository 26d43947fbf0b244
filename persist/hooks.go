package persist

// Hooks lightweight callbacks for high-signal persistence events.
// Implementations MUST be cheap and non-blocking.
type Hooks interface {
	// A stored document was deleted on read.
	// reason ∈ {"corrupt"}
	SelfHeal(storageKey, reason string)

	// Save found identical content and left the store untouched.
	WriteSkipped(key string)

	// The store returned ok=false on write (backpressure/eviction).
	WriteRejected(key string)

	// A stored document could not be decoded by the codec.
	DecodeError(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)   {}
func (NopHooks) WriteSkipped(string)       {}
func (NopHooks) WriteRejected(string)      {}
func (NopHooks) DecodeError(string, error) {}
