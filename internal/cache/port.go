package cache

import "github.com/rohmanhakim/mauvaise-langue/pkg/failure"

// Store is the port through which the insult list is persisted between runs.
// Production binds it to a JSON file (FileStore); tests and embedders can use
// MemoryStore.
type Store interface {
	// Load returns the last saved list, in saved order.
	// A missing or unreadable store yields an empty, non-nil list and never an error.
	Load() []string

	// Save replaces the stored list unconditionally, empty lists included.
	Save(insults []string) failure.ClassifiedError
}
