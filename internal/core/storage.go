package core

import "context"

// SessionStore is a durable key -> Transcript mapping. Access is scoped to one key
// at a time; implementations never list or join across keys.
type SessionStore interface {
	// Load returns the stored transcript for key, or a fresh transcript holding only
	// the system turn when the key has never been saved.
	Load(ctx context.Context, key string) (Transcript, error)

	// Save replaces the stored transcript for key atomically with respect to other
	// Save and Load calls on the same key.
	Save(ctx context.Context, key string, transcript Transcript) error
}
