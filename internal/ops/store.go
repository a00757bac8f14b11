package ops

import "context"

// Store defines the persistence interface required by the trip repository.
// The concrete implementations live in internal/storage (the .trips/ directory,
// memory, badger and redis), but this interface allows any string key-value
// backend.
type Store interface {
	Read(ctx context.Context, key string) (string, bool)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Authenticator reports whether mutations are allowed.
type Authenticator interface {
	IsAuthenticated() bool
}

// AuthFunc adapts a function to Authenticator.
type AuthFunc func() bool

// IsAuthenticated implements Authenticator.
func (f AuthFunc) IsAuthenticated() bool { return f() }
