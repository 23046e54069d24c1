// Package storage is the client's local key/value store: a single SQLite
// table that plays the role a browser's localStorage plays for a web client.
package storage

import "context"

// Repository is a string-keyed blob store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
