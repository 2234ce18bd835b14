// Package storage defines the durable key/value layer behind the offline
// product store. Each key holds one opaque blob; the offline store keeps its
// whole product list under a single key.
package storage

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidKey = errors.New("storage: invalid key")

type EntryStore interface {
	// Get returns the blob stored under key. A missing key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put replaces the blob stored under key.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// ValidKey rejects keys that cannot be used as a file name or primary key.
func ValidKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`+"\x00")
}
