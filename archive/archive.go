// Package archive provides the durable side of the pipeline: the object
// store holding audio artifacts, the document index of archived items, and
// the last-processed-id checkpoint.
package archive

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common archive conditions.
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("archive: not found")
	// ErrAlreadyExists indicates the entity already exists.
	ErrAlreadyExists = errors.New("archive: already exists")
	// ErrLockTimeout indicates a timeout acquiring a file lock.
	ErrLockTimeout = errors.New("archive: lock acquisition timeout")
)

// StoreError wraps archive errors with operation and entity context.
//
// Use errors.As() to extract operation details:
//
//	var storeErr *archive.StoreError
//	if errors.As(err, &storeErr) {
//		fmt.Printf("failed to %s %s %s: %v\n", storeErr.Op, storeErr.Entity, storeErr.Key, storeErr.Err)
//	}
type StoreError struct {
	// Op is the operation that failed ("put", "find", "create", "get", "set").
	Op string
	// Entity is the entity type ("artifact", "record", "checkpoint").
	Entity string
	// Key is the artifact key or item ID if applicable.
	Key string
	// Err is the underlying error.
	Err error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("archive: %s %s %s: %v", e.Op, e.Entity, e.Key, e.Err)
	}
	return fmt.Sprintf("archive: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ArtifactStore durably stores named byte blobs under slash-delimited keys.
type ArtifactStore interface {
	// Put stores data under key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte) error
	// PublicURL returns the publicly resolvable URL for a stored key.
	PublicURL(key string) string
}

// Index is the durable collection of already-archived item records, keyed by
// the remote item's stable identifier.
type Index interface {
	// FindByItemID returns the record for the given item ID, or ErrNotFound.
	FindByItemID(ctx context.Context, itemID string) (*Record, error)
	// Create persists a new record. A uniqueness violation on the item ID
	// is reported as ErrAlreadyExists.
	Create(ctx context.Context, rec *Record) error
}

// CheckpointStore is a single-key durable cursor holding the last
// successfully processed item ID.
type CheckpointStore interface {
	// Get returns the checkpointed item ID, or ErrNotFound when no
	// checkpoint has been written yet.
	Get(ctx context.Context) (string, error)
	// Set records itemID as the last processed item.
	Set(ctx context.Context, itemID string) error
}
