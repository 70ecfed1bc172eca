package archive

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"
)

const (
	checkpointVersion = "1.0"
	lockTimeout       = 5 * time.Second
)

// FileCheckpoint implements CheckpointStore using a single JSON file written
// atomically. It holds an exclusive file lock for its lifetime so a second
// pipeline process fails fast instead of racing the cursor.
type FileCheckpoint struct {
	path string
	lock *fileLock
	mu   sync.Mutex
	data *checkpointData
}

// checkpointData is the on-disk structure.
type checkpointData struct {
	Version   string    `json:"version"`
	LastID    string    `json:"last_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFileCheckpoint opens the checkpoint file at path, creating it if absent.
func NewFileCheckpoint(path string) (*FileCheckpoint, error) {
	c := &FileCheckpoint{
		path: path,
		lock: newFileLock(path),
	}

	if err := c.lock.Lock(lockTimeout); err != nil {
		return nil, err
	}

	if err := c.load(); err != nil {
		c.lock.Unlock()
		return nil, err
	}

	return c, nil
}

// load reads the checkpoint file into memory. A missing file starts empty.
func (c *FileCheckpoint) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.data = &checkpointData{Version: checkpointVersion}
			return nil
		}
		return &StoreError{Op: "get", Entity: "checkpoint", Err: err}
	}

	c.data = &checkpointData{}
	if err := json.Unmarshal(data, c.data); err != nil {
		return &StoreError{Op: "get", Entity: "checkpoint", Err: err}
	}
	return nil
}

// Get returns the checkpointed item ID, or ErrNotFound when unset.
func (c *FileCheckpoint) Get(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data.LastID == "" {
		return "", ErrNotFound
	}
	return c.data.LastID, nil
}

// Set records itemID and persists it atomically.
func (c *FileCheckpoint) Set(ctx context.Context, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := *c.data
	c.data.Version = checkpointVersion
	c.data.LastID = itemID
	c.data.UpdatedAt = time.Now()

	if err := c.save(); err != nil {
		*c.data = prev
		return err
	}
	return nil
}

// save persists the data to disk atomically.
func (c *FileCheckpoint) save() error {
	writer, err := newAtomicWriter(c.path)
	if err != nil {
		return &StoreError{Op: "set", Entity: "checkpoint", Err: err}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(c.data); err != nil {
		writer.Abort()
		return &StoreError{Op: "set", Entity: "checkpoint", Err: err}
	}

	if err := writer.Commit(); err != nil {
		return &StoreError{Op: "set", Entity: "checkpoint", Err: err}
	}
	return nil
}

// Close releases the checkpoint's file lock.
func (c *FileCheckpoint) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lock.Unlock()
}
