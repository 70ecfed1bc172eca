// Package catalog provides access to the remote media catalog: paginated
// playlist and playlist-item listings for a channel.
package catalog

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for catalog operations.
var (
	ErrChannelNotFound  = errors.New("catalog: channel not found")
	ErrPlaylistNotFound = errors.New("catalog: playlist not found")
	ErrQuotaExceeded    = errors.New("catalog: api quota exceeded")
)

// EnumerationError wraps a failed page-listing call. Enumeration errors are
// fatal to the enclosing listing scope; callers should not retry at the item
// level.
//
// Use errors.As() to extract the failing scope:
//
//	var enumErr *catalog.EnumerationError
//	if errors.As(err, &enumErr) {
//		fmt.Printf("listing %s %s failed: %v\n", enumErr.Scope, enumErr.ID, enumErr.Err)
//	}
type EnumerationError struct {
	// Scope is the collection being enumerated ("channel" or "playlist").
	Scope string
	// ID is the identifier of the scope (channel ID or playlist ID).
	ID string
	// Err is the underlying error.
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("catalog: enumerate %s %s: %v", e.Scope, e.ID, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// Playlist is one playlist owned by a channel.
type Playlist struct {
	// ID is the playlist ID (e.g. "PLxxxx").
	ID string
	// Title is the playlist's display title.
	Title string
	// ItemCount is the number of items the catalog reports for the playlist.
	ItemCount int64
}

// Item is a single playlist entry, a snapshot of the remote catalog's
// metadata for one playable unit of media. Items are consumed by value and
// never mutated by the pipeline.
type Item struct {
	// ID is the playlist-item ID, the stable identifier used for
	// deduplication and checkpointing.
	ID string
	// PlaylistID is the playlist this item was listed under.
	PlaylistID string
	// VideoID is the underlying media reference used for fetching.
	VideoID string
	// ResourceKind is the catalog's resource kind (e.g. "youtube#video").
	ResourceKind string

	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  time.Time
	Thumbnails   Thumbnails

	// OwnerChannelID and OwnerChannelTitle identify the channel that owns
	// the underlying video, which may differ from the playlist's channel.
	OwnerChannelID    string
	OwnerChannelTitle string
}

// Thumbnail is a single thumbnail rendition.
type Thumbnail struct {
	URL    string
	Width  int64
	Height int64
}

// Thumbnails holds the thumbnail renditions the catalog exposes. Sizes other
// than Default may be absent.
type Thumbnails struct {
	Default  *Thumbnail
	Medium   *Thumbnail
	High     *Thumbnail
	Standard *Thumbnail
	Maxres   *Thumbnail
}
