package musicsync

import (
	"musicsync/archive"
	"musicsync/catalog"
	"musicsync/fetch"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, musicsync.ErrQuotaExceeded) {
//		fmt.Println("out of API quota for today")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var fetchErr *musicsync.FetchError
//	if errors.As(err, &fetchErr) {
//		fmt.Printf("fetching %s failed: %v\n", fetchErr.VideoID, fetchErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// EnumerationError wraps a failed page-listing call; fatal to the
	// enclosing listing scope.
	EnumerationError = catalog.EnumerationError
	// FetchError wraps a failed media fetch; contained per item.
	FetchError = fetch.FetchError
	// StoreError wraps archive store failures with operation context.
	StoreError = archive.StoreError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrChannelNotFound indicates the catalog channel does not exist.
	ErrChannelNotFound = catalog.ErrChannelNotFound
	// ErrPlaylistNotFound indicates the playlist does not exist.
	ErrPlaylistNotFound = catalog.ErrPlaylistNotFound
	// ErrQuotaExceeded indicates the catalog API quota is exhausted.
	ErrQuotaExceeded = catalog.ErrQuotaExceeded
	// ErrYtdlpNotInstalled indicates the yt-dlp binary was not found.
	ErrYtdlpNotInstalled = fetch.ErrYtdlpNotInstalled

	// Archive errors
	// ErrNotFound indicates an entity was not found in the archive.
	ErrNotFound = archive.ErrNotFound
	// ErrAlreadyExists indicates an entity already exists in the archive.
	ErrAlreadyExists = archive.ErrAlreadyExists
	// ErrLockTimeout indicates a timeout acquiring the checkpoint lock.
	ErrLockTimeout = archive.ErrLockTimeout
)
