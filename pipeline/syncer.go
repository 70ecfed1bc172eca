// Package pipeline drives the synchronization of a channel's playlists into
// the archive: enumerate, dedup, fetch, upload, index, checkpoint.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"musicsync/archive"
	"musicsync/catalog"
)

// artifactExt is the container produced by the fetcher.
const artifactExt = ".opus"

// Source lists the remote catalog's collections. *catalog.Client satisfies
// it; tests substitute static pagers.
type Source interface {
	// Playlists enumerates the playlists of a channel.
	Playlists(channelID string) *catalog.Pager[catalog.Playlist]
	// Items enumerates the entries of a playlist.
	Items(playlistID string) *catalog.Pager[catalog.Item]
}

// Fetcher produces a local audio artifact for a media reference.
type Fetcher interface {
	Fetch(ctx context.Context, videoID, dest string, onProgress func(percent float64)) error
}

// Syncer is the sync orchestrator. All collaborators are injected; the
// Syncer owns no connections itself.
//
// Processing is strictly sequential: items within a playlist in catalog
// order, playlists in catalog-listing order, no cross-item parallelism.
// That bounds load on the external collaborators and keeps the checkpoint
// monotonic within a run. A second concurrent process is kept out by the
// checkpoint store's file lock.
type Syncer struct {
	source     Source
	fetcher    Fetcher
	artifacts  archive.ArtifactStore
	index      archive.Index
	checkpoint archive.CheckpointStore
	workDir    string

	// lastID mirrors the checkpoint in memory for the O(1) dedup fast
	// path. It is only ever advanced during a run.
	lastID string
}

// New creates a Syncer. workDir is the root for per-playlist scratch
// directories holding transient artifacts.
func New(source Source, fetcher Fetcher, artifacts archive.ArtifactStore, index archive.Index, checkpoint archive.CheckpointStore, workDir string) *Syncer {
	return &Syncer{
		source:     source,
		fetcher:    fetcher,
		artifacts:  artifacts,
		index:      index,
		checkpoint: checkpoint,
		workDir:    workDir,
	}
}

// Run synchronizes every playlist of the channel, item by item. It is
// idempotent at item granularity: items already recorded in the index are
// skipped, so repeated runs against an unchanged catalog archive nothing
// twice. Item-level failures are logged and contained; only a failed
// page listing ends the run.
func (s *Syncer) Run(ctx context.Context, channelID string) error {
	runID := uuid.NewString()[:8]
	log.Printf("pipeline: run %s: syncing channel %s", runID, channelID)

	last, err := s.checkpoint.Get(ctx)
	switch {
	case err == nil:
		s.lastID = last
	case errors.Is(err, archive.ErrNotFound):
		// First run, nothing checkpointed yet
	default:
		// Non-fatal: the index tier still catches duplicates
		log.Printf("pipeline: run %s: checkpoint read failed, relying on index lookups: %v", runID, err)
	}

	playlists := s.source.Playlists(channelID)
	for playlists.Next(ctx) {
		for _, pl := range playlists.Page().Items {
			if err := s.syncPlaylist(ctx, pl); err != nil {
				return fmt.Errorf("sync playlist %s: %w", pl.ID, err)
			}
		}
	}
	if err := playlists.Err(); err != nil {
		return fmt.Errorf("list playlists of %s: %w", channelID, err)
	}

	log.Printf("pipeline: run %s: complete", runID)
	return nil
}

// syncPlaylist processes one playlist inside a scoped working directory,
// which is removed recursively afterwards so failed items cannot accumulate
// transient artifacts across runs.
func (s *Syncer) syncPlaylist(ctx context.Context, pl catalog.Playlist) error {
	log.Printf("pipeline: playlist %q (%s)", pl.Title, pl.ID)

	dir := filepath.Join(s.workDir, pl.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("pipeline: remove work dir %s: %v", dir, err)
		}
	}()

	items := s.source.Items(pl.ID)
	for items.Next(ctx) {
		for _, item := range items.Page().Items {
			if err := s.processItem(ctx, dir, item); err != nil {
				// Fault isolated to this item; the pipeline proceeds
				log.Printf("pipeline: %s: %v", deriveKey(item.ChannelTitle, item.Title), err)
			}
		}
	}
	return items.Err()
}

// processItem runs the full per-item sequence: dedup guard, fetch,
// upload, record, checkpoint. Any returned error is contained by the caller.
func (s *Syncer) processItem(ctx context.Context, dir string, item catalog.Item) error {
	skip, err := s.shouldSkip(ctx, item.ID)
	if err != nil {
		return err
	}
	if skip {
		log.Printf("pipeline: %q already archived, skipping", item.Title)
		return nil
	}

	dest := filepath.Join(dir, sanitizeTitle(item.Title)+artifactExt)
	if err := s.fetcher.Fetch(ctx, item.VideoID, dest, progressLogger(item.Title)); err != nil {
		return err
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	key := deriveKey(item.ChannelTitle, item.Title)
	log.Printf("pipeline: uploading %s", key)
	if err := s.artifacts.Put(ctx, key, data); err != nil {
		return err
	}

	// Best-effort: the playlist work dir sweep catches leftovers
	if err := os.Remove(dest); err != nil {
		log.Printf("pipeline: remove artifact %s: %v", dest, err)
	}

	rec := archive.NewRecord(item, s.artifacts.PublicURL(key))
	if err := s.index.Create(ctx, rec); err != nil {
		if !errors.Is(err, archive.ErrAlreadyExists) {
			return err
		}
		// Another writer got there first; the item is archived either way
		log.Printf("pipeline: %q recorded concurrently elsewhere", item.Title)
	}

	s.setCheckpoint(ctx, item.ID)
	log.Printf("pipeline: archived %s", key)
	return nil
}

// shouldSkip is the two-tier dedup guard: the checkpoint comparison costs
// nothing, the index lookup is authoritative. An index-tier hit refreshes
// the stale checkpoint so the fast path stays warm for contiguous runs.
func (s *Syncer) shouldSkip(ctx context.Context, itemID string) (bool, error) {
	if s.lastID != "" && itemID == s.lastID {
		return true, nil
	}

	_, err := s.index.FindByItemID(ctx, itemID)
	if err == nil {
		s.setCheckpoint(ctx, itemID)
		return true, nil
	}
	if errors.Is(err, archive.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// setCheckpoint advances the cursor. There is deliberately no transaction
// tying it to record creation: a crash in between leaves a stale checkpoint
// that self-heals through the index tier on the next run. Write failures are
// non-fatal for the same reason.
func (s *Syncer) setCheckpoint(ctx context.Context, itemID string) {
	s.lastID = itemID
	if err := s.checkpoint.Set(ctx, itemID); err != nil {
		log.Printf("pipeline: checkpoint write failed: %v", err)
	}
}

// progressLogger reports fetch progress for an item, emitting a line per
// 10% step rather than per tool update.
func progressLogger(title string) func(percent float64) {
	lastStep := -1
	return func(percent float64) {
		step := int(math.Floor(percent / 10))
		if step > lastStep {
			lastStep = step
			log.Printf("pipeline: -- %s: %.1f%%", title, percent)
		}
	}
}

// deriveKey builds the storage key "{channelTitle}/{title}.opus". The title
// doubles as a filename, so path separators in it are replaced; the channel
// segment is the key's directory and keeps its name as-is.
func deriveKey(channelTitle, title string) string {
	return channelTitle + "/" + sanitizeTitle(title) + artifactExt
}

// sanitizeTitle makes a title safe for use as a single path segment.
func sanitizeTitle(title string) string {
	return strings.ReplaceAll(title, "/", "_")
}
