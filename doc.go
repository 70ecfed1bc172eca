// Package musicsync archives a YouTube channel's playlists as an audio
// library: every unseen playlist item is downloaded with yt-dlp, transcoded
// to opus, uploaded to S3-compatible object storage, and indexed with its
// catalog metadata in MongoDB.
//
// Overview
//
// The sync pipeline is built from small injected collaborators:
//
//   - catalog: paginated playlist and item listings (YouTube Data API v3)
//   - fetch: yt-dlp subprocess producing local opus artifacts
//   - archive: S3 artifact store, Mongo record index, file checkpoint
//   - pipeline: the orchestrator tying them together
//
// A run is strictly sequential and idempotent at item granularity: items
// already present in the archive index are skipped, and a last-processed-id
// checkpoint short-circuits the common contiguous case without a database
// round trip. One failing item never aborts a run; only a failed page
// listing does.
//
// Quick Start
//
// Run a full sync from environment configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	// construct catalog client, fetcher, stores ... (see main.go)
//	syncer := pipeline.New(client, fetcher, artifacts, index, checkpoint, cfg.WorkDir)
//	if err := syncer.Run(ctx, cfg.ChannelID); err != nil {
//		log.Fatal(err)
//	}
//
// Configuration
//
// musicsync reads settings from the environment first, then an optional
// musicsync.json (current directory or ~/.config/musicsync/), then defaults:
//
//   - MUSICSYNC_CHANNEL_ID: channel to synchronize (required)
//   - GOOGLE_API_KEY: YouTube Data API key (required)
//   - DATABASE_URL: MongoDB connection string (required)
//   - R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY: object-store credentials (required)
//   - R2_ACCOUNT_ID or MUSICSYNC_S3_ENDPOINT: object-store endpoint (required)
//   - MUSICSYNC_S3_BUCKET, MUSICSYNC_PUBLIC_HOST: artifact bucket and public host
//   - YT_DLP_BINARY_PATH: path to yt-dlp
//   - COOKIES_FILE_PATH: cookies file passed to yt-dlp
//   - MUSICSYNC_FETCH_TIMEOUT: per-item fetch bound (e.g. "10m")
//   - MUSICSYNC_WORK_DIR, MUSICSYNC_CHECKPOINT_PATH: local scratch and cursor paths
//
// Error Handling
//
// All operations return errors that implement standard Go error handling.
//
// Checking for sentinel errors:
//
//	if errors.Is(err, musicsync.ErrChannelNotFound) {
//		fmt.Println("channel not found")
//	}
//
// Extracting wrapped error details:
//
//	var enumErr *musicsync.EnumerationError
//	if errors.As(err, &enumErr) {
//		fmt.Printf("listing %s %s failed: %v\n", enumErr.Scope, enumErr.ID, enumErr.Err)
//	}
//
// Dependencies
//
// musicsync requires yt-dlp to be installed and available in PATH or
// specified via YT_DLP_BINARY_PATH.
//
// Install yt-dlp: https://github.com/yt-dlp/yt-dlp
package musicsync
