package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"musicsync/internal/retry"
)

const pageSize = 50

// defaultPageRPS bounds page-listing calls; the Data API quota is generous
// per-request but shared with every other consumer of the key.
const defaultPageRPS = 2.0

// Client lists playlists and playlist items through the YouTube Data API v3.
// Page fetches are rate limited and retried; a fetch that still fails is
// surfaced as an *EnumerationError for that listing scope.
type Client struct {
	service *youtube.Service
	limiter *rate.Limiter

	// RetryConfig overrides the retry behavior for page fetches.
	RetryConfig *retry.Config
}

// NewClient creates a catalog client authenticated with an API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("catalog: api key required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("catalog: create youtube service: %w", err)
	}

	cfg := retry.DefaultConfig()
	return &Client{
		service:     service,
		limiter:     rate.NewLimiter(rate.Limit(defaultPageRPS), 1),
		RetryConfig: &cfg,
	}, nil
}

// Playlists returns a pager over the playlists of the given channel.
func (c *Client) Playlists(channelID string) *Pager[Playlist] {
	return NewPager(func(ctx context.Context, token string) (*Page[Playlist], error) {
		var page *Page[Playlist]

		err := c.fetchPage(ctx, func(ctx context.Context) error {
			call := c.service.Playlists.List([]string{"snippet", "contentDetails"}).
				ChannelId(channelID).
				MaxResults(pageSize).
				PageToken(token).
				Context(ctx)

			resp, err := call.Do()
			if err != nil {
				return classifyAPIError(err)
			}

			playlists := make([]Playlist, 0, len(resp.Items))
			for _, pl := range resp.Items {
				playlists = append(playlists, playlistFromAPI(pl))
			}
			page = &Page[Playlist]{Items: playlists, NextToken: resp.NextPageToken}
			return nil
		})
		if err != nil {
			return nil, &EnumerationError{Scope: "channel", ID: channelID, Err: err}
		}
		return page, nil
	})
}

// Items returns a pager over the entries of the given playlist.
func (c *Client) Items(playlistID string) *Pager[Item] {
	return NewPager(func(ctx context.Context, token string) (*Page[Item], error) {
		var page *Page[Item]

		err := c.fetchPage(ctx, func(ctx context.Context) error {
			call := c.service.PlaylistItems.List([]string{"snippet"}).
				PlaylistId(playlistID).
				MaxResults(pageSize).
				PageToken(token).
				Fields("nextPageToken", "items(id,snippet)").
				Context(ctx)

			resp, err := call.Do()
			if err != nil {
				return classifyAPIError(err)
			}

			items := make([]Item, 0, len(resp.Items))
			for _, it := range resp.Items {
				items = append(items, itemFromAPI(playlistID, it))
			}
			page = &Page[Item]{Items: items, NextToken: resp.NextPageToken}
			return nil
		})
		if err != nil {
			return nil, &EnumerationError{Scope: "playlist", ID: playlistID, Err: err}
		}
		return page, nil
	})
}

// fetchPage runs one page fetch behind the rate limiter and retry policy.
func (c *Client) fetchPage(ctx context.Context, fn func(context.Context) error) error {
	cfg := c.RetryConfig
	if cfg == nil {
		defaultCfg := retry.DefaultConfig()
		cfg = &defaultCfg
	}

	return retry.Do(ctx, *cfg, apiErrorClassifier, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		return fn(ctx)
	})
}

// playlistFromAPI converts an API playlist resource.
func playlistFromAPI(pl *youtube.Playlist) Playlist {
	p := Playlist{ID: pl.Id}
	if pl.Snippet != nil {
		p.Title = pl.Snippet.Title
	}
	if pl.ContentDetails != nil {
		p.ItemCount = pl.ContentDetails.ItemCount
	}
	return p
}

// itemFromAPI converts an API playlist-item resource.
func itemFromAPI(playlistID string, it *youtube.PlaylistItem) Item {
	item := Item{
		ID:         it.Id,
		PlaylistID: playlistID,
	}

	sn := it.Snippet
	if sn == nil {
		return item
	}

	item.Title = sn.Title
	item.Description = sn.Description
	item.ChannelID = sn.ChannelId
	item.ChannelTitle = sn.ChannelTitle
	item.OwnerChannelID = sn.VideoOwnerChannelId
	item.OwnerChannelTitle = sn.VideoOwnerChannelTitle
	item.Thumbnails = thumbnailsFromAPI(sn.Thumbnails)

	if sn.ResourceId != nil {
		item.VideoID = sn.ResourceId.VideoId
		item.ResourceKind = sn.ResourceId.Kind
	}
	if t, err := time.Parse(time.RFC3339, sn.PublishedAt); err == nil {
		item.PublishedAt = t
	}

	return item
}

// thumbnailsFromAPI converts the API thumbnail set.
func thumbnailsFromAPI(td *youtube.ThumbnailDetails) Thumbnails {
	if td == nil {
		return Thumbnails{}
	}
	return Thumbnails{
		Default:  thumbnailFromAPI(td.Default),
		Medium:   thumbnailFromAPI(td.Medium),
		High:     thumbnailFromAPI(td.High),
		Standard: thumbnailFromAPI(td.Standard),
		Maxres:   thumbnailFromAPI(td.Maxres),
	}
}

func thumbnailFromAPI(t *youtube.Thumbnail) *Thumbnail {
	if t == nil {
		return nil
	}
	return &Thumbnail{URL: t.Url, Width: t.Width, Height: t.Height}
}

// classifyAPIError maps API failures onto the package sentinels.
func classifyAPIError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "playlistNotFound") {
		return fmt.Errorf("%w: %v", ErrPlaylistNotFound, err)
	}
	if strings.Contains(msg, "channelNotFound") || strings.Contains(msg, "notFound") {
		return fmt.Errorf("%w: %v", ErrChannelNotFound, err)
	}
	if strings.Contains(msg, "quotaExceeded") {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return err
}

// apiErrorClassifier determines if an API error is retryable.
func apiErrorClassifier(err error) bool {
	if err == nil {
		return false
	}

	// Missing collections are permanent
	if errors.Is(err, ErrChannelNotFound) || errors.Is(err, ErrPlaylistNotFound) {
		return false
	}

	// Quota resets daily; retrying within a run won't help
	if errors.Is(err, ErrQuotaExceeded) {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Transient rate limiting is retryable
	if strings.Contains(err.Error(), "rateLimitExceeded") {
		return true
	}

	// Default to retryable for unknown errors
	return true
}
