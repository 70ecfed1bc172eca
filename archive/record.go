package archive

import (
	"time"

	"musicsync/catalog"
)

// Record is the persisted proof that an item has been fully archived: the
// catalog snapshot plus the durable location of the audio artifact. At most
// one record exists per item ID.
type Record struct {
	// ItemID is the remote item's stable identifier.
	ItemID string `bson:"id" json:"id"`
	// Snippet is the item's catalog metadata at archival time.
	Snippet Snippet `bson:"snippet" json:"snippet"`
	// StreamURI is the public URL of the archived audio artifact.
	StreamURI string `bson:"streamUri" json:"streamUri"`
}

// Snippet mirrors the catalog's item metadata.
type Snippet struct {
	PublishedAt            time.Time  `bson:"publishedAt" json:"publishedAt"`
	ChannelID              string     `bson:"channelId" json:"channelId"`
	Title                  string     `bson:"title" json:"title"`
	Description            string     `bson:"description" json:"description"`
	Thumbnails             Thumbnails `bson:"thumbnails" json:"thumbnails"`
	ChannelTitle           string     `bson:"channelTitle" json:"channelTitle"`
	PlaylistID             string     `bson:"playlistId,omitempty" json:"playlistId,omitempty"`
	ResourceID             ResourceID `bson:"resourceId" json:"resourceId"`
	VideoOwnerChannelTitle string     `bson:"videoOwnerChannelTitle" json:"videoOwnerChannelTitle"`
	VideoOwnerChannelID    string     `bson:"videoOwnerChannelId" json:"videoOwnerChannelId"`
}

// ResourceID identifies the underlying media resource.
type ResourceID struct {
	Kind    string `bson:"kind" json:"kind"`
	VideoID string `bson:"videoId" json:"videoId"`
}

// Thumbnail is a single stored thumbnail rendition.
type Thumbnail struct {
	URL    string `bson:"url" json:"url"`
	Width  int64  `bson:"width" json:"width"`
	Height int64  `bson:"height" json:"height"`
}

// Thumbnails holds the thumbnail renditions. Sizes other than Default may be
// absent.
type Thumbnails struct {
	Default  *Thumbnail `bson:"default,omitempty" json:"default,omitempty"`
	Medium   *Thumbnail `bson:"medium,omitempty" json:"medium,omitempty"`
	High     *Thumbnail `bson:"high,omitempty" json:"high,omitempty"`
	Standard *Thumbnail `bson:"standard,omitempty" json:"standard,omitempty"`
	Maxres   *Thumbnail `bson:"maxres,omitempty" json:"maxres,omitempty"`
}

// NewRecord builds the archive record for a successfully stored item.
func NewRecord(item catalog.Item, streamURI string) *Record {
	return &Record{
		ItemID: item.ID,
		Snippet: Snippet{
			PublishedAt:  item.PublishedAt,
			ChannelID:    item.ChannelID,
			Title:        item.Title,
			Description:  item.Description,
			Thumbnails:   thumbnailsFromCatalog(item.Thumbnails),
			ChannelTitle: item.ChannelTitle,
			PlaylistID:   item.PlaylistID,
			ResourceID: ResourceID{
				Kind:    item.ResourceKind,
				VideoID: item.VideoID,
			},
			VideoOwnerChannelTitle: item.OwnerChannelTitle,
			VideoOwnerChannelID:    item.OwnerChannelID,
		},
		StreamURI: streamURI,
	}
}

func thumbnailsFromCatalog(t catalog.Thumbnails) Thumbnails {
	return Thumbnails{
		Default:  thumbnailFromCatalog(t.Default),
		Medium:   thumbnailFromCatalog(t.Medium),
		High:     thumbnailFromCatalog(t.High),
		Standard: thumbnailFromCatalog(t.Standard),
		Maxres:   thumbnailFromCatalog(t.Maxres),
	}
}

func thumbnailFromCatalog(t *catalog.Thumbnail) *Thumbnail {
	if t == nil {
		return nil
	}
	return &Thumbnail{URL: t.URL, Width: t.Width, Height: t.Height}
}
