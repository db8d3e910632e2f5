package youtube

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// PageSize is the fixed page size of the Data API list endpoints.
const PageSize = 50

// callTimeout bounds every individual Data API call so a hung page fetch
// cannot block a ranking request indefinitely.
const callTimeout = 15 * time.Second

// VideoItem is the slice of a Data API video the pipeline works with.
type VideoItem struct {
	ID              string
	Title           string
	ThumbnailURL    string
	PublishedAt     time.Time
	ChannelID       string
	ChannelName     string
	DurationSeconds int
	ViewCount       int64
	CategoryID      string
}

// ChannelItem is the slice of a Data API channel the pipeline works with.
type ChannelItem struct {
	ID              string
	Title           string
	AvatarURL       string
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
	Country         string
	Tags            []string
}

// Client wraps the official Data API service with quota accounting and
// error classification. All methods return *APIError on failure.
type Client struct {
	service *youtube.Service
	quota   *QuotaTracker
}

// NewClient builds a Data API client for the given key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, Classify(err)
	}
	return &Client{service: service, quota: NewQuotaTracker()}, nil
}

// TrendingPage fetches one page of the mostPopular chart. An empty region
// means worldwide (the API's default region) and an empty category means all
// categories. The returned token is empty on the last page.
func (c *Client) TrendingPage(ctx context.Context, region, category, pageToken string) ([]VideoItem, string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	call := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Chart("mostPopular").
		MaxResults(PageSize).
		Context(ctx)
	if region != "" {
		call = call.RegionCode(region)
	}
	if category != "" {
		call = call.VideoCategoryId(category)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	c.quota.Record("videos.list")
	if err != nil {
		return nil, "", Classify(err)
	}

	items := make([]VideoItem, 0, len(resp.Items))
	for _, v := range resp.Items {
		items = append(items, videoItemFrom(v))
	}
	return items, resp.NextPageToken, nil
}

// ChannelsByID resolves channel statistics for the given ids, batching by
// the API page size. Batches are independent, so they are fetched
// concurrently and awaited together. The result map is keyed by channel id;
// ids the API does not return are simply absent.
func (c *Client) ChannelsByID(ctx context.Context, ids []string) (map[string]ChannelItem, error) {
	out := make(map[string]ChannelItem, len(ids))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for start := 0; start < len(ids); start += PageSize {
		batch := ids[start:min(start+PageSize, len(ids))]
		g.Go(func() error {
			resolved, err := c.channelBatch(gctx, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			for id, ch := range resolved {
				out[id] = ch
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) channelBatch(ctx context.Context, ids []string) (map[string]ChannelItem, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.service.Channels.List([]string{"snippet", "statistics", "brandingSettings"}).
		Id(ids...).
		MaxResults(int64(len(ids))).
		Context(ctx).
		Do()
	c.quota.Record("channels.list")
	if err != nil {
		return nil, Classify(err)
	}

	out := make(map[string]ChannelItem, len(resp.Items))
	for _, ch := range resp.Items {
		out[ch.Id] = channelItemFrom(ch)
	}
	return out, nil
}

// VideosByID fetches full video details for the given ids in one batch.
func (c *Client) VideosByID(ctx context.Context, ids []string) ([]VideoItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		MaxResults(int64(len(ids))).
		Context(ctx).
		Do()
	c.quota.Record("videos.list")
	if err != nil {
		return nil, Classify(err)
	}

	items := make([]VideoItem, 0, len(resp.Items))
	for _, v := range resp.Items {
		items = append(items, videoItemFrom(v))
	}
	return items, nil
}

// RecentUploads returns up to max recent uploads for a channel with full
// statistics. The uploads playlist gives exact upload order, unlike search.
func (c *Client) RecentUploads(ctx context.Context, channelID string, max int64) ([]VideoItem, error) {
	listCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	chResp, err := c.service.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(listCtx).
		Do()
	c.quota.Record("channels.list")
	if err != nil {
		return nil, Classify(err)
	}
	if len(chResp.Items) == 0 {
		return nil, Classify(&googleapi.Error{Code: 404, Message: "channel not found: " + channelID})
	}
	uploads := chResp.Items[0].ContentDetails.RelatedPlaylists.Uploads

	plCtx, cancelPl := context.WithTimeout(ctx, callTimeout)
	defer cancelPl()

	plResp, err := c.service.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(uploads).
		MaxResults(max).
		Context(plCtx).
		Do()
	c.quota.Record("playlistItems.list")
	if err != nil {
		return nil, Classify(err)
	}

	ids := make([]string, 0, len(plResp.Items))
	for _, item := range plResp.Items {
		ids = append(ids, item.ContentDetails.VideoId)
	}
	return c.VideosByID(ctx, ids)
}

func videoItemFrom(v *youtube.Video) VideoItem {
	item := VideoItem{ID: v.Id}
	if v.Snippet != nil {
		item.Title = v.Snippet.Title
		item.ChannelID = v.Snippet.ChannelId
		item.ChannelName = v.Snippet.ChannelTitle
		item.CategoryID = v.Snippet.CategoryId
		if t, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
			item.PublishedAt = t
		}
		if v.Snippet.Thumbnails != nil && v.Snippet.Thumbnails.Medium != nil {
			item.ThumbnailURL = v.Snippet.Thumbnails.Medium.Url
		}
	}
	if v.ContentDetails != nil {
		item.DurationSeconds = ParseISODuration(v.ContentDetails.Duration)
	}
	if v.Statistics != nil {
		item.ViewCount = int64(v.Statistics.ViewCount)
	}
	return item
}

func channelItemFrom(ch *youtube.Channel) ChannelItem {
	item := ChannelItem{ID: ch.Id}
	if ch.Snippet != nil {
		item.Title = ch.Snippet.Title
		item.Country = ch.Snippet.Country
		if ch.Snippet.Thumbnails != nil && ch.Snippet.Thumbnails.Default != nil {
			item.AvatarURL = ch.Snippet.Thumbnails.Default.Url
		}
	}
	if ch.Statistics != nil {
		item.SubscriberCount = int64(ch.Statistics.SubscriberCount)
		item.ViewCount = int64(ch.Statistics.ViewCount)
		item.VideoCount = int64(ch.Statistics.VideoCount)
	}
	if ch.BrandingSettings != nil && ch.BrandingSettings.Channel != nil && ch.BrandingSettings.Channel.Keywords != "" {
		item.Tags = splitKeywords(ch.BrandingSettings.Channel.Keywords)
	}
	return item
}

// splitKeywords splits the brandingSettings keyword string, which mixes
// space separation with double-quoted phrases.
func splitKeywords(s string) []string {
	var out []string
	var cur []rune
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = cur[:0]
			}
		default:
			cur = append(cur, r)
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}
