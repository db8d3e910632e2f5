package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/cache"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/youtube"
)

const (
	// MaxTrendingPages caps the pagination loop: at most 10 pages of 50
	// raw items are scanned per request, however aggressive the filters.
	MaxTrendingPages = 10

	DefaultRankingLimit = 50
	MaxRankingLimit     = 200
)

// ErrThresholdRequired is returned when a query omits the shorts duration
// threshold. The ranking and outlier views use different cutoffs, so the
// caller has to say which one it means.
var ErrThresholdRequired = errors.New("shorts threshold must be set on the query")

// TrendingSource supplies pages of the mostPopular chart.
type TrendingSource interface {
	TrendingPage(ctx context.Context, region, category, pageToken string) ([]youtube.VideoItem, string, error)
}

// ChannelResolver supplies batched channel statistics lookups.
type ChannelResolver interface {
	ChannelsByID(ctx context.Context, ids []string) (map[string]youtube.ChannelItem, error)
}

// RankingService produces ranked video and channel lists from the trending
// chart, writing results through the daily cache so repeated queries on the
// same day cost no quota.
type RankingService struct {
	source   TrendingSource
	channels ChannelResolver
	cache    *cache.Cache
	now      func() time.Time
}

func NewRankingService(source TrendingSource, channels ChannelResolver, c *cache.Cache) *RankingService {
	return &RankingService{source: source, channels: channels, cache: c, now: time.Now}
}

// FetchRanking returns up to q.Limit ranked items for the query. A result
// shorter than the limit is a valid outcome (the chart plus filters could
// not supply more within the page budget); failures are returned as errors
// and never as a silently empty list.
func (s *RankingService) FetchRanking(ctx context.Context, q model.RankingQuery) (*model.RankingResult, error) {
	q, err := normalizeQuery(q)
	if err != nil {
		return nil, err
	}

	key := cache.RankingKey(q)
	var cached model.RankingResult
	if s.cache.GetDaily(ctx, key, &cached) {
		cached.FromCache = true
		return &cached, nil
	}

	collected, pages, err := s.collectTrending(ctx, q)
	if err != nil {
		return nil, err
	}

	result := &model.RankingResult{
		Kind:         q.Kind,
		PagesScanned: pages,
		GeneratedAt:  s.now().UTC(),
	}

	switch q.Kind {
	case model.KindChannels:
		result.Channels, err = s.buildChannelRanking(ctx, q, collected)
	default:
		result.Videos, err = s.buildVideoRanking(ctx, q, collected)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetDaily(ctx, key, result); err != nil {
		// A failed cache write degrades to refetching tomorrow's request,
		// it does not fail today's.
		log.Printf("ranking: cache write failed for %s: %v", key, err)
	}
	return result, nil
}

func normalizeQuery(q model.RankingQuery) (model.RankingQuery, error) {
	if q.ShortsThresholdSec <= 0 {
		return q, ErrThresholdRequired
	}
	if q.Kind == "" {
		q.Kind = model.KindVideos
	}
	if q.Country == "" {
		q.Country = model.CountryWorldwide
	}
	if q.Category == "" {
		q.Category = model.CategoryAll
	}
	if q.Format == "" {
		q.Format = model.FormatAll
	}
	if q.Limit <= 0 {
		q.Limit = DefaultRankingLimit
	}
	if q.Limit > MaxRankingLimit {
		q.Limit = MaxRankingLimit
	}
	return q, nil
}

// collectTrending walks the trending chart page by page, filtering each page
// as it arrives, until the target count is reached, the chart runs out, or
// the page cap is hit. Pages are fetched sequentially; the next page token
// comes from the previous response.
func (s *RankingService) collectTrending(ctx context.Context, q model.RankingQuery) ([]youtube.VideoItem, int, error) {
	region := q.Country
	if region == model.CountryWorldwide {
		region = ""
	}
	category := q.Category
	if category == model.CategoryAll {
		category = ""
	}

	excluded := make(map[string]struct{}, len(q.ExcludedCategories))
	for _, c := range q.ExcludedCategories {
		excluded[c] = struct{}{}
	}

	var collected []youtube.VideoItem
	var token string
	pages := 0

	for pages < MaxTrendingPages {
		items, next, err := s.source.TrendingPage(ctx, region, category, token)
		if err != nil {
			return nil, pages, fmt.Errorf("trending page %d: %w", pages+1, err)
		}
		pages++

		for _, item := range items {
			if _, skip := excluded[item.CategoryID]; skip {
				continue
			}
			if !matchesFormat(item.DurationSeconds, q.Format, q.ShortsThresholdSec) {
				continue
			}
			collected = append(collected, item)
		}

		if len(collected) >= q.Limit || next == "" {
			break
		}
		token = next
	}

	if len(collected) > q.Limit {
		collected = collected[:q.Limit]
	}
	return collected, pages, nil
}

func matchesFormat(durationSeconds int, format model.VideoFormat, threshold int) bool {
	switch format {
	case model.FormatShorts:
		return durationSeconds <= threshold
	case model.FormatLong:
		return durationSeconds > threshold
	default:
		return true
	}
}

// buildVideoRanking enriches the collected videos with subscriber counts and
// revenue estimates. Order is the chart's own popularity order; rank is the
// 1-based position and rankChange is always 0 (no historical baseline is
// kept).
func (s *RankingService) buildVideoRanking(ctx context.Context, q model.RankingQuery, items []youtube.VideoItem) ([]model.RankedVideo, error) {
	channels, err := s.resolveChannels(ctx, items)
	if err != nil {
		return nil, err
	}

	ranked := make([]model.RankedVideo, 0, len(items))
	for i, item := range items {
		subs := channels[item.ChannelID].SubscriberCount
		ranked = append(ranked, model.RankedVideo{
			Rank:             i + 1,
			RankChange:       0,
			VideoID:          item.ID,
			Title:            item.Title,
			ThumbnailURL:     item.ThumbnailURL,
			PublishedAt:      item.PublishedAt,
			ChannelID:        item.ChannelID,
			ChannelName:      item.ChannelName,
			DurationSeconds:  item.DurationSeconds,
			IsShort:          item.DurationSeconds <= q.ShortsThresholdSec,
			ViewCount:        item.ViewCount,
			CategoryID:       item.CategoryID,
			CountryCode:      q.Country,
			EstimatedRevenue: EstimateRevenue(item.ViewCount, item.DurationSeconds, item.CategoryID, q.Country, subs, q.ShortsThresholdSec),
			Estimated:        true,
		})
	}
	return ranked, nil
}

// buildChannelRanking aggregates the sampled videos per channel: one entry
// per channel id, viewsInPeriod is the single best video's view count (max,
// not sum), ordered by subscriber count descending.
func (s *RankingService) buildChannelRanking(ctx context.Context, q model.RankingQuery, items []youtube.VideoItem) ([]model.RankedChannel, error) {
	type sample struct {
		maxViews    int64
		maxDuration int
		categoryID  string
	}
	samples := make(map[string]*sample)
	var order []string

	for _, item := range items {
		smp, seen := samples[item.ChannelID]
		if !seen {
			smp = &sample{categoryID: item.CategoryID}
			samples[item.ChannelID] = smp
			order = append(order, item.ChannelID)
		}
		if item.ViewCount >= smp.maxViews {
			smp.maxViews = item.ViewCount
			smp.maxDuration = item.DurationSeconds
			smp.categoryID = item.CategoryID
		}
	}

	channels, err := s.resolveChannels(ctx, items)
	if err != nil {
		return nil, err
	}

	ranked := make([]model.RankedChannel, 0, len(order))
	for _, id := range order {
		smp := samples[id]
		ch := channels[id]
		country := ch.Country
		if country == "" {
			country = q.Country
		}
		ranked = append(ranked, model.RankedChannel{
			ChannelID:        id,
			ChannelName:      ch.Title,
			AvatarURL:        ch.AvatarURL,
			SubscriberCount:  ch.SubscriberCount,
			TotalViewCount:   ch.ViewCount,
			VideoCount:       ch.VideoCount,
			ViewsInPeriod:    smp.maxViews,
			CategoryID:       smp.categoryID,
			CountryCode:      country,
			Tags:             ch.Tags,
			Grade:            ChannelGrade(ch.SubscriberCount),
			EstimatedRevenue: EstimateRevenue(smp.maxViews, smp.maxDuration, smp.categoryID, country, ch.SubscriberCount, q.ShortsThresholdSec),
			Estimated:        true,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].SubscriberCount != ranked[j].SubscriberCount {
			return ranked[i].SubscriberCount > ranked[j].SubscriberCount
		}
		return ranked[i].ViewsInPeriod > ranked[j].ViewsInPeriod
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// resolveChannels deduplicates channel ids across the batch and fetches
// their statistics in one resolver call.
func (s *RankingService) resolveChannels(ctx context.Context, items []youtube.VideoItem) (map[string]youtube.ChannelItem, error) {
	seen := make(map[string]struct{}, len(items))
	var ids []string
	for _, item := range items {
		if _, dup := seen[item.ChannelID]; dup || item.ChannelID == "" {
			continue
		}
		seen[item.ChannelID] = struct{}{}
		ids = append(ids, item.ChannelID)
	}
	if len(ids) == 0 {
		return map[string]youtube.ChannelItem{}, nil
	}

	channels, err := s.channels.ChannelsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve channels: %w", err)
	}
	return channels, nil
}
