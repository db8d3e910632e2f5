package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/youtube"
)

const (
	// DefaultOutlierMultiplier flags videos with at least 3x the channel's
	// average views.
	DefaultOutlierMultiplier = 3.0

	// DefaultOutlierSample is how many recent uploads form the baseline.
	DefaultOutlierSample = 30
)

// ErrEmptyChannel is returned when a channel has no uploads to sample.
var ErrEmptyChannel = errors.New("channel has no recent uploads")

// UploadsSource supplies a channel's recent uploads with statistics.
type UploadsSource interface {
	RecentUploads(ctx context.Context, channelID string, max int64) ([]youtube.VideoItem, error)
}

// OutlierService finds a channel's breakout videos: uploads whose view count
// exceeds a multiple of the channel's sample average. This view classifies
// shorts with the wider 180 s cutoff.
type OutlierService struct {
	uploads  UploadsSource
	channels ChannelResolver
	now      func() time.Time
}

func NewOutlierService(uploads UploadsSource, channels ChannelResolver) *OutlierService {
	return &OutlierService{uploads: uploads, channels: channels, now: time.Now}
}

// FindOutliers samples up to sampleSize recent uploads and returns the ones
// with views above multiplier times the sample average, most-viewed first.
func (s *OutlierService) FindOutliers(ctx context.Context, channelID string, multiplier float64, sampleSize int) (*model.OutlierResult, error) {
	if multiplier <= 0 {
		multiplier = DefaultOutlierMultiplier
	}
	if sampleSize <= 0 || sampleSize > 50 {
		sampleSize = DefaultOutlierSample
	}

	videos, err := s.uploads.RecentUploads(ctx, channelID, int64(sampleSize))
	if err != nil {
		return nil, fmt.Errorf("recent uploads for %s: %w", channelID, err)
	}
	if len(videos) == 0 {
		return nil, ErrEmptyChannel
	}

	var total int64
	for _, v := range videos {
		total += v.ViewCount
	}
	avg := float64(total) / float64(len(videos))
	threshold := avg * multiplier

	chans, err := s.channels.ChannelsByID(ctx, []string{channelID})
	if err != nil {
		return nil, fmt.Errorf("resolve channel %s: %w", channelID, err)
	}
	subs := chans[channelID].SubscriberCount
	country := chans[channelID].Country

	result := &model.OutlierResult{
		ChannelID:    channelID,
		SampleSize:   len(videos),
		AverageViews: avg,
		Threshold:    threshold,
		GeneratedAt:  s.now().UTC(),
	}

	for _, v := range videos {
		if float64(v.ViewCount) <= threshold {
			continue
		}
		result.Outliers = append(result.Outliers, model.OutlierVideo{
			RankedVideo: model.RankedVideo{
				VideoID:          v.ID,
				Title:            v.Title,
				ThumbnailURL:     v.ThumbnailURL,
				PublishedAt:      v.PublishedAt,
				ChannelID:        v.ChannelID,
				ChannelName:      v.ChannelName,
				DurationSeconds:  v.DurationSeconds,
				IsShort:          v.DurationSeconds <= model.ShortsThresholdOutlier,
				ViewCount:        v.ViewCount,
				CategoryID:       v.CategoryID,
				CountryCode:      country,
				EstimatedRevenue: EstimateRevenue(v.ViewCount, v.DurationSeconds, v.CategoryID, country, subs, model.ShortsThresholdOutlier),
				Estimated:        true,
			},
			ChannelAverageViews: avg,
			Multiplier:          float64(v.ViewCount) / avg,
		})
	}

	// Most viewed first, rank within the outlier set.
	sort.SliceStable(result.Outliers, func(i, j int) bool {
		return result.Outliers[i].ViewCount > result.Outliers[j].ViewCount
	})
	for i := range result.Outliers {
		result.Outliers[i].Rank = i + 1
	}

	return result, nil
}
