package model

import "time"

// RankingKind selects what FetchRanking returns: individual videos or
// channels aggregated from the sampled videos.
type RankingKind string

const (
	KindVideos   RankingKind = "videos"
	KindChannels RankingKind = "channels"
)

// VideoFormat filters ranking results by duration class.
type VideoFormat string

const (
	FormatAll    VideoFormat = "all"
	FormatLong   VideoFormat = "long"
	FormatShorts VideoFormat = "shorts"
)

// CountryWorldwide is the sentinel country code meaning "no region filter".
const CountryWorldwide = "worldwide"

// CategoryAll is the sentinel category id meaning "no category filter".
const CategoryAll = "all"

// Duration thresholds for the shorts/long-form split. The ranking view and
// the outlier view intentionally use different cutoffs, so the threshold is
// part of the query and callers must state it.
const (
	ShortsThresholdRanking = 60
	ShortsThresholdOutlier = 180
)

// RankingQuery holds every parameter that affects a ranking result.
type RankingQuery struct {
	Kind               RankingKind `json:"kind"`
	Country            string      `json:"country"`
	Category           string      `json:"category"`
	ExcludedCategories []string    `json:"excludedCategories,omitempty"`
	Format             VideoFormat `json:"format"`
	Limit              int         `json:"limit"`
	ShortsThresholdSec int         `json:"shortsThresholdSec"`
}

// RankedVideo is one entry of a video ranking.
type RankedVideo struct {
	Rank            int       `json:"rank"`
	RankChange      int       `json:"rankChange"`
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
	PublishedAt     time.Time `json:"publishedAt"`
	ChannelID       string    `json:"channelId"`
	ChannelName     string    `json:"channelName,omitempty"`
	DurationSeconds int       `json:"durationSeconds"`
	IsShort         bool      `json:"isShort"`
	ViewCount       int64     `json:"viewCount"`
	CategoryID      string    `json:"categoryId,omitempty"`
	CountryCode     string    `json:"countryCode,omitempty"`
	// EstimatedRevenue is a display heuristic derived from view count and
	// RPM multiplier tables. It has no relationship to actual payouts.
	EstimatedRevenue int64 `json:"estimatedRevenue"`
	Estimated        bool  `json:"estimated"`
}

// RankedChannel is one entry of a channel ranking, aggregated from the
// sampled videos sharing the same channel id.
type RankedChannel struct {
	Rank            int      `json:"rank"`
	ChannelID       string   `json:"channelId"`
	ChannelName     string   `json:"channelName"`
	AvatarURL       string   `json:"avatarUrl,omitempty"`
	SubscriberCount int64    `json:"subscriberCount"`
	TotalViewCount  int64    `json:"totalViewCount"`
	VideoCount      int64    `json:"videoCount"`
	ViewsInPeriod   int64    `json:"viewsInPeriod"`
	CategoryID      string   `json:"categoryId,omitempty"`
	CountryCode     string   `json:"countryCode,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Grade           string   `json:"grade"`
	// EstimatedRevenue is a display heuristic, not real payout data.
	EstimatedRevenue int64 `json:"estimatedRevenue"`
	Estimated        bool  `json:"estimated"`
}

// RankingResult is the output of one FetchRanking call. An empty item list
// with a nil error means the upstream genuinely had no matching items within
// the page budget; fetch failures are returned as errors, never as an empty
// result.
type RankingResult struct {
	Kind         RankingKind     `json:"kind"`
	Videos       []RankedVideo   `json:"videos,omitempty"`
	Channels     []RankedChannel `json:"channels,omitempty"`
	FromCache    bool            `json:"fromCache"`
	PagesScanned int             `json:"pagesScanned"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}

// Len returns the number of ranked items regardless of kind.
func (r *RankingResult) Len() int {
	if r.Kind == KindChannels {
		return len(r.Channels)
	}
	return len(r.Videos)
}

// OutlierVideo is a channel upload whose view count exceeds a multiple of
// the channel's sample average.
type OutlierVideo struct {
	RankedVideo
	ChannelAverageViews float64 `json:"channelAverageViews"`
	Multiplier          float64 `json:"multiplier"`
}

// OutlierResult is the output of one outlier analysis.
type OutlierResult struct {
	ChannelID    string         `json:"channelId"`
	SampleSize   int            `json:"sampleSize"`
	AverageViews float64        `json:"averageViews"`
	Threshold    float64        `json:"threshold"`
	Outliers     []OutlierVideo `json:"outliers"`
	GeneratedAt  time.Time      `json:"generatedAt"`
}
