package service

import (
	"context"
	"errors"
	"testing"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/youtube"
)

type fakeUploads struct {
	videos []youtube.VideoItem
	err    error
}

func (f *fakeUploads) RecentUploads(_ context.Context, _ string, _ int64) ([]youtube.VideoItem, error) {
	return f.videos, f.err
}

func channelUploads(views ...int64) []youtube.VideoItem {
	items := make([]youtube.VideoItem, 0, len(views))
	for i, v := range views {
		items = append(items, youtube.VideoItem{
			ID:              string(rune('a' + i)),
			ChannelID:       "ch1",
			ViewCount:       v,
			DurationSeconds: 300,
			CategoryID:      "20",
		})
	}
	return items
}

func TestFindOutliers_FlagsAboveMultiple(t *testing.T) {
	// avg = (1000+1000+1000+9000)/4 = 3000; threshold at 2x = 6000.
	uploads := &fakeUploads{videos: channelUploads(1000, 1000, 1000, 9000)}
	res := &fakeResolver{channels: map[string]youtube.ChannelItem{
		"ch1": {ID: "ch1", SubscriberCount: 50_000, Country: "KR"},
	}}
	svc := NewOutlierService(uploads, res)

	result, err := svc.FindOutliers(context.Background(), "ch1", 2.0, 30)
	if err != nil {
		t.Fatalf("FindOutliers: %v", err)
	}

	if result.AverageViews != 3000 {
		t.Errorf("average = %v, want 3000", result.AverageViews)
	}
	if len(result.Outliers) != 1 {
		t.Fatalf("got %d outliers, want 1", len(result.Outliers))
	}
	o := result.Outliers[0]
	if o.ViewCount != 9000 {
		t.Errorf("outlier views = %d, want 9000", o.ViewCount)
	}
	if o.Multiplier != 3.0 {
		t.Errorf("multiplier = %v, want 3.0", o.Multiplier)
	}
	if !o.Estimated {
		t.Error("revenue on outliers must be tagged estimated")
	}
}

func TestFindOutliers_AtThresholdIsNotOutlier(t *testing.T) {
	// avg = 2000, 2x threshold = 4000; a video at exactly 4000 stays in.
	uploads := &fakeUploads{videos: channelUploads(1000, 1000, 4000, 2000)}
	res := &fakeResolver{channels: map[string]youtube.ChannelItem{"ch1": {ID: "ch1"}}}
	svc := NewOutlierService(uploads, res)

	result, err := svc.FindOutliers(context.Background(), "ch1", 2.0, 30)
	if err != nil {
		t.Fatalf("FindOutliers: %v", err)
	}
	if len(result.Outliers) != 0 {
		t.Errorf("video exactly at threshold flagged as outlier")
	}
}

func TestFindOutliers_SortedByViewsWithRanks(t *testing.T) {
	uploads := &fakeUploads{videos: channelUploads(100, 100, 100, 100, 5000, 9000, 7000)}
	res := &fakeResolver{channels: map[string]youtube.ChannelItem{"ch1": {ID: "ch1"}}}
	svc := NewOutlierService(uploads, res)

	result, err := svc.FindOutliers(context.Background(), "ch1", 2.0, 30)
	if err != nil {
		t.Fatalf("FindOutliers: %v", err)
	}
	if len(result.Outliers) != 3 {
		t.Fatalf("got %d outliers, want 3", len(result.Outliers))
	}
	wantViews := []int64{9000, 7000, 5000}
	for i, o := range result.Outliers {
		if o.ViewCount != wantViews[i] {
			t.Errorf("position %d: views = %d, want %d", i, o.ViewCount, wantViews[i])
		}
		if o.Rank != i+1 {
			t.Errorf("position %d: rank = %d, want %d", i, o.Rank, i+1)
		}
	}
}

func TestFindOutliers_UsesOutlierShortsThreshold(t *testing.T) {
	// 120 s is long-form in the ranking view but short-form here (180 s).
	videos := channelUploads(100, 100, 100, 100, 9000)
	videos[4].DurationSeconds = 120
	uploads := &fakeUploads{videos: videos}
	res := &fakeResolver{channels: map[string]youtube.ChannelItem{"ch1": {ID: "ch1"}}}
	svc := NewOutlierService(uploads, res)

	result, err := svc.FindOutliers(context.Background(), "ch1", 2.0, 30)
	if err != nil {
		t.Fatalf("FindOutliers: %v", err)
	}
	if len(result.Outliers) != 1 {
		t.Fatalf("got %d outliers, want 1", len(result.Outliers))
	}
	if !result.Outliers[0].IsShort {
		t.Error("120 s upload must be short-form under the 180 s outlier threshold")
	}
}

func TestFindOutliers_EmptyChannel(t *testing.T) {
	svc := NewOutlierService(&fakeUploads{}, &fakeResolver{})
	_, err := svc.FindOutliers(context.Background(), "ch1", 2.0, 30)
	if !errors.Is(err, ErrEmptyChannel) {
		t.Errorf("got %v, want ErrEmptyChannel", err)
	}
}

func TestFindOutliers_UploadsErrorPropagates(t *testing.T) {
	svc := NewOutlierService(&fakeUploads{err: errors.New("quota exceeded")}, &fakeResolver{})
	_, err := svc.FindOutliers(context.Background(), "ch1", 2.0, 30)
	if err == nil {
		t.Fatal("uploads failure must propagate")
	}
}
