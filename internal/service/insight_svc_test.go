package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
)

type fakeGenerator struct {
	insight *model.Insight
	err     error
	delay   time.Duration
}

func (f *fakeGenerator) GenerateInsight(ctx context.Context, _ string) (*model.Insight, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.insight, f.err
}

func rankedBatch() *model.RankingResult {
	return &model.RankingResult{
		Kind: model.KindVideos,
		Videos: []model.RankedVideo{
			{Rank: 1, VideoID: "a", Title: "first", ChannelName: "ch", ViewCount: 100},
		},
	}
}

func TestRankingInsight_Success(t *testing.T) {
	gen := &fakeGenerator{insight: &model.Insight{Summary: "good week"}}
	svc := NewInsightService(gen, time.Second)

	got := svc.RankingInsight(context.Background(), rankedBatch())
	if got.Pending {
		t.Error("successful generation should not be pending")
	}
	if got.Summary != "good week" {
		t.Errorf("summary = %q, want %q", got.Summary, "good week")
	}
}

func TestRankingInsight_TimeoutFallsBack(t *testing.T) {
	gen := &fakeGenerator{insight: &model.Insight{Summary: "late"}, delay: time.Second}
	svc := NewInsightService(gen, 10*time.Millisecond)

	got := svc.RankingInsight(context.Background(), rankedBatch())
	if !got.Pending {
		t.Error("timed-out generation must yield the pending placeholder")
	}
}

func TestRankingInsight_ErrorFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewInsightService(gen, time.Second)

	got := svc.RankingInsight(context.Background(), rankedBatch())
	if !got.Pending {
		t.Error("generation errors must yield the pending placeholder, not surface")
	}
}

func TestRankingInsight_EmptyBatch(t *testing.T) {
	gen := &fakeGenerator{insight: &model.Insight{Summary: "x"}}
	svc := NewInsightService(gen, time.Second)

	got := svc.RankingInsight(context.Background(), &model.RankingResult{Kind: model.KindVideos})
	if !got.Pending {
		t.Error("no data means nothing to analyze; expect the placeholder")
	}
}

func TestRankingInsight_NilGenerator(t *testing.T) {
	svc := NewInsightService(nil, time.Second)
	got := svc.RankingInsight(context.Background(), rankedBatch())
	if !got.Pending {
		t.Error("unconfigured generator must degrade to the placeholder")
	}
}

func TestBuildRankingPrompt_MentionsEstimates(t *testing.T) {
	prompt := buildRankingPrompt(rankedBatch())
	if prompt == "" {
		t.Fatal("empty prompt")
	}
	// The prompt must frame revenue figures as estimates.
	if !strings.Contains(strings.ToLower(prompt), "estimate") {
		t.Error("prompt should tell the model revenue figures are estimates")
	}
}
