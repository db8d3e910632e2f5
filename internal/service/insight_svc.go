package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/pkg/timeout"
)

// DefaultInsightTimeout bounds insight generation; past it the caller gets
// the pending placeholder instead of waiting.
const DefaultInsightTimeout = 12 * time.Second

// InsightGenerator produces narrative text for a prompt. The Gemini client
// implements it.
type InsightGenerator interface {
	GenerateInsight(ctx context.Context, prompt string) (*model.Insight, error)
}

// InsightService wraps generation with the soft-timeout-with-fallback
// policy: insights are an enhancement, so a slow or failing model call
// yields a clearly-marked placeholder, never an error or a blocked request.
type InsightService struct {
	gen     InsightGenerator
	timeout time.Duration
}

func NewInsightService(gen InsightGenerator, d time.Duration) *InsightService {
	if d <= 0 {
		d = DefaultInsightTimeout
	}
	return &InsightService{gen: gen, timeout: d}
}

// RankingInsight generates narrative commentary for a ranking batch.
// It never returns an error: failures fall back to the pending insight.
func (s *InsightService) RankingInsight(ctx context.Context, result *model.RankingResult) *model.Insight {
	if s.gen == nil || result == nil || result.Len() == 0 {
		return model.PendingInsight()
	}

	prompt := buildRankingPrompt(result)
	insight, _ := timeout.WithDefault(ctx, s.timeout, model.PendingInsight(),
		func(ctx context.Context) (*model.Insight, error) {
			return s.gen.GenerateInsight(ctx, prompt)
		})
	return insight
}

// buildRankingPrompt summarizes the batch into a compact prompt. Only
// aggregate figures are sent; estimates are introduced as estimates so the
// model does not present them as ground truth.
func buildRankingPrompt(result *model.RankingResult) string {
	var b strings.Builder
	b.WriteString("You are an analyst for content creators. ")
	b.WriteString("Write a short summary, one strength, and one opportunity based on this trending snapshot. ")
	b.WriteString("All revenue figures are rough estimates, not actual payouts.\n\n")

	switch result.Kind {
	case model.KindChannels:
		fmt.Fprintf(&b, "Top channels (%d total):\n", len(result.Channels))
		for i, ch := range result.Channels {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&b, "%d. %s — %d subscribers, best video %d views, grade %s\n",
				ch.Rank, ch.ChannelName, ch.SubscriberCount, ch.ViewsInPeriod, ch.Grade)
		}
	default:
		fmt.Fprintf(&b, "Top videos (%d total):\n", len(result.Videos))
		for i, v := range result.Videos {
			if i >= 10 {
				break
			}
			form := "long-form"
			if v.IsShort {
				form = "short-form"
			}
			fmt.Fprintf(&b, "%d. %q by %s — %d views, %s\n",
				v.Rank, v.Title, v.ChannelName, v.ViewCount, form)
		}
	}
	return b.String()
}
