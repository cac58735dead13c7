package virality

import (
	"math"
	"strings"

	"surgecast/internal/model"
	"surgecast/internal/platform"
	"surgecast/internal/util"
)

// Factors are the seven weighted sub-scores behind a virality score.
// Unbounded above in principle, practically small.
type Factors struct {
	EngagementRateRatio float64
	ShareRate           float64
	CommentDepth        float64
	ContentUniqueness   float64
	TimingScore         float64
	TrendAlignment      float64
	CreatorMomentum     float64
}

const (
	weightEngagementRateRatio = 0.20
	weightShareRate           = 0.25
	weightCommentDepth        = 0.10
	weightContentUniqueness   = 0.15
	weightTimingScore         = 0.10
	weightTrendAlignment      = 0.10
	weightCreatorMomentum     = 0.10
)

// emotionalWords lift the uniqueness heuristic when present in a caption.
var emotionalWords = []string{"amazing", "incredible", "shocking", "secret", "finally", "why"}

// Score derives a ViralityScore from an engagement prediction and its input.
// trending is the currently-trending hashtag set; empty is valid and floors
// trend alignment at 0.3.
func Score(in model.PredictionInput, eng model.EngagementPrediction, trending []string) model.ViralityScore {
	f := Compute(in, eng, trending)

	raw := f.EngagementRateRatio*weightEngagementRateRatio +
		f.ShareRate*weightShareRate +
		f.CommentDepth*weightCommentDepth +
		f.ContentUniqueness*weightContentUniqueness +
		f.TimingScore*weightTimingScore +
		f.TrendAlignment*weightTrendAlignment +
		f.CreatorMomentum*weightCreatorMomentum

	// The x20 scale maps typical raw sums (~0-5) onto 0-100.
	score := math.Min(100, math.Max(0, raw*20))

	return model.ViralityScore{
		Score:              math.Round(score*100) / 100,
		Tier:               TierFor(score),
		Probability:        math.Min(1.0, score/100+0.1),
		EstimatedReach:     int(float64(in.CreatorFollowers) * (1 + score/100) * f.ContentUniqueness),
		EstimatedPeakHours: estimatePeak(in, f),
		Recommendations:    recommendations(f, score),
	}
}

// Compute evaluates the seven sub-factors without aggregating them.
func Compute(in model.PredictionInput, eng model.EngagementPrediction, trending []string) Factors {
	return Factors{
		EngagementRateRatio: eng.PredictedEngagementRate / math.Max(in.CreatorEngagementRate, 0.01),
		ShareRate:           eng.PredictedShares / math.Max(eng.PredictedLikes, 1),
		CommentDepth:        eng.PredictedComments / math.Max(eng.PredictedShares, 1),
		ContentUniqueness:   Uniqueness(in.Caption),
		TimingScore:         timing(in),
		TrendAlignment:      trendAlignment(in.Hashtags, trending),
		CreatorMomentum:     momentum(in.Historical),
	}
}

// TierFor buckets a score at the 80/60/40 thresholds.
func TierFor(score float64) model.Tier {
	switch {
	case score >= 80:
		return model.TierViral
	case score >= 60:
		return model.TierHigh
	case score >= 40:
		return model.TierAverage
	default:
		return model.TierLow
	}
}

// Uniqueness is a local text heuristic: questions, numbers/lists, and
// emotional words each lift the base 0.5, capped at 1.0.
func Uniqueness(caption string) float64 {
	score := 0.5
	if strings.Contains(caption, "?") {
		score += 0.15
	}
	if strings.ContainsAny(caption, "1234567890.") {
		score += 0.10
	}
	if util.ContainsAnyCaseInsensitive(caption, emotionalWords) {
		score += 0.15
	}
	return math.Min(1.0, score)
}

func timing(in model.PredictionInput) float64 {
	best := platform.BestHours(in.Platform)
	if platform.IsBestHour(in.Platform, in.PostingHour) {
		return 1.0
	}
	if len(best) > 0 && math.Abs(float64(in.PostingHour-best[0])) <= 2 {
		return 0.7
	}
	return 0.3
}

func trendAlignment(hashtags, trending []string) float64 {
	set := make(map[string]struct{}, len(trending))
	for _, t := range trending {
		set[t] = struct{}{}
	}
	matches := 0
	for _, tag := range hashtags {
		if _, ok := set[tag]; ok {
			matches++
		}
	}
	return math.Min(1.0, float64(matches)*0.2+0.3)
}

func momentum(history []model.HistoricalPost) float64 {
	if len(history) == 0 {
		return 0.5
	}
	recent := history
	if len(history) > 5 {
		recent = history[len(history)-5:]
	}
	recentAvg := meanRate(recent)
	historicalAvg := meanRate(history)
	switch {
	case recentAvg > historicalAvg*1.2:
		return 1.0
	case recentAvg > historicalAvg:
		return 0.7
	default:
		return 0.5
	}
}

func meanRate(posts []model.HistoricalPost) float64 {
	sum := 0.0
	for _, p := range posts {
		sum += p.EngagementRate
	}
	return sum / float64(len(posts))
}

// estimatePeak guesses hours-to-peak after posting: video content ramps
// slower, unique content spreads longer, high-engagement creators peak
// faster. Floor of one hour.
func estimatePeak(in model.PredictionInput, f Factors) int {
	peak := 2
	if in.ContentType.IsVideo() {
		peak = 4
	}
	if f.ContentUniqueness > 0.7 {
		peak += 3
	}
	if in.CreatorEngagementRate > 0.05 {
		peak--
	}
	if peak < 1 {
		peak = 1
	}
	return peak
}

func recommendations(f Factors, score float64) []string {
	out := make([]string, 0, 5)
	if f.ShareRate < 0.02 {
		out = append(out, "Create more shareable content - ask questions, share insights")
	}
	if f.ContentUniqueness < 0.5 {
		out = append(out, "Add a unique angle or perspective to stand out")
	}
	if f.TrendAlignment < 0.5 {
		out = append(out, "Consider incorporating current trends or trending topics")
	}
	if f.TimingScore < 0.5 {
		out = append(out, "Post during peak engagement hours for your audience")
	}
	if score >= 80 {
		out = append(out, "High viral potential! Consider boosting this post")
	}
	return out
}
