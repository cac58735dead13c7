package engine

import (
	"math"

	"surgecast/internal/feature"
	"surgecast/internal/model"
	"surgecast/internal/platform"
)

// RawPrediction holds the estimator's count predictions before the rate and
// factor annotations are attached.
type RawPrediction struct {
	Views      float64
	Likes      float64
	Comments   float64
	Shares     float64
	Confidence float64
	// BaseScore is the feature-weight blend. Nothing downstream consumes it
	// yet; it rides along as the hook for a real weighted ensemble.
	BaseScore float64
}

// estimate combines the feature vector with the platform's multiplier row.
// Counts truncate toward zero, then floors apply so downstream ratios never
// see a degenerate zero.
func estimate(v feature.Vector, weights feature.Weights, p model.Platform) RawPrediction {
	mult := platform.MultipliersFor(p)

	views := (v["log_followers"]*100 + v["log_avg_views"]*50) * mult.Views
	likes := views * (0.02 + v["engagement_rate"]*0.1) * mult.Likes
	comments := likes * (0.05 + v["engagement_rate"]*0.1) * mult.Comments
	shares := likes * 0.02 * mult.Shares

	return RawPrediction{
		Views:      math.Max(100, math.Trunc(views)),
		Likes:      math.Max(10, math.Trunc(likes)),
		Comments:   math.Max(1, math.Trunc(comments)),
		Shares:     math.Max(0, math.Trunc(shares)),
		Confidence: math.Min(0.95, 0.5+float64(len(v))*0.05),
		BaseScore:  weights.Blend(v),
	}
}

// engagementRate derives the single weighted rate percentage. Comments count
// double and shares triple: deeper engagement is rarer and worth more.
func engagementRate(raw RawPrediction) float64 {
	if raw.Views <= 0 {
		return 0
	}
	total := raw.Likes + raw.Comments*2 + raw.Shares*3
	rate := total / raw.Views * 100
	return math.Min(50, math.Round(rate*100)/100)
}

// analyzeFactors decomposes a prediction into human-interpretable
// contribution scores. Diagnostic only; never fed back into predictions.
func analyzeFactors(v feature.Vector, raw RawPrediction) map[string]float64 {
	round2 := func(x float64) float64 { return math.Round(x*100) / 100 }
	return map[string]float64{
		"timing_impact":    round2((v["posting_hour_sin"] + 1) * 10),
		"content_quality":  round2(v["is_video"]*30 + v["caption_length"]*20),
		"creator_strength": round2(v["engagement_rate"]*40 + v["log_followers"]*20),
		"hashtag_power":    round2(v["hashtag_count"] * 25),
		"momentum_factor":  round2(math.Min(1, raw.Confidence) * 30),
	}
}
