package feature

import (
	"math"
	"unicode/utf8"

	"surgecast/internal/model"
)

// Vector is the normalized numeric view of a post/creator. Values sit in
// [0,1] except the sin/cos pairs, which span [-1,1].
type Vector map[string]float64

// Extract builds the feature vector for a validated input. Pure; the only
// failure mode is input validation, which happens before this is called.
func Extract(in model.PredictionInput) Vector {
	isVideo := 0.0
	if in.ContentType.IsVideo() {
		isVideo = 1.0
	}
	// Missing duration gets a neutral 0.5, an explicit "unknown" sentinel so
	// absent data is not scored as a zero-length video.
	duration := 0.5
	if in.VideoDuration != nil && *in.VideoDuration > 0 {
		duration = math.Min(*in.VideoDuration/60, 1.0)
	}
	return Vector{
		"caption_length": math.Min(float64(utf8.RuneCountInString(in.Caption))/280, 1.0),
		"hashtag_count":  math.Min(float64(len(in.Hashtags))/30, 1.0),
		"media_count":    math.Min(float64(in.MediaCount)/10, 1.0),
		"is_video":       isVideo,
		"video_duration": duration,

		// Cyclic encodings keep hour 23 numerically adjacent to hour 0.
		"posting_hour_sin": math.Sin(2 * math.Pi * float64(in.PostingHour) / 24),
		"posting_hour_cos": math.Cos(2 * math.Pi * float64(in.PostingHour) / 24),
		"day_of_week_sin":  math.Sin(2 * math.Pi * float64(in.DayOfWeek) / 7),
		"day_of_week_cos":  math.Cos(2 * math.Pi * float64(in.DayOfWeek) / 7),

		// Log compression so creator scale doesn't dominate linearly.
		"log_followers":   math.Log1p(float64(in.CreatorFollowers)) / 25,
		"engagement_rate": math.Min(in.CreatorEngagementRate*10, 1.0),
		"log_avg_views":   math.Log1p(in.CreatorAvgViews) / 20,
	}
}

// Weights is a static per-feature weight table. Today only its keys are
// matched against feature names when blending; the blended sum rides along
// on predictions as a diagnostic and the count formulas do not consume it.
// Extension point for a real weighted ensemble.
type Weights map[string]float64

// DefaultWeights returns the static feature-weight table.
func DefaultWeights() Weights {
	return Weights{
		// Content
		"caption_length":        0.05,
		"hashtag_count":         0.08,
		"hashtag_relevance":     0.12,
		"media_quality":         0.10,
		"content_type_video":    0.08,
		"content_type_carousel": 0.05,
		// Timing
		"posting_hour": 0.07,
		"day_of_week":  0.04,
		// Creator
		"follower_count":  0.08,
		"engagement_rate": 0.15,
		"avg_views":       0.10,
		"consistency":     0.05,
		// Historical
		"recent_performance": 0.08,
		"trend_alignment":    0.05,
	}
}

// Blend sums weight*feature over matching names; unmatched weights
// contribute zero.
func (w Weights) Blend(v Vector) float64 {
	sum := 0.0
	for name, weight := range w {
		sum += v[name] * weight
	}
	return sum
}
