package model

// Platform is a closed set of supported networks. Free-form strings parse
// via ParsePlatform; anything unrecognized becomes PlatformUnknown and every
// static table degrades to its default row for it.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitch    Platform = "twitch"
	PlatformUnknown   Platform = "unknown"
)

// ContentType is the closed set of post formats.
type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentImage    ContentType = "image"
	ContentText     ContentType = "text"
	ContentCarousel ContentType = "carousel"
	ContentReel     ContentType = "reel"
	ContentShort    ContentType = "short"
	ContentUnknown  ContentType = "unknown"
)

// IsVideo reports whether the format is time-based media.
func (c ContentType) IsVideo() bool {
	return c == ContentVideo || c == ContentReel || c == ContentShort
}

// HistoricalPost is one past-post record from the creator's history.
// Only EngagementRate feeds the momentum heuristic; the rest is optional
// context carried through from callers.
type HistoricalPost struct {
	EngagementRate float64 `json:"engagement_rate"`
	Views          float64 `json:"views,omitempty"`
	Likes          float64 `json:"likes,omitempty"`
}

// PredictionInput describes a not-yet-published post and its creator.
// Validate must pass before the input reaches any formula.
type PredictionInput struct {
	Platform              Platform         `json:"platform"`
	ContentType           ContentType      `json:"content_type"`
	Caption               string           `json:"caption"`
	Hashtags              []string         `json:"hashtags"`
	MediaCount            int              `json:"media_count"`
	VideoDuration         *float64         `json:"video_duration,omitempty"`
	PostingHour           int              `json:"posting_hour"`
	DayOfWeek             int              `json:"day_of_week"` // 0=Monday
	CreatorFollowers      int              `json:"creator_followers"`
	CreatorEngagementRate float64          `json:"creator_engagement_rate"`
	CreatorAvgViews       float64          `json:"creator_avg_views"`
	Historical            []HistoricalPost `json:"historical_performance,omitempty"`
}

// EngagementPrediction is the engine's primary output. Values are final once
// produced; cached copies are returned as-is to later callers.
type EngagementPrediction struct {
	PredictedLikes          float64            `json:"predicted_likes"`
	PredictedComments       float64            `json:"predicted_comments"`
	PredictedShares         float64            `json:"predicted_shares"`
	PredictedViews          float64            `json:"predicted_views"`
	PredictedEngagementRate float64            `json:"predicted_engagement_rate"`
	Confidence              float64            `json:"confidence"`
	Factors                 map[string]float64 `json:"factors"`
	Recommendations         []string           `json:"recommendations"`
}

// Tier buckets a virality score.
type Tier string

const (
	TierViral   Tier = "viral"
	TierHigh    Tier = "high"
	TierAverage Tier = "average"
	TierLow     Tier = "low"
)

// ViralityScore is the second-stage output derived from an
// EngagementPrediction plus the raw input.
type ViralityScore struct {
	Score              float64  `json:"score"`
	Tier               Tier     `json:"tier"`
	Probability        float64  `json:"probability"`
	EstimatedReach     int      `json:"estimated_reach"`
	EstimatedPeakHours int      `json:"estimated_peak_time_hours"`
	Recommendations    []string `json:"recommendations"`
}

// BatchVariant is one row of a batch prediction, labeled by input order.
type BatchVariant struct {
	Variant                 string  `json:"variant"`
	PredictedEngagementRate float64 `json:"predicted_engagement_rate"`
	PredictedViews          float64 `json:"predicted_views"`
	Confidence              float64 `json:"confidence"`
	TopFactor               string  `json:"top_factor"`
}

// BatchResult holds the ranked variants of a batch prediction.
type BatchResult struct {
	Predictions    []BatchVariant `json:"predictions"`
	BestVariant    *BatchVariant  `json:"best_variant,omitempty"`
	ImprovementTip string         `json:"improvement_tip,omitempty"`
}
