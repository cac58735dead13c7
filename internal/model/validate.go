package model

import (
	"fmt"
	"strings"
)

// ValidationError reports a field outside its declared domain.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParsePlatform maps a free-form string to a Platform, falling back to
// PlatformUnknown rather than failing.
func ParsePlatform(s string) Platform {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformYouTube, PlatformTikTok, PlatformInstagram, PlatformTwitter,
		PlatformLinkedIn, PlatformFacebook, PlatformTwitch:
		return Platform(strings.ToLower(strings.TrimSpace(s)))
	}
	return PlatformUnknown
}

// ParseContentType maps a free-form string to a ContentType, falling back to
// ContentUnknown rather than failing.
func ParseContentType(s string) ContentType {
	switch ContentType(strings.ToLower(strings.TrimSpace(s))) {
	case ContentVideo, ContentImage, ContentText, ContentCarousel,
		ContentReel, ContentShort:
		return ContentType(strings.ToLower(strings.TrimSpace(s)))
	}
	return ContentUnknown
}

// Validate checks every bounded numeric field once, at the boundary.
// Formulas downstream assume in-range values and never re-check.
func (in PredictionInput) Validate() error {
	if in.MediaCount < 0 || in.MediaCount > 10 {
		return &ValidationError{Field: "media_count", Reason: fmt.Sprintf("%d not in 0..10", in.MediaCount)}
	}
	if in.PostingHour < 0 || in.PostingHour > 23 {
		return &ValidationError{Field: "posting_hour", Reason: fmt.Sprintf("%d not in 0..23", in.PostingHour)}
	}
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return &ValidationError{Field: "day_of_week", Reason: fmt.Sprintf("%d not in 0..6", in.DayOfWeek)}
	}
	if in.CreatorFollowers < 0 {
		return &ValidationError{Field: "creator_followers", Reason: "must be >= 0"}
	}
	if in.CreatorEngagementRate < 0 || in.CreatorEngagementRate > 1 {
		return &ValidationError{Field: "creator_engagement_rate", Reason: fmt.Sprintf("%g not in 0..1", in.CreatorEngagementRate)}
	}
	if in.CreatorAvgViews < 0 {
		return &ValidationError{Field: "creator_avg_views", Reason: "must be >= 0"}
	}
	if in.VideoDuration != nil && *in.VideoDuration < 0 {
		return &ValidationError{Field: "video_duration", Reason: "must be >= 0"}
	}
	return nil
}
