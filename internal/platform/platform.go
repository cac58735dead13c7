package platform

import (
	"fmt"
	"time"

	"surgecast/internal/model"
)

// Multipliers scales each predicted metric for a platform, encoding e.g.
// that tiktok over-indexes on views and shares relative to youtube.
type Multipliers struct {
	Views    float64
	Likes    float64
	Comments float64
	Shares   float64
}

var multipliers = map[model.Platform]Multipliers{
	model.PlatformYouTube:   {Views: 1.5, Likes: 0.8, Comments: 0.7, Shares: 0.6},
	model.PlatformTikTok:    {Views: 2.0, Likes: 1.2, Comments: 0.9, Shares: 1.5},
	model.PlatformInstagram: {Views: 1.2, Likes: 1.1, Comments: 0.8, Shares: 0.5},
	model.PlatformTwitter:   {Views: 0.8, Likes: 1.0, Comments: 1.2, Shares: 1.3},
	model.PlatformLinkedIn:  {Views: 0.7, Likes: 0.9, Comments: 1.4, Shares: 1.1},
	model.PlatformFacebook:  {Views: 0.9, Likes: 1.0, Comments: 0.8, Shares: 0.9},
	model.PlatformTwitch:    {Views: 1.3, Likes: 0.7, Comments: 1.5, Shares: 0.5},
}

// MultipliersFor returns the platform's row, defaulting to youtube's.
func MultipliersFor(p model.Platform) Multipliers {
	if m, ok := multipliers[p]; ok {
		return m
	}
	return multipliers[model.PlatformYouTube]
}

var bestHours = map[model.Platform][]int{
	model.PlatformYouTube:   {14, 15, 16, 17, 18},
	model.PlatformTikTok:    {7, 8, 9, 12, 19, 20, 21},
	model.PlatformInstagram: {9, 12, 15, 18, 19, 20},
	model.PlatformTwitter:   {8, 9, 12, 13, 17},
	model.PlatformLinkedIn:  {7, 8, 9, 10, 11},
	model.PlatformFacebook:  {13, 14, 15, 16},
	model.PlatformTwitch:    {18, 19, 20, 21, 22},
}

var defaultBestHours = []int{9, 12, 15, 18}

// BestHours returns the platform's peak posting hours, or the default set
// for unlisted platforms. Callers get a copy.
func BestHours(p model.Platform) []int {
	hours, ok := bestHours[p]
	if !ok {
		hours = defaultBestHours
	}
	out := make([]int, len(hours))
	copy(out, hours)
	return out
}

// IsBestHour reports whether hour falls in the platform's peak set.
func IsBestHour(p model.Platform, hour int) bool {
	for _, h := range BestHours(p) {
		if h == hour {
			return true
		}
	}
	return false
}

// BestHoursRecommendation formats the advisory string for a best-hours set.
func BestHoursRecommendation(hours []int) string {
	if len(hours) == 0 {
		return ""
	}
	lo, hi := hours[0], hours[0]
	for _, h := range hours[1:] {
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	return fmt.Sprintf("Post between %d:00 and %d:00 for best engagement", lo, hi)
}

var optimalDurations = map[model.Platform]int{
	model.PlatformYouTube:   600,
	model.PlatformTikTok:    30,
	model.PlatformInstagram: 30,
	model.PlatformTwitter:   60,
	model.PlatformLinkedIn:  120,
}

// OptimalDuration returns the ideal video length in seconds, 60 for
// unlisted platforms.
func OptimalDuration(p model.Platform) int {
	if d, ok := optimalDurations[p]; ok {
		return d
	}
	return 60
}

// NextBestWindow returns the next wall-clock time whose hour falls in the
// platform's best-hours set, searching up to two days ahead.
func NextBestWindow(now time.Time, p model.Platform) time.Time {
	for i := 0; i < 48; i++ {
		cand := now.Add(time.Duration(i) * time.Hour)
		if IsBestHour(p, cand.Hour()) {
			return cand
		}
	}
	return now.Add(15 * time.Minute)
}
