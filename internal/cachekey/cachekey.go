package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"surgecast/internal/model"
	"surgecast/internal/util"
)

// reduced is the canonical subset of a PredictionInput that keys the cache.
// Field order is fixed, hashtags are sorted and the caption truncated, so
// equal reduced inputs always hash identically.
type reduced struct {
	Platform    model.Platform    `json:"platform"`
	ContentType model.ContentType `json:"content_type"`
	Caption     string            `json:"caption"`
	Hashtags    []string          `json:"hashtags"`
	PostingHour int               `json:"posting_hour"`
	DayOfWeek   int               `json:"day_of_week"`
}

// For returns the stable cache key for an input. Creator stats and history
// are deliberately excluded: two inputs differing only in follower count
// share an entry. Known limitation, kept for compatibility.
func For(in model.PredictionInput) string {
	tags := make([]string, len(in.Hashtags))
	copy(tags, in.Hashtags)
	sort.Strings(tags)
	b, _ := json.Marshal(reduced{
		Platform:    in.Platform,
		ContentType: in.ContentType,
		Caption:     util.TruncateRunes(in.Caption, 100),
		Hashtags:    tags,
		PostingHour: in.PostingHour,
		DayOfWeek:   in.DayOfWeek,
	})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
