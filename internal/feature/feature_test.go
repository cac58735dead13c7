package feature

import (
	"math"
	"strings"
	"testing"

	"surgecast/internal/model"
)

func TestExtractTransforms(t *testing.T) {
	dur := 30.0
	in := model.PredictionInput{
		Platform:              model.PlatformTikTok,
		ContentType:           model.ContentVideo,
		Caption:               strings.Repeat("a", 140),
		Hashtags:              []string{"#a", "#b", "#c"},
		MediaCount:            2,
		VideoDuration:         &dur,
		PostingHour:           6,
		DayOfWeek:             0,
		CreatorFollowers:      0,
		CreatorEngagementRate: 0.05,
		CreatorAvgViews:       0,
	}
	v := Extract(in)

	if got := v["caption_length"]; math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("caption_length=%v", got)
	}
	if got := v["hashtag_count"]; math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("hashtag_count=%v", got)
	}
	if got := v["media_count"]; math.Abs(got-0.2) > 1e-12 {
		t.Fatalf("media_count=%v", got)
	}
	if v["is_video"] != 1.0 {
		t.Fatalf("is_video=%v", v["is_video"])
	}
	if got := v["video_duration"]; math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("video_duration=%v", got)
	}
	// hour 6 of 24 is a quarter turn
	if got := v["posting_hour_sin"]; math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("posting_hour_sin=%v", got)
	}
	if got := v["posting_hour_cos"]; math.Abs(got) > 1e-12 {
		t.Fatalf("posting_hour_cos=%v", got)
	}
	if v["log_followers"] != 0 {
		t.Fatalf("log_followers=%v", v["log_followers"])
	}
	if v["log_avg_views"] != 0 {
		t.Fatalf("log_avg_views=%v", v["log_avg_views"])
	}
	if got := v["engagement_rate"]; math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("engagement_rate=%v", got)
	}
}

func TestExtractCaps(t *testing.T) {
	in := model.PredictionInput{
		Caption:               strings.Repeat("x", 1000),
		Hashtags:              make([]string, 60),
		MediaCount:            10,
		CreatorEngagementRate: 0.5,
	}
	v := Extract(in)
	for _, name := range []string{"caption_length", "hashtag_count", "media_count", "engagement_rate"} {
		if v[name] != 1.0 {
			t.Fatalf("%s=%v, want capped at 1", name, v[name])
		}
	}
}

func TestCaptionLengthCountsRunes(t *testing.T) {
	// 140 two-byte runes: half the 280 cap, not the full byte length.
	v := Extract(model.PredictionInput{Caption: strings.Repeat("é", 140)})
	if got := v["caption_length"]; math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("caption_length=%v, want 0.5", got)
	}
}

func TestExtractDurationSentinel(t *testing.T) {
	// Missing duration is a neutral 0.5, not zero.
	v := Extract(model.PredictionInput{ContentType: model.ContentVideo})
	if v["video_duration"] != 0.5 {
		t.Fatalf("missing duration=%v, want 0.5", v["video_duration"])
	}
	long := 300.0
	v = Extract(model.PredictionInput{ContentType: model.ContentVideo, VideoDuration: &long})
	if v["video_duration"] != 1.0 {
		t.Fatalf("long duration=%v, want 1", v["video_duration"])
	}
}

func TestCyclicEncodingAdjacency(t *testing.T) {
	// Hour 23 and hour 0 must be numerically close, unlike 23 and 12.
	dist := func(a, b model.PredictionInput) float64 {
		va, vb := Extract(a), Extract(b)
		ds := va["posting_hour_sin"] - vb["posting_hour_sin"]
		dc := va["posting_hour_cos"] - vb["posting_hour_cos"]
		return math.Hypot(ds, dc)
	}
	h23 := model.PredictionInput{PostingHour: 23}
	h0 := model.PredictionInput{PostingHour: 0}
	h12 := model.PredictionInput{PostingHour: 12}
	if dist(h23, h0) >= dist(h23, h12) {
		t.Fatalf("hour 23 closer to 12 than to 0")
	}
}

func TestWeightsBlendUnmatchedContributeZero(t *testing.T) {
	w := DefaultWeights()
	v := Vector{"engagement_rate": 1.0}
	// Only engagement_rate matches: 1.0 * 0.15. Weights with no feature
	// (hashtag_relevance, media_quality, ...) must add nothing.
	if got := w.Blend(v); math.Abs(got-0.15) > 1e-12 {
		t.Fatalf("blend=%v, want 0.15", got)
	}
	if got := (Weights{}).Blend(v); got != 0 {
		t.Fatalf("empty weights blend=%v", got)
	}
}
