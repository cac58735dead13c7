package virality

import (
	"math"
	"strings"
	"testing"

	"surgecast/internal/model"
)

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  model.Tier
	}{
		{80, model.TierViral},
		{79.99, model.TierHigh},
		{60, model.TierHigh},
		{59.99, model.TierAverage},
		{40, model.TierAverage},
		{39.99, model.TierLow},
		{0, model.TierLow},
		{100, model.TierViral},
	}
	for _, c := range cases {
		if got := TierFor(c.score); got != c.want {
			t.Fatalf("TierFor(%v)=%q, want %q", c.score, got, c.want)
		}
	}
}

func TestUniqueness(t *testing.T) {
	// "?" and an emotional word, no digit or period: 0.5+0.15+0.15.
	if got := Uniqueness("why is this happening amazing?"); math.Abs(got-0.8) > 1e-12 {
		t.Fatalf("uniqueness=%v, want 0.8", got)
	}
	if got := Uniqueness("plain caption"); got != 0.5 {
		t.Fatalf("base uniqueness=%v, want 0.5", got)
	}
	// Everything at once caps at 1.
	if got := Uniqueness("5 shocking secrets. why?"); got != 1.0 {
		t.Fatalf("capped uniqueness=%v, want 1", got)
	}
	if got := Uniqueness("top 3 tips"); math.Abs(got-0.6) > 1e-12 {
		t.Fatalf("digit-only uniqueness=%v, want 0.6", got)
	}
}

func TestTimingScore(t *testing.T) {
	in := model.PredictionInput{Platform: model.PlatformTikTok, PostingHour: 12}
	eng := model.EngagementPrediction{PredictedLikes: 100, PredictedShares: 2, PredictedComments: 5}
	if f := Compute(in, eng, nil); f.TimingScore != 1.0 {
		t.Fatalf("in-set hour: %v", f.TimingScore)
	}
	in.PostingHour = 5 // within 2h of tiktok's first best hour (7)
	if f := Compute(in, eng, nil); f.TimingScore != 0.7 {
		t.Fatalf("near hour: %v", f.TimingScore)
	}
	in.PostingHour = 15
	if f := Compute(in, eng, nil); f.TimingScore != 0.3 {
		t.Fatalf("off hour: %v", f.TimingScore)
	}
}

func TestTrendAlignment(t *testing.T) {
	in := model.PredictionInput{Hashtags: []string{"#go", "#dev"}}
	eng := model.EngagementPrediction{PredictedLikes: 10, PredictedShares: 1, PredictedComments: 1}
	// No trend source configured: floors at 0.3.
	if f := Compute(in, eng, nil); math.Abs(f.TrendAlignment-0.3) > 1e-12 {
		t.Fatalf("empty trending: %v", f.TrendAlignment)
	}
	if f := Compute(in, eng, []string{"#go"}); math.Abs(f.TrendAlignment-0.5) > 1e-12 {
		t.Fatalf("one match: %v", f.TrendAlignment)
	}
	in.Hashtags = []string{"#a", "#b", "#c", "#d"}
	if f := Compute(in, eng, []string{"#a", "#b", "#c", "#d"}); f.TrendAlignment != 1.0 {
		t.Fatalf("many matches should cap at 1: %v", f.TrendAlignment)
	}
}

func TestCreatorMomentum(t *testing.T) {
	eng := model.EngagementPrediction{PredictedLikes: 10, PredictedShares: 1, PredictedComments: 1}
	in := model.PredictionInput{}
	if f := Compute(in, eng, nil); f.CreatorMomentum != 0.5 {
		t.Fatalf("no history: %v", f.CreatorMomentum)
	}

	rising := make([]model.HistoricalPost, 0, 10)
	for i := 0; i < 5; i++ {
		rising = append(rising, model.HistoricalPost{EngagementRate: 0.01})
	}
	for i := 0; i < 5; i++ {
		rising = append(rising, model.HistoricalPost{EngagementRate: 0.05})
	}
	in.Historical = rising
	if f := Compute(in, eng, nil); f.CreatorMomentum != 1.0 {
		t.Fatalf("rising history: %v", f.CreatorMomentum)
	}

	flat := make([]model.HistoricalPost, 10)
	for i := range flat {
		flat[i] = model.HistoricalPost{EngagementRate: 0.03}
	}
	in.Historical = flat
	if f := Compute(in, eng, nil); f.CreatorMomentum != 0.5 {
		t.Fatalf("flat history: %v", f.CreatorMomentum)
	}
}

func TestScoreRangeAndTierAgreement(t *testing.T) {
	inputs := []model.PredictionInput{
		{Platform: model.PlatformTikTok, ContentType: model.ContentVideo, Caption: "why? amazing 5.", PostingHour: 12, CreatorEngagementRate: 0.01, CreatorFollowers: 100000},
		{Platform: model.PlatformLinkedIn, ContentType: model.ContentText, Caption: "", PostingHour: 3, CreatorEngagementRate: 1.0},
		{Platform: model.PlatformUnknown, ContentType: model.ContentUnknown, Caption: "hello", PostingHour: 0},
	}
	engs := []model.EngagementPrediction{
		{PredictedViews: 100, PredictedLikes: 10, PredictedComments: 1, PredictedShares: 0, PredictedEngagementRate: 50},
		{PredictedViews: 100000, PredictedLikes: 5000, PredictedComments: 100, PredictedShares: 400, PredictedEngagementRate: 0.1},
		{PredictedViews: 100, PredictedLikes: 10, PredictedComments: 1, PredictedShares: 0, PredictedEngagementRate: 12},
	}
	for i, in := range inputs {
		vs := Score(in, engs[i], nil)
		if vs.Score < 0 || vs.Score > 100 {
			t.Fatalf("score out of range: %v", vs.Score)
		}
		if vs.Tier != TierFor(vs.Score) {
			t.Fatalf("tier %q disagrees with score %v", vs.Tier, vs.Score)
		}
		if vs.Probability < 0 || vs.Probability > 1 {
			t.Fatalf("probability out of range: %v", vs.Probability)
		}
		if vs.EstimatedReach < 0 {
			t.Fatalf("negative reach: %d", vs.EstimatedReach)
		}
		if vs.EstimatedPeakHours < 1 {
			t.Fatalf("peak below floor: %d", vs.EstimatedPeakHours)
		}
	}
}

func TestHighScoreRecommendation(t *testing.T) {
	// A predicted rate far above the creator baseline drives the ratio
	// factor high enough to saturate the score.
	in := model.PredictionInput{Platform: model.PlatformTikTok, PostingHour: 12, CreatorEngagementRate: 0.01, CreatorFollowers: 1000, Caption: "why?"}
	eng := model.EngagementPrediction{PredictedViews: 1000, PredictedLikes: 100, PredictedComments: 10, PredictedShares: 10, PredictedEngagementRate: 50}
	vs := Score(in, eng, nil)
	if vs.Score != 100 {
		t.Fatalf("score=%v, want saturated 100", vs.Score)
	}
	if vs.Tier != model.TierViral {
		t.Fatalf("tier=%q", vs.Tier)
	}
	found := false
	for _, r := range vs.Recommendations {
		if strings.Contains(r, "High viral potential") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing celebratory note: %v", vs.Recommendations)
	}
}

func TestLowFactorRecommendations(t *testing.T) {
	in := model.PredictionInput{Platform: model.PlatformYouTube, PostingHour: 3, Caption: "meh", CreatorEngagementRate: 0.5}
	eng := model.EngagementPrediction{PredictedViews: 1000, PredictedLikes: 1000, PredictedComments: 5, PredictedShares: 1, PredictedEngagementRate: 0.5}
	vs := Score(in, eng, nil)
	// Base uniqueness is 0.5, so the unique-angle rule never fires on its
	// strict threshold; the other three do.
	want := []string{
		"Create more shareable content - ask questions, share insights",
		"Consider incorporating current trends or trending topics",
		"Post during peak engagement hours for your audience",
	}
	if len(vs.Recommendations) != len(want) {
		t.Fatalf("got %v", vs.Recommendations)
	}
	for i, w := range want {
		if vs.Recommendations[i] != w {
			t.Fatalf("rec[%d]=%q, want %q", i, vs.Recommendations[i], w)
		}
	}
}

func TestEstimatePeak(t *testing.T) {
	eng := model.EngagementPrediction{PredictedViews: 100, PredictedLikes: 10, PredictedComments: 1, PredictedShares: 0}
	// Unique video content from a low-engagement creator peaks latest.
	in := model.PredictionInput{ContentType: model.ContentVideo, Caption: "why? amazing", CreatorEngagementRate: 0.01}
	if vs := Score(in, eng, nil); vs.EstimatedPeakHours != 7 {
		t.Fatalf("video peak=%d, want 7", vs.EstimatedPeakHours)
	}
	// Plain text from a high-engagement creator peaks fastest.
	in = model.PredictionInput{ContentType: model.ContentText, Caption: "plain", CreatorEngagementRate: 0.06}
	if vs := Score(in, eng, nil); vs.EstimatedPeakHours != 1 {
		t.Fatalf("text peak=%d, want 1", vs.EstimatedPeakHours)
	}
}
