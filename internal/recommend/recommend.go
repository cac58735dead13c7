package recommend

import (
	"fmt"
	"unicode/utf8"

	"surgecast/internal/model"
	"surgecast/internal/platform"
)

// Engagement produces rule-based advisories for a post. Rules fire
// independently against fixed thresholds; order is stable.
func Engagement(in model.PredictionInput) []string {
	out := make([]string, 0, 4)

	captionLen := utf8.RuneCountInString(in.Caption)
	if captionLen < 50 {
		out = append(out, "Consider adding more context to your caption (50+ characters)")
	} else if captionLen > 250 {
		out = append(out, "Shorter captions often perform better")
	}

	if len(in.Hashtags) == 0 {
		out = append(out, "Add 3-5 relevant hashtags")
	} else if len(in.Hashtags) > 20 {
		out = append(out, "Reduce hashtags to 5-10 for better reach")
	}

	if !platform.IsBestHour(in.Platform, in.PostingHour) {
		out = append(out, fmt.Sprintf("Best posting times: %v", platform.BestHours(in.Platform)))
	}

	if in.ContentType == model.ContentText && in.CreatorFollowers > 10000 {
		out = append(out, "Consider adding media to increase engagement")
	}

	if in.ContentType.IsVideo() {
		optimal := platform.OptimalDuration(in.Platform)
		if in.VideoDuration != nil && *in.VideoDuration > float64(optimal)*1.5 {
			out = append(out, fmt.Sprintf("Shorter videos (%ds) often perform better", optimal))
		}
	}

	return out
}
