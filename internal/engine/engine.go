package engine

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"surgecast/internal/cachekey"
	"surgecast/internal/feature"
	"surgecast/internal/logging"
	"surgecast/internal/metrics"
	"surgecast/internal/model"
	"surgecast/internal/recommend"
	"surgecast/internal/store/predcache"
	"surgecast/internal/virality"
)

// Engine composes the feature extractor, estimator, and virality scorer
// around an optional shared prediction cache. Safe for concurrent use; the
// cache store is the only shared state.
type Engine struct {
	cache    *predcache.Store
	weights  feature.Weights
	trending []string
	workers  int
	limiter  *rate.Limiter
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache memoizes engagement predictions in store. Without it every call
// computes fresh.
func WithCache(store *predcache.Store) Option {
	return func(e *Engine) { e.cache = store }
}

// WithTrending sets the trending-hashtag set feeding the trend-alignment
// virality factor. Defaults to empty.
func WithTrending(tags []string) Option {
	return func(e *Engine) { e.trending = tags }
}

// WithBatchWorkers bounds batch-prediction concurrency.
func WithBatchWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLimiter paces batch predictions.
func WithLimiter(l *rate.Limiter) Option {
	return func(e *Engine) { e.limiter = l }
}

// New returns an Engine with the static feature-weight table and defaults.
func New(opts ...Option) *Engine {
	e := &Engine{weights: feature.DefaultWeights(), workers: 4}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PredictEngagement estimates engagement metrics for a post. Identical
// inputs yield identical outputs; with a cache configured, inputs sharing
// the reduced cache key share a stored result.
func (e *Engine) PredictEngagement(ctx context.Context, in model.PredictionInput) (model.EngagementPrediction, error) {
	start := time.Now()
	if err := in.Validate(); err != nil {
		metrics.PredictionErrors.Inc()
		return model.EngagementPrediction{}, err
	}

	var key string
	if e.cache != nil {
		key = cachekey.For(in)
		pred, ok, err := e.cache.Get(ctx, key)
		if err != nil {
			logging.Warn("cache_get_failed", map[string]any{"error": err.Error()})
		} else if ok {
			metrics.CacheHits.Inc()
			metrics.Predictions.Inc()
			metrics.ObservePredictionDuration(start)
			logging.Info("cache_hit", map[string]any{"key": key})
			return pred, nil
		}
		metrics.CacheMisses.Inc()
	}

	pred := e.compute(in)

	if e.cache != nil {
		if err := e.cache.Put(ctx, key, pred); err != nil {
			logging.Warn("cache_put_failed", map[string]any{"error": err.Error()})
		}
	}
	metrics.Predictions.Inc()
	metrics.ObservePredictionDuration(start)
	return pred, nil
}

// compute runs the full pipeline on a validated input.
func (e *Engine) compute(in model.PredictionInput) model.EngagementPrediction {
	v := feature.Extract(in)
	raw := estimate(v, e.weights, in.Platform)
	return model.EngagementPrediction{
		PredictedLikes:          raw.Likes,
		PredictedComments:       raw.Comments,
		PredictedShares:         raw.Shares,
		PredictedViews:          raw.Views,
		PredictedEngagementRate: engagementRate(raw),
		Confidence:              raw.Confidence,
		Factors:                 analyzeFactors(v, raw),
		Recommendations:         recommend.Engagement(in),
	}
}

// PredictVirality estimates the virality score for a post, computing the
// engagement prediction first (served from cache when possible). The
// virality step itself is recomputed every call.
func (e *Engine) PredictVirality(ctx context.Context, in model.PredictionInput) (model.ViralityScore, error) {
	eng, err := e.PredictEngagement(ctx, in)
	if err != nil {
		return model.ViralityScore{}, err
	}
	vs := virality.Score(in, eng, e.trending)
	metrics.ViralityScores.Observe(vs.Score)
	return vs, nil
}
