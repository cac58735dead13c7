package engine

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/time/rate"

	"surgecast/internal/model"
)

// LimiterFrom builds the batch pacing limiter from configured values, with
// SURGECAST_BATCH_RPS / SURGECAST_BATCH_BURST env overrides on top.
// Returns nil (no pacing) when the resolved rate is unset.
func LimiterFrom(rps float64, burst int) *rate.Limiter {
	if v := os.Getenv("SURGECAST_BATCH_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rps = f
		}
	}
	if v := os.Getenv("SURGECAST_BATCH_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			burst = n
		}
	}
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 10
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// BatchPredict scores post variants for A/B comparison. Variants keep their
// input-order labels, the result list is sorted descending by predicted
// engagement rate, and an improvement note compares best against worst when
// there are at least two variants. Work runs on a bounded worker pool.
func (e *Engine) BatchPredict(ctx context.Context, inputs []model.PredictionInput) (model.BatchResult, error) {
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return model.BatchResult{}, fmt.Errorf("input %d: %w", i, err)
		}
	}
	if len(inputs) == 0 {
		return model.BatchResult{}, nil
	}

	variants := make([]model.BatchVariant, len(inputs))
	errs := make([]error, len(inputs))
	idx := make(chan int)

	workers := e.workers
	if workers > len(inputs) {
		workers = len(inputs)
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				if e.limiter != nil {
					if err := e.limiter.Wait(ctx); err != nil {
						errs[i] = err
						continue
					}
				}
				pred, err := e.PredictEngagement(ctx, inputs[i])
				if err != nil {
					errs[i] = err
					continue
				}
				variants[i] = model.BatchVariant{
					Variant:                 fmt.Sprintf("variant_%d", i+1),
					PredictedEngagementRate: pred.PredictedEngagementRate,
					PredictedViews:          pred.PredictedViews,
					Confidence:              pred.Confidence,
					TopFactor:               topFactor(pred.Factors),
				}
			}
		}()
	}
	for i := range inputs {
		idx <- i
	}
	close(idx)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return model.BatchResult{}, err
		}
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].PredictedEngagementRate > variants[j].PredictedEngagementRate
	})

	res := model.BatchResult{Predictions: variants, BestVariant: &variants[0]}
	if len(variants) > 1 {
		worst := variants[len(variants)-1].PredictedEngagementRate
		if worst > 0 {
			best := variants[0]
			res.ImprovementTip = fmt.Sprintf("%s shows %.1f%% higher engagement than worst variant",
				best.Variant, (best.PredictedEngagementRate/worst-1)*100)
		}
	}
	return res, nil
}

// topFactor picks the highest-scoring factor name, alphabetical on ties so
// the choice is deterministic.
func topFactor(factors map[string]float64) string {
	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)
	top := ""
	bestVal := 0.0
	for _, name := range names {
		if top == "" || factors[name] > bestVal {
			top = name
			bestVal = factors[name]
		}
	}
	return top
}
