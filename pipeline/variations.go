package pipeline

import (
	"context"
	"sync"
)

const maxVariationTemperature = 0.9

// Variations runs n independent pipeline executions concurrently with
// the same inputs, stepping the sampling temperature up per run for
// diversity. Failed runs are logged and dropped, so the returned slice
// holds between 0 and n results. Ordering between variations is not
// guaranteed.
func (g *Generator) Variations(ctx context.Context, req Request, n int) ([]*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g.logger.Info("generating content variations", "topic", req.Topic, "count", n)

	results := make([]*Result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			// Each run gets its own generator copy so the temperature
			// knob never races between variations.
			run := *g
			run.temperature = g.temperature + 0.1*float64(i)
			if run.temperature > maxVariationTemperature {
				run.temperature = maxVariationTemperature
			}

			result, err := run.Generate(ctx, req)
			if err != nil {
				g.logger.Error("variation failed", "variation", i, "error", err)
				return
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	valid := make([]*Result, 0, n)
	for i, r := range results {
		if r == nil {
			continue
		}
		if r.Failed() {
			g.logger.Error("variation produced no content", "variation", i, "error", r.Error)
			continue
		}
		valid = append(valid, r)
	}

	g.logger.Info("variations complete", "requested", n, "succeeded", len(valid))
	return valid, nil
}
