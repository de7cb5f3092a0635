package engine

import (
	"context"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 8

// DecideAll decides every request under the same profile. Verdicts are
// returned in input order. The only error is ctx cancellation.
func (e *Engine) DecideAll(ctx context.Context, reqs []policy.RequestDescriptor, profile policy.AgeProfile) ([]policy.Verdict, error) {
	out := make([]policy.Verdict, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = e.Decide(reqs[i], profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
