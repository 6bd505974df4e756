package processor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ExportBatch exports every request with a bounded number of workers. Results
// keep the input order. The first failure cancels the remaining work.
func (p *ImageProcessor) ExportBatch(ctx context.Context, reqs []ExportRequest) ([]*ExportResult, error) {
	results := make([]*ExportResult, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.Export(reqs[i])
			if err != nil {
				return fmt.Errorf("photo %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
