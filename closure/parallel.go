// SPDX-License-Identifier: MIT

package closure

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/cfpq/matrix"
)

// parallelPass computes the product of every head concurrently, reading only
// the matrices as they are at the start of the pass, then ORs each product
// into its head serially. Workers never write a shared matrix.
func (e *engine) parallelPass(ctx context.Context, workers int) (int, error) {
	products := make([]*matrix.Bool, len(e.bin))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, hr := range e.bin {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dst := e.m[hr.head]
			acc, err := matrix.NewBool(dst.Rows(), dst.Cols())
			if err != nil {
				return err
			}
			for _, p := range hr.pairs {
				if _, err := acc.MulOr(e.m[p.left], e.m[p.right]); err != nil {
					return err
				}
			}
			products[k] = acc

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	changed := 0
	for k, hr := range e.bin {
		grew, err := e.m[hr.head].Or(products[k])
		if err != nil {
			return 0, err
		}
		if grew {
			changed++
		}
	}

	return changed, nil
}
