package lut

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/jmylchreest/glasbey/internal/colour"
	"golang.org/x/sync/errgroup"
)

// Progress is invoked periodically with the number of candidates converted
// so far and the total. A nil Progress is a no-op. During a build it may be
// called from multiple worker goroutines; calls are serialised.
type Progress func(done, total int)

// Build converts every grid point of the RGB cube to CAM02-UCS and returns
// the index-aligned table. Points are independent, so the work is split into
// disjoint red-plane ranges across workers; each worker writes only its own
// slice of the shared buffer, which keeps the merge order-independent.
func Build(ctx context.Context, resolution int, progress Progress) (*Table, error) {
	if resolution < 2 || resolution > 256 {
		return nil, fmt.Errorf("resolution %d out of range [2,256]", resolution)
	}
	grid := Grid(resolution)
	n := resolution * resolution * resolution
	coords := make([]float32, 3*n)

	var done atomic.Int64
	var mu sync.Mutex
	report := func() {
		if progress == nil {
			return
		}
		mu.Lock()
		progress(int(done.Load()), n)
		mu.Unlock()
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > resolution {
		workers = resolution
	}

	eg, ctx := errgroup.WithContext(ctx)
	chunk := (resolution + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > resolution {
			hi = resolution
		}
		if lo >= hi {
			break
		}
		eg.Go(func() error {
			plane := resolution * resolution
			for r := lo; r < hi; r++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				idx := r * plane
				for g := 0; g < resolution; g++ {
					for b := 0; b < resolution; b++ {
						jab := colour.ToUCS(colour.RGB{R: grid[r], G: grid[g], B: grid[b]})
						coords[3*idx] = float32(jab.J)
						coords[3*idx+1] = float32(jab.A)
						coords[3*idx+2] = float32(jab.B)
						idx++
					}
				}
				done.Add(int64(plane))
				report()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return New(resolution, coords)
}
