package assets

import (
	"context"
	"errors"
	"fmt"

	"bust-studio/internal/logger"
)

// ErrExhausted is returned once every candidate path has failed.
var ErrExhausted = errors.New("assets: every candidate path failed")

// Attempt records one candidate path that was tried.
type Attempt struct {
	Path string
	Err  error // nil for the attempt that succeeded
}

// Result is delivered once per load.
type Result struct {
	Asset    *Asset
	Attempts []Attempt
	Err      error
}

// LoadFirst tries paths in order and returns the first one that fetches and parses.
// Later paths are never touched once one succeeds. The indicator, when non-nil, follows progress
// and ends hidden on success or showing the failure text when the list is exhausted.
func LoadFirst(ctx context.Context, f Fetcher, paths []string, ind *Indicator, log *logger.Logger) Result {
	var res Result
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		if ind != nil {
			ind.Begin(p)
		}
		a, err := loadOne(ctx, f, p, ind)
		res.Attempts = append(res.Attempts, Attempt{Path: p, Err: err})
		if err == nil {
			res.Asset = a
			if ind != nil {
				ind.Done()
			}
			if log != nil {
				log.Infof("assets: loaded %s (%d meshes)", p, a.Meshes)
			}
			return res
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			res.Err = err
			return res
		}
		if log != nil {
			log.Warnf("assets: %s failed: %v", p, err)
		}
	}
	res.Err = fmt.Errorf("%w (%d tried)", ErrExhausted, len(res.Attempts))
	if ind != nil {
		ind.Fail()
	}
	if log != nil {
		log.Errorf("assets: %v", res.Err)
	}
	return res
}

// Load runs LoadFirst on its own goroutine. The channel receives exactly one Result.
func Load(ctx context.Context, f Fetcher, paths []string, ind *Indicator, log *logger.Logger) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		out <- LoadFirst(ctx, f, paths, ind, log)
	}()
	return out
}

func loadOne(ctx context.Context, f Fetcher, p string, ind *Indicator) (*Asset, error) {
	var progress func(done, total int64)
	if ind != nil {
		progress = ind.Update
	}
	payload, err := f.Fetch(ctx, p, progress)
	if err != nil {
		return nil, err
	}
	return Parse(p, payload)
}
