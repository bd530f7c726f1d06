package parse

import (
	"context"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/streamparse/stream"
)

// Match is one final match produced by a run: the grammar's value, the
// source index the match started at, and the number of elements it consumed.
type Match[V any] struct {
	Value  V
	Index  int
	Length int
}

// RunOption configures a run.
type RunOption func(*runConfig)

type runConfig struct {
	log        commonlog.Logger
	cursorOpts []stream.Option
}

// WithLogger enables a per-position debug trace of the run.
func WithLogger(log commonlog.Logger) RunOption {
	return func(c *runConfig) { c.log = log }
}

// Seekable runs the grammar over a seekable cursor, retaining the full
// buffer so positions can be revisited.
func Seekable() RunOption {
	return func(c *runConfig) { c.cursorOpts = append(c.cursorOpts, stream.Seekable()) }
}

// KeepAll disables buffer trimming for the run.
func KeepAll() RunOption {
	return func(c *runConfig) { c.cursorOpts = append(c.cursorOpts, stream.KeepAll()) }
}

// Each scans src from index 0, calling fn with the grammar's first match at
// each position and advancing past it; positions the grammar does not match
// are skipped one element at a time, and an empty match still advances by
// one so the scan makes progress. The scan ends when the source completes,
// when fn returns false, or with a terminal error: the source's failure, ctx
// cancellation, or a hard parse error from Required.
func Each[T, V any](ctx context.Context, src stream.Source[T], grammar Parser[T, V], fn func(Match[V]) bool, opts ...RunOption) error {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	cur := stream.NewCursor(src, cfg.cursorOpts...)
	defer cur.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, ok, err := cur.Peek(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		idx := cur.Index()
		r, found, err := First(ctx, grammar, cur)
		if err != nil {
			if cfg.log != nil {
				cfg.log.Errorf("terminal error at index %d: %v", idx, err)
			}
			return err
		}
		if !found {
			if cfg.log != nil {
				cfg.log.Debugf("no match at index %d", idx)
			}
			cur.Move(1)
			continue
		}
		if r.pending() {
			// The run is the outermost continuation, and it succeeded.
			r.Commit(true)
		}
		if cfg.log != nil {
			cfg.log.Debugf("match at index %d, length %d", idx, r.Length)
		}
		if !fn(Match[V]{Value: r.Value, Index: idx, Length: r.Length}) {
			return nil
		}
		step := r.Length
		if step == 0 {
			step = 1
		}
		cur.Move(step)
	}
}

// All collects every match Each would produce.
func All[T, V any](ctx context.Context, src stream.Source[T], grammar Parser[T, V], opts ...RunOption) ([]Match[V], error) {
	var out []Match[V]
	err := Each(ctx, src, grammar, func(m Match[V]) bool {
		out = append(out, m)
		return true
	}, opts...)
	return out, err
}

// Results runs the grammar once at index 0 and returns all of its results
// there, in emission order. This is the surface for ambiguous grammars,
// where a single starting position can match several ways.
func Results[T, V any](ctx context.Context, src stream.Source[T], grammar Parser[T, V], opts ...RunOption) ([]Result[V], error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	cur := stream.NewCursor(src, cfg.cursorOpts...)
	defer cur.Close()
	rs, err := Collect(ctx, grammar, cur)
	if err != nil {
		return nil, err
	}
	for _, r := range rs {
		if r.pending() {
			r.Commit(true)
		}
	}
	return rs, nil
}
