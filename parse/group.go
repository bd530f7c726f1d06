package parse

import (
	"context"
	"slices"

	"github.com/dhamidi/streamparse/stream"
)

// Group matches open, content and close in sequence and yields content's
// value only.
func Group[T, O, V, C any](open Parser[T, O], content Parser[T, V], close Parser[T, C]) Parser[T, V] {
	return Then(open, ThenSkip(content, close))
}

// Enclosed matches open, then consumes every element up to the first close,
// yielding the elements in between. Nesting is not tracked; use
// AmbiguousGroup for nested or ambiguous delimiters.
func Enclosed[T, O, C any](open Parser[T, O], close Parser[T, C]) Parser[T, []T] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[[]T]) error) error {
		b := in.Branch()
		defer b.Close()
		r, ok, err := first(ctx, open, b)
		if err != nil || !ok {
			return err
		}
		b.Move(r.Length)
		length := r.Length
		var body []T
		for {
			cr, ok, err := first(ctx, close, b)
			if err != nil {
				return err
			}
			if ok {
				return emit(Success(body, length+cr.Length))
			}
			v, ok, err := b.Take(ctx)
			if err != nil {
				return err
			}
			if !ok {
				// Exhausted before the close: no match.
				return nil
			}
			body = append(body, v)
			length++
		}
	}
}

// groupAlt is one way a delimiter matched at the current position of an
// exploration frame.
type groupAlt struct {
	isClose bool
	length  int
}

// groupFrame is one exploration path through an ambiguous group: a private
// branch, one accumulating sink per open nesting level (depth == len(sinks)),
// and the number of elements consumed so far. pending holds a delimiter
// match that was forked off but not yet applied.
type groupFrame[T any] struct {
	b       *stream.Branch[T]
	sinks   [][]T
	length  int
	pending *groupAlt
}

// AmbiguousGroup matches a region delimited by open and close, tracking
// nesting, and emits one result per close: the innermost open sink's
// accumulated content, with the length consumed up to and including that
// close. Because open and close may each match several ways at one position
// (ambiguous tokenizers), exploration forks into independent frames; close
// matches are explored before open matches so inner results surface first.
// Exploration of a path ends when its outermost open has been closed; a path
// exhausted before producing any structure emits nothing.
//
// The exploration is an explicit work stack rather than recursion, so
// delimiter nesting thousands deep cannot exhaust the call stack.
func AmbiguousGroup[T, O, C any](open Parser[T, O], close Parser[T, C]) Parser[T, []T] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[[]T]) error) error {
		seed, err := collectResolved(ctx, open, in)
		if err != nil || len(seed) == 0 {
			return err
		}
		var stack []*groupFrame[T]
		defer func() {
			for _, f := range stack {
				f.b.Close()
			}
		}()
		for i := len(seed) - 1; i >= 0; i-- {
			b := in.Branch()
			b.Move(seed[i].Length)
			stack = append(stack, &groupFrame[T]{
				b:      b,
				sinks:  [][]T{nil},
				length: seed[i].Length,
			})
		}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			forks, err := runGroupFrame(ctx, f, open, close, emit)
			f.b.Close()
			if err != nil {
				for _, g := range forks {
					g.b.Close()
				}
				return err
			}
			// Forks are pushed in reverse so the first alternative at a
			// position is explored first.
			for i := len(forks) - 1; i >= 0; i-- {
				stack = append(stack, forks[i])
			}
		}
		return nil
	}
}

// runGroupFrame advances one exploration path until it completes, dies, or
// aborts. It returns the frames forked off at ambiguous positions, ordered
// as registered (close alternatives before open alternatives).
func runGroupFrame[T, O, C any](
	ctx context.Context,
	f *groupFrame[T],
	open Parser[T, O],
	close Parser[T, C],
	emit func(Result[[]T]) error,
) ([]*groupFrame[T], error) {
	var forks []*groupFrame[T]
	if f.pending != nil {
		alt := *f.pending
		f.pending = nil
		done, err := applyGroupAlt(ctx, f, alt, emit)
		if err != nil || done {
			return forks, err
		}
	}
	for {
		closes, err := collectResolved(ctx, close, f.b)
		if err != nil {
			return forks, err
		}
		opens, err := collectResolved(ctx, open, f.b)
		if err != nil {
			return forks, err
		}
		alts := make([]groupAlt, 0, len(closes)+len(opens))
		for _, r := range closes {
			alts = append(alts, groupAlt{isClose: true, length: r.Length})
		}
		for _, r := range opens {
			// A zero-length open would reopen at the same position forever.
			if r.Length > 0 {
				alts = append(alts, groupAlt{isClose: false, length: r.Length})
			}
		}
		if len(alts) == 0 {
			v, ok, err := f.b.Take(ctx)
			if err != nil {
				return forks, err
			}
			if !ok {
				// Source exhausted with the group still open: this path
				// produces nothing further.
				return forks, nil
			}
			for d := range f.sinks {
				f.sinks[d] = append(f.sinks[d], v)
			}
			f.length++
			continue
		}
		for _, alt := range alts[1:] {
			forks = append(forks, forkGroupFrame(f, alt))
		}
		done, err := applyGroupAlt(ctx, f, alts[0], emit)
		if err != nil || done {
			return forks, err
		}
	}
}

// applyGroupAlt consumes one delimiter match on f's branch. A close emits
// the innermost sink and pops it, with the delimiter elements flowing into
// the remaining outer sinks; an open feeds the delimiter elements to every
// existing sink and registers a fresh one. The returned boolean is true when
// the outermost open has been closed and the path is complete.
func applyGroupAlt[T any](ctx context.Context, f *groupFrame[T], alt groupAlt, emit func(Result[[]T]) error) (bool, error) {
	raw := make([]T, 0, alt.length)
	for i := 0; i < alt.length; i++ {
		v, ok, err := f.b.Take(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		raw = append(raw, v)
	}
	f.length += alt.length
	if alt.isClose {
		top := f.sinks[len(f.sinks)-1]
		f.sinks = f.sinks[:len(f.sinks)-1]
		if err := emit(Success(top, f.length)); err != nil {
			return false, err
		}
		for d := range f.sinks {
			f.sinks[d] = append(f.sinks[d], raw...)
		}
		return len(f.sinks) == 0, nil
	}
	for d := range f.sinks {
		f.sinks[d] = append(f.sinks[d], raw...)
	}
	f.sinks = append(f.sinks, nil)
	return false, nil
}

// forkGroupFrame clones an exploration path, deep-copying its sinks, with
// the given delimiter match left pending.
func forkGroupFrame[T any](f *groupFrame[T], alt groupAlt) *groupFrame[T] {
	g := &groupFrame[T]{
		b:       f.b.Branch(),
		sinks:   make([][]T, len(f.sinks)),
		length:  f.length,
		pending: &alt,
	}
	for i := range f.sinks {
		g.sinks[i] = slices.Clone(f.sinks[i])
	}
	return g
}

// collectResolved gathers every result of p at in's position, committing
// speculative ones as accepted: the group consumes each delimiter match it
// explores.
func collectResolved[T, V any](ctx context.Context, p Parser[T, V], in stream.Reader[T]) ([]Result[V], error) {
	rs, err := Collect(ctx, p, in)
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
