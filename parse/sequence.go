package parse

import (
	"context"

	"github.com/dhamidi/streamparse/stream"
)

// Map projects each of p's results through f, preserving length and
// lookahead state.
func Map[T, V, U any](p Parser[T, V], f func(V) U) Parser[T, U] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[U]) error) error {
		return p(ctx, in, func(r Result[V]) error {
			return emit(Result[U]{Value: f(r.Value), Length: r.Length, look: r.look})
		})
	}
}

// Combine sequences p and q: for each result of p, q runs on a branch moved
// past it, and f merges the two values. Lengths add up.
//
// Combine is also the gateway between sequencing and lookahead. When p's
// result is speculative, the first result q produces commits it as accepted;
// q completing with no results commits it as rejected, which is p's cue to
// try a longer match. The merged result inherits q's lookahead state so the
// protocol composes through nested sequences.
func Combine[T, V, U, W any](p Parser[T, V], q Parser[T, U], f func(V, U) W) Parser[T, W] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[W]) error) error {
		return p(ctx, in, func(r1 Result[V]) error {
			b := in.Branch()
			defer b.Close()
			b.Move(r1.Length)
			matched := false
			err := q(ctx, b, func(r2 Result[U]) error {
				matched = true
				if r1.pending() {
					r1.Commit(true)
				}
				return emit(Result[W]{
					Value:  f(r1.Value, r2.Value),
					Length: r1.Length + r2.Length,
					look:   r2.look,
				})
			})
			if err == nil && !matched && r1.pending() {
				r1.Commit(false)
			}
			return err
		})
	}
}

// Bind sequences p with a parser derived from p's value.
func Bind[T, V, U any](p Parser[T, V], f func(V) Parser[T, U]) Parser[T, U] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[U]) error) error {
		return p(ctx, in, func(r1 Result[V]) error {
			b := in.Branch()
			defer b.Close()
			b.Move(r1.Length)
			matched := false
			err := f(r1.Value)(ctx, b, func(r2 Result[U]) error {
				matched = true
				if r1.pending() {
					r1.Commit(true)
				}
				return emit(Result[U]{
					Value:  r2.Value,
					Length: r1.Length + r2.Length,
					look:   r2.look,
				})
			})
			if err == nil && !matched && r1.pending() {
				r1.Commit(false)
			}
			return err
		})
	}
}

// Then sequences p and q, keeping q's value.
func Then[T, V, U any](p Parser[T, V], q Parser[T, U]) Parser[T, U] {
	return Combine(p, q, func(_ V, u U) U { return u })
}

// ThenSkip sequences p and q, keeping p's value.
func ThenSkip[T, V, U any](p Parser[T, V], q Parser[T, U]) Parser[T, V] {
	return Combine(p, q, func(v V, _ U) V { return v })
}
