package parse

import (
	"context"

	"github.com/dhamidi/streamparse/stream"
)

// Or tries each alternative in order at the same position. The first
// alternative that yields at least one result wins and all of its results
// pass through; later alternatives are never attempted. Grammar authors rely
// on this first-match-wins order.
func Or[T, V any](alternatives ...Parser[T, V]) Parser[T, V] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[V]) error) error {
		for _, p := range alternatives {
			matched := false
			err := p(ctx, in, func(r Result[V]) error {
				matched = true
				return emit(r)
			})
			if err != nil {
				return err
			}
			if matched {
				return nil
			}
		}
		return nil
	}
}

// Or tries p first and the given alternatives after it.
func (p Parser[T, V]) Or(alternatives ...Parser[T, V]) Parser[T, V] {
	return Or(append([]Parser[T, V]{p}, alternatives...)...)
}

// Maybe matches p zero or one time. A match yields a one-element slice; a
// miss yields an empty slice of length 0 without consuming input.
func Maybe[T, V any](p Parser[T, V]) Parser[T, []V] {
	return Or(Map(p, func(v V) []V { return []V{v} }), None[T, V]())
}

// WithDefault yields p's value on a match and def, at length 0, on a miss.
func (p Parser[T, V]) WithDefault(def V) Parser[T, V] {
	return Or(p, Epsilon[T, V](def))
}
