package parse

import (
	"context"
	"errors"

	"github.com/dhamidi/streamparse/stream"
)

// A Parser matches input beginning at in's current position and calls emit
// once per way the input can match there, in deterministic order. Returning
// without emitting means the parser did not match; that is ordinary control
// flow, not an error.
//
// Contract for hand-written parsers:
//
//   - never move in; create branches for any exploration
//   - stop and return the error whenever emit returns a non-nil error
//   - return a non-nil error of your own only for terminal conditions
//     (source failure, context cancellation, hard parse errors)
type Parser[T, V any] func(ctx context.Context, in stream.Reader[T], emit func(Result[V]) error) error

// errStop aborts result enumeration once a caller has seen enough.
var errStop = errors.New("parse: stop enumeration")

// Next matches any single element and yields it. This is the root token
// grammars are built from.
func Next[T any]() Parser[T, T] {
	return Satisfy[T](func(T) bool { return true })
}

// Satisfy matches a single element satisfying pred.
func Satisfy[T any](pred func(T) bool) Parser[T, T] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[T]) error) error {
		v, ok, err := in.Peek(ctx)
		if err != nil {
			return err
		}
		if !ok || !pred(v) {
			return nil
		}
		return emit(Success(v, 1))
	}
}

// Literal matches a single element equal to want.
func Literal[T comparable](want T) Parser[T, T] {
	return Satisfy[T](func(v T) bool { return v == want })
}

// OneOf matches a single element equal to any of want.
func OneOf[T comparable](want ...T) Parser[T, T] {
	return Satisfy[T](func(v T) bool {
		for _, w := range want {
			if v == w {
				return true
			}
		}
		return false
	})
}

// Epsilon succeeds with v without consuming input.
func Epsilon[T, V any](v V) Parser[T, V] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[V]) error) error {
		return emit(Success(v, 0))
	}
}

// None succeeds with an empty value without consuming input.
func None[T, V any]() Parser[T, []V] {
	return Epsilon[T, []V](nil)
}

// Fail never matches.
func Fail[T, V any]() Parser[T, V] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[V]) error) error {
		return nil
	}
}

// End matches only at the end of the sequence, consuming nothing.
func End[T any]() Parser[T, struct{}] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[struct{}]) error) error {
		_, ok, err := in.Peek(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		return emit(Success(struct{}{}, 0))
	}
}

// Not succeeds without consuming input when p does not match.
func Not[T, V any](p Parser[T, V]) Parser[T, struct{}] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[struct{}]) error) error {
		matched := false
		err := p(ctx, in, func(r Result[V]) error {
			matched = true
			if r.pending() {
				r.Commit(false)
			}
			return errStop
		})
		if err != nil && !errors.Is(err, errStop) {
			return err
		}
		if matched {
			return nil
		}
		return emit(Success(struct{}{}, 0))
	}
}

// First runs p at in's current position and returns its first result, if
// any. A lookahead result is returned unresolved; the caller owns the commit
// decision.
func First[T, V any](ctx context.Context, p Parser[T, V], in stream.Reader[T]) (Result[V], bool, error) {
	var res Result[V]
	found := false
	err := p(ctx, in, func(r Result[V]) error {
		res = r
		found = true
		return errStop
	})
	if err != nil && !errors.Is(err, errStop) {
		return res, false, err
	}
	return res, found, nil
}

// Collect runs p at in's current position and returns all of its results in
// emission order.
func Collect[T, V any](ctx context.Context, p Parser[T, V], in stream.Reader[T]) ([]Result[V], error) {
	var out []Result[V]
	err := p(ctx, in, func(r Result[V]) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// first is First with lookahead results committed as accepted: inner
// speculative matches resolve shortest-first when a combinator consumes only
// one result per position.
func first[T, V any](ctx context.Context, p Parser[T, V], in stream.Reader[T]) (Result[V], bool, error) {
	r, ok, err := First(ctx, p, in)
	if ok && r.pending() {
		r.Commit(true)
	}
	return r, ok, err
}
