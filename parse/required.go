package parse

import (
	"context"
	"fmt"

	"github.com/dhamidi/streamparse/stream"
)

// Error is a hard parse failure: a required part of the grammar did not
// match. It carries the index at which the failing parser started and
// terminates the enclosing run.
type Error struct {
	Index int
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "":
		return fmt.Sprintf("parse failed at index %d: %s", e.Index, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("parse failed at index %d: %v", e.Index, e.Err)
	default:
		return fmt.Sprintf("parse failed at index %d", e.Index)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Required passes p's results through unchanged, but p yielding no result at
// all becomes a terminal *Error at the position where p started, instead of
// the silent non-match that alternation would otherwise backtrack over.
func (p Parser[T, V]) Required(msg string) Parser[T, V] {
	return RequiredErr(p, func(index int) error {
		return &Error{Index: index, Msg: msg}
	})
}

// RequiredErr is Required with a caller-supplied error factory. The factory
// receives the index at which p started.
func RequiredErr[T, V any](p Parser[T, V], factory func(index int) error) Parser[T, V] {
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[V]) error) error {
		n := 0
		err := p(ctx, in, func(r Result[V]) error {
			n++
			return emit(r)
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return factory(in.Index())
		}
		return nil
	}
}
