package stream

import (
	"bufio"
	"context"
	"io"
)

// Source produces the elements of a sequence one at a time.
//
// Next blocks until an element is available, returning io.EOF once the
// sequence has completed and any other error if the producer fails. A Source
// that also implements io.Closer is closed when the cursor reading it is
// closed.
type Source[T any] interface {
	Next(ctx context.Context) (T, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func(ctx context.Context) (T, error)

func (f SourceFunc[T]) Next(ctx context.Context) (T, error) { return f(ctx) }

// Item carries one value or one terminal error through a channel.
type Item[T any] struct {
	Value T
	Err   error
}

type sliceSource[T any] struct {
	items []T
	next  int
}

// FromSlice returns a source producing the given elements in order.
func FromSlice[T any](items []T) Source[T] {
	return &sliceSource[T]{items: items}
}

func (s *sliceSource[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if s.next >= len(s.items) {
		return zero, io.EOF
	}
	v := s.items[s.next]
	s.next++
	return v, nil
}

func (s *sliceSource[T]) Reset() error {
	s.next = 0
	return nil
}

// FromChannel returns a source producing every value received on ch.
// Closing ch completes the sequence.
func FromChannel[T any](ch <-chan T) Source[T] {
	return SourceFunc[T](func(ctx context.Context) (T, error) {
		var zero T
		select {
		case v, ok := <-ch:
			if !ok {
				return zero, io.EOF
			}
			return v, nil
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	})
}

// FromItems returns a source driven by a channel of Items. An Item with a
// non-nil Err terminates the sequence with that error; closing ch completes
// it.
func FromItems[T any](ch <-chan Item[T]) Source[T] {
	return SourceFunc[T](func(ctx context.Context) (T, error) {
		var zero T
		select {
		case it, ok := <-ch:
			if !ok {
				return zero, io.EOF
			}
			if it.Err != nil {
				return zero, it.Err
			}
			return it.Value, nil
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	})
}

// FromReader returns a byte source reading from r.
func FromReader(r io.Reader) Source[byte] {
	br := bufio.NewReader(r)
	return SourceFunc[byte](func(ctx context.Context) (byte, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return br.ReadByte()
	})
}

// FromRunes returns a rune source decoding UTF-8 from r.
func FromRunes(r io.Reader) Source[rune] {
	br := bufio.NewReader(r)
	return SourceFunc[rune](func(ctx context.Context) (rune, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		ch, _, err := br.ReadRune()
		return ch, err
	})
}
