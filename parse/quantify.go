package parse

import (
	"context"
	"fmt"
	"slices"

	"github.com/dhamidi/streamparse/stream"
)

// Quantity describes a repetition count: at least Min and at most Max
// repetitions, unbounded when Max is negative. Greedy quantifiers (the
// default) take as many repetitions as possible and yield once; non-greedy
// quantifiers offer the shortest satisfying match as a lookahead and only
// grow it when the rest of the grammar rejects the offer.
type Quantity struct {
	Min       int
	Max       int // negative means unbounded
	NonGreedy bool
}

// Repeat matches p between q.Min and q.Max times.
func Repeat[T, V any](p Parser[T, V], q Quantity) Parser[T, []V] {
	return repeat[T, V, struct{}](p, nil, q)
}

// RepeatSep matches p between q.Min and q.Max times with sep between
// consecutive repetitions. A separator match whose following repetition
// fails is rolled back and ends the loop, so a trailing separator is never
// consumed.
func RepeatSep[T, V, S any](p Parser[T, V], sep Parser[T, S], q Quantity) Parser[T, []V] {
	if sep == nil {
		panic("parse: RepeatSep requires a separator")
	}
	return repeat(p, sep, q)
}

// Exactly matches p exactly n times, failing when fewer consecutive matches
// are available. Exactly(p, 0) always succeeds with an empty value at
// length 0.
func Exactly[T, V any](p Parser[T, V], n int) Parser[T, []V] {
	return Repeat(p, Quantity{Min: n, Max: n})
}

// AtLeast matches p n or more times.
func AtLeast[T, V any](p Parser[T, V], n int) Parser[T, []V] {
	return Repeat(p, Quantity{Min: n, Max: -1})
}

// AtMost matches p up to n times.
func AtMost[T, V any](p Parser[T, V], n int) Parser[T, []V] {
	return Repeat(p, Quantity{Max: n})
}

// Between matches p between min and max times.
func Between[T, V any](p Parser[T, V], min, max int) Parser[T, []V] {
	return Repeat(p, Quantity{Min: min, Max: max})
}

// ZeroOrMore matches p any number of times, including none.
func ZeroOrMore[T, V any](p Parser[T, V]) Parser[T, []V] {
	return Repeat(p, Quantity{Max: -1})
}

// OneOrMore matches p one or more times.
func OneOrMore[T, V any](p Parser[T, V]) Parser[T, []V] {
	return Repeat(p, Quantity{Min: 1, Max: -1})
}

// repeat is the engine behind every quantifier.
func repeat[T, V, S any](p Parser[T, V], sep Parser[T, S], q Quantity) Parser[T, []V] {
	if q.Min < 0 {
		panic(fmt.Sprintf("parse: negative minimum repetition count %d", q.Min))
	}
	if q.Max >= 0 && q.Max < q.Min {
		panic(fmt.Sprintf("parse: repetition maximum %d below minimum %d", q.Max, q.Min))
	}
	return func(ctx context.Context, in stream.Reader[T], emit func(Result[[]V]) error) error {
		b := in.Branch()
		defer b.Close()
		var vals []V
		length := 0

		// step attempts one more repetition (with the separator in front of
		// it when it is not the first). A failed attempt leaves b where it
		// was. The boolean progress result is false for a zero-length
		// repetition, which ends optional looping so that an epsilon-matching
		// parser cannot repeat forever.
		step := func() (ok, progress bool, err error) {
			if sep == nil || len(vals) == 0 {
				r, ok, err := first(ctx, p, b)
				if err != nil || !ok {
					return false, false, err
				}
				vals = append(vals, r.Value)
				b.Move(r.Length)
				length += r.Length
				return true, r.Length > 0, nil
			}
			t := b.Branch()
			defer t.Close()
			sr, ok, err := first(ctx, sep, t)
			if err != nil || !ok {
				return false, false, err
			}
			t.Move(sr.Length)
			r, ok, err := first(ctx, p, t)
			if err != nil || !ok {
				return false, false, err
			}
			vals = append(vals, r.Value)
			b.Move(sr.Length + r.Length)
			length += sr.Length + r.Length
			return true, sr.Length+r.Length > 0, nil
		}

		for i := 0; i < q.Min; i++ {
			ok, _, err := step()
			if err != nil {
				return err
			}
			if !ok {
				// Fewer than Min repetitions available: total failure, never
				// a partial match.
				return nil
			}
		}
		count := q.Min

		if q.NonGreedy {
			for {
				if q.Max >= 0 && count == q.Max {
					return emit(Success(vals, length))
				}
				offer := Speculative(slices.Clone(vals), length)
				if err := emit(offer); err != nil {
					return err
				}
				if !offer.resolved() || offer.accepted() {
					// Accepted, or the continuation never ran; either way
					// this quantifier is done.
					return nil
				}
				ok, progress, err := step()
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				count++
				if !progress {
					return emit(Success(vals, length))
				}
			}
		}

		for q.Max < 0 || count < q.Max {
			ok, progress, err := step()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			count++
			if !progress {
				break
			}
		}
		return emit(Success(vals, length))
	}
}
