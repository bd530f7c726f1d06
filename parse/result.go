package parse

// Result is one way a parser matched: the produced value and the number of
// source elements consumed from the position where the parser started.
// Zero-length results are legal and mean success without consuming input.
//
// A lookahead Result is speculative: it does not count as a real match until
// Commit(true) is called, and Commit(false) discards it so its producer can
// try a longer alternative. The commit is one-shot; a lookahead nobody ever
// resolves is treated by its producer as not committed.
type Result[V any] struct {
	Value  V
	Length int
	look   *look
}

type look struct {
	resolved bool
	accepted bool
}

// Success returns an ordinary result.
func Success[V any](v V, length int) Result[V] {
	return Result[V]{Value: v, Length: length}
}

// Speculative returns a lookahead result awaiting a commit decision.
func Speculative[V any](v V, length int) Result[V] {
	return Result[V]{Value: v, Length: length, look: &look{}}
}

// IsLookAhead reports whether the result was produced as a lookahead.
func (r Result[V]) IsLookAhead() bool { return r.look != nil }

// Commit resolves a lookahead result. Committing an ordinary result, or
// committing twice, is a programming error and panics.
func (r Result[V]) Commit(accept bool) {
	if r.look == nil {
		panic("parse: commit on a non-lookahead result")
	}
	if r.look.resolved {
		panic("parse: lookahead result committed twice")
	}
	r.look.resolved = true
	r.look.accepted = accept
}

// pending reports whether the result is a lookahead still awaiting commit.
func (r Result[V]) pending() bool { return r.look != nil && !r.look.resolved }

func (r Result[V]) resolved() bool { return r.look != nil && r.look.resolved }

func (r Result[V]) accepted() bool { return r.resolved() && r.look.accepted }
