package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrBranchReset is returned by Reset on a Branch; only the root cursor can
// be reset.
var ErrBranchReset = errors.New("stream: reset is not supported on a branch")

// ErrSourceReset is returned by Reset when the cursor's source cannot be
// rewound.
var ErrSourceReset = errors.New("stream: source does not support reset")

// Reader is the shared read/position contract implemented by Cursor and
// Branch.
//
// Move shifts the current position by count and returns the new position.
// Negative counts are only legal on seekable readers; once the sequence has
// terminated the position is clamped to one past the final element. Moving
// to a negative index, or backward past the retained buffer window, is a
// programming error and panics.
//
// Peek returns the element at the current position without moving, pulling
// from the source as needed. The boolean is false at the end of the
// sequence; the error is non-nil when the source failed or ctx was done.
// Take is Peek followed by Move(1) on success.
type Reader[T any] interface {
	Index() int
	Move(count int) int
	Peek(ctx context.Context) (T, bool, error)
	Take(ctx context.Context) (T, bool, error)
	Branch() *Branch[T]
	Reset() error
	Close()
}

// Option configures a cursor at construction time.
type Option func(*options)

type options struct {
	forwardOnly bool
	keepAll     bool
}

// Seekable allows the cursor position to move backward. A seekable cursor
// retains its whole buffer so reads can be replayed.
func Seekable() Option {
	return func(o *options) { o.forwardOnly = false }
}

// KeepAll disables buffer trimming while keeping the cursor forward-only.
func KeepAll() Option {
	return func(o *options) { o.keepAll = true }
}

// Cursor is the root reader over a source. It owns the element buffer; all
// branches created from it share that buffer and its position space.
type Cursor[T any] struct {
	src         Source[T]
	buf         buffer[T]
	pos         int
	branches    []*Branch[T]
	forwardOnly bool
	keepAll     bool
	closed      bool
}

var _ Reader[byte] = (*Cursor[byte])(nil)

// NewCursor wraps src in a cursor positioned at index 0. Cursors are
// forward-only with trimming enabled unless configured otherwise.
func NewCursor[T any](src Source[T], opts ...Option) *Cursor[T] {
	o := options{forwardOnly: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cursor[T]{
		src:         src,
		buf:         newBuffer[T](),
		forwardOnly: o.forwardOnly,
		keepAll:     o.keepAll,
	}
}

// Index returns the current position.
func (c *Cursor[T]) Index() int { return c.pos }

func (c *Cursor[T]) Move(count int) int {
	c.pos = c.shift(c.pos, count)
	c.trim()
	return c.pos
}

func (c *Cursor[T]) Peek(ctx context.Context) (T, bool, error) {
	return c.at(ctx, c.pos)
}

func (c *Cursor[T]) Take(ctx context.Context) (T, bool, error) {
	v, ok, err := c.at(ctx, c.pos)
	if ok {
		c.Move(1)
	}
	return v, ok, err
}

// Branch returns a new branch positioned at the cursor's current position.
func (c *Cursor[T]) Branch() *Branch[T] {
	return c.branchAt(c.pos)
}

// Reset rewinds the cursor to index 0: the buffer is cleared, every live
// branch is closed, and the source is rewound so subsequent reads replay the
// sequence from the start. The source must support rewinding
// (interface{ Reset() error }); Reset fails with ErrSourceReset otherwise,
// leaving the cursor untouched.
func (c *Cursor[T]) Reset() error {
	r, ok := c.src.(interface{ Reset() error })
	if !ok {
		return ErrSourceReset
	}
	if err := r.Reset(); err != nil {
		return fmt.Errorf("reset source: %w", err)
	}
	for len(c.branches) > 0 {
		c.branches[len(c.branches)-1].Close()
	}
	c.buf = newBuffer[T]()
	c.pos = 0
	return nil
}

// Close disposes the cursor: every live branch is closed, the source is
// released (and closed if it implements io.Closer), and subsequent reads see
// the end of the sequence. Close is idempotent and safe to call reentrantly
// from a branch disposal it triggers.
func (c *Cursor[T]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for len(c.branches) > 0 {
		c.branches[len(c.branches)-1].Close()
	}
	if cl, ok := c.src.(io.Closer); ok {
		cl.Close()
	}
	c.src = nil
	if !c.buf.done {
		c.buf.terminate(nil)
	}
	if c.pos > c.buf.end() {
		c.pos = c.buf.end()
	}
}

func (c *Cursor[T]) branchAt(pos int) *Branch[T] {
	b := &Branch[T]{root: c, pos: pos}
	c.branches = append(c.branches, b)
	return b
}

func (c *Cursor[T]) detach(b *Branch[T]) {
	for i, live := range c.branches {
		if live == b {
			c.branches = append(c.branches[:i], c.branches[i+1:]...)
			return
		}
	}
}

// shift validates and applies a position move, clamping at the end of a
// terminated sequence.
func (c *Cursor[T]) shift(pos, count int) int {
	if count < 0 && c.forwardOnly {
		panic("stream: backward move on forward-only cursor")
	}
	next := pos + count
	if next < 0 {
		panic("stream: move before start of sequence")
	}
	if next < c.buf.first {
		panic(fmt.Sprintf("stream: move to index %d, already evicted (buffer starts at %d)", next, c.buf.first))
	}
	if c.buf.done && next > c.buf.end() {
		next = c.buf.end()
	}
	return next
}

// trim runs the retention policy: in forward-only mode, drop every element
// no longer reachable by the cursor or a live branch. One scan over the live
// branches per move or disposal.
func (c *Cursor[T]) trim() {
	if !c.forwardOnly || c.keepAll {
		return
	}
	low := c.pos
	for _, b := range c.branches {
		if b.pos < low {
			low = b.pos
		}
	}
	c.buf.trimTo(low)
}

// at reads the element at index i, pulling from the source until it has been
// produced or the sequence terminates.
func (c *Cursor[T]) at(ctx context.Context, i int) (T, bool, error) {
	var zero T
	pulled := false
	for !c.buf.done && i > c.buf.latest {
		if c.src == nil {
			break
		}
		v, err := c.src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				// Cancellation is the caller's, not the sequence's; the
				// source may still produce on a later read.
				return zero, false, err
			}
			if errors.Is(err, io.EOF) {
				c.terminate(nil)
			} else {
				c.terminate(err)
			}
			break
		}
		c.buf.record(v)
		pulled = true
	}
	if pulled {
		// Readers may sit far ahead of what had been produced; newly
		// recorded elements nobody can reach anymore are dropped right away.
		c.trim()
	}
	if i <= c.buf.latest {
		if i < c.buf.first {
			panic(fmt.Sprintf("stream: read at index %d, already evicted (buffer starts at %d)", i, c.buf.first))
		}
		return c.buf.at(i), true, nil
	}
	return zero, false, c.buf.err
}

// terminate records the terminal signal exactly once and clamps every
// reader, including readers already past the final index.
func (c *Cursor[T]) terminate(err error) {
	c.buf.terminate(err)
	end := c.buf.end()
	if c.pos > end {
		c.pos = end
	}
	for _, b := range c.branches {
		if b.pos > end {
			b.pos = end
		}
	}
}
