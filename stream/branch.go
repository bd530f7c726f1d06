package stream

import "context"

// Branch is a disposable reader sharing its root cursor's buffer and
// position space. Branches are how speculative reads are expressed: create a
// branch, read and move it freely, then either fold the outcome back by
// moving the parent or discard it by closing the branch.
type Branch[T any] struct {
	root   *Cursor[T]
	pos    int
	closed bool
}

var _ Reader[byte] = (*Branch[byte])(nil)

func (b *Branch[T]) Index() int { return b.pos }

func (b *Branch[T]) Move(count int) int {
	b.pos = b.root.shift(b.pos, count)
	b.root.trim()
	return b.pos
}

func (b *Branch[T]) Peek(ctx context.Context) (T, bool, error) {
	return b.root.at(ctx, b.pos)
}

func (b *Branch[T]) Take(ctx context.Context) (T, bool, error) {
	v, ok, err := b.root.at(ctx, b.pos)
	if ok {
		b.Move(1)
	}
	return v, ok, err
}

// Branch returns a new sibling branch at this branch's current position.
func (b *Branch[T]) Branch() *Branch[T] {
	return b.root.branchAt(b.pos)
}

// Reset fails: a branch is a view, not the owner of the sequence.
func (b *Branch[T]) Reset() error { return ErrBranchReset }

// Close disposes the branch. It detaches the branch from the root before the
// retention policy runs, never disturbs sibling positions, and is idempotent
// so reentrant disposal is safe.
func (b *Branch[T]) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.root.detach(b)
	b.root.trim()
}
