package stream

// buffer is the append-only record of everything a cursor's source has
// produced so far: a window of retained elements plus the terminal state.
type buffer[T any] struct {
	elems  []T
	first  int // source index of elems[0]
	latest int // source index of the most recently recorded element, -1 if none
	done   bool
	err    error // terminal failure, nil when the source completed cleanly
}

func newBuffer[T any]() buffer[T] {
	return buffer[T]{latest: -1}
}

func (b *buffer[T]) record(v T) {
	b.elems = append(b.elems, v)
	b.latest++
}

// terminate records the terminal signal. It must be called at most once.
func (b *buffer[T]) terminate(err error) {
	b.done = true
	b.err = err
}

// end is the clamp position: one past the final element.
func (b *buffer[T]) end() int {
	return b.latest + 1
}

func (b *buffer[T]) at(i int) T {
	return b.elems[i-b.first]
}

// trimTo drops every element with an index below low.
func (b *buffer[T]) trimTo(low int) {
	n := low - b.first
	if n <= 0 {
		return
	}
	if n > len(b.elems) {
		n = len(b.elems)
	}
	k := copy(b.elems, b.elems[n:])
	clear(b.elems[k:])
	b.elems = b.elems[:k]
	b.first += n
}
