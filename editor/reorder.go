package editor

// arrayMove removes the element at from and reinserts it at to, in place.
func arrayMove[T any](items []T, from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(items) || to >= len(items) {
		return
	}
	moved := items[from]
	if from < to {
		copy(items[from:], items[from+1:to+1])
	} else {
		copy(items[to+1:], items[to:from])
	}
	items[to] = moved
}
