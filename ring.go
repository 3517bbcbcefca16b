// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

// tailWindow keeps the last cap pushed values, evicting the oldest first.
type tailWindow[T any] struct {
	buf   []T
	start int
	n     int
}

// newTailWindow creates a window retaining at most size values.
func newTailWindow[T any](size int) *tailWindow[T] {
	return &tailWindow[T]{buf: make([]T, max(0, size))}
}

// push appends v, evicting the oldest value when full.
func (w *tailWindow[T]) push(v T) {
	if len(w.buf) == 0 {
		return
	}

	if w.n < len(w.buf) {
		w.buf[(w.start+w.n)%len(w.buf)] = v
		w.n++
		return
	}

	w.buf[w.start] = v
	w.start = (w.start + 1) % len(w.buf)
}

// len returns number of retained values.
func (w *tailWindow[T]) len() int {
	return w.n
}

// items returns retained values in arrival order.
func (w *tailWindow[T]) items() []T {
	out := make([]T, 0, w.n)
	for i := 0; i < w.n; i++ {
		out = append(out, w.buf[(w.start+i)%len(w.buf)])
	}

	return out
}
