package bondbook

import "slices"

// Move returns a copy of seq where the element at from has been removed and
// reinserted at to, the elements in between shifting by one position.
//
// If to (or from) is outside [0, len(seq)) the copy is returned unchanged.
func Move[T any](seq []T, from, to int) []T {
	out := slices.Clone(seq)
	if to < 0 || to >= len(out) || from < 0 || from >= len(out) || from == to {
		return out
	}
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}
