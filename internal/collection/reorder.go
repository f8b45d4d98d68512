package collection

// Move relocates the element identified by movedID to the index currently
// held by targetID and returns the new ordering.
//
// Elements between the two positions shift by one toward the vacated slot.
// When either id is missing, or both are the same, items is returned as-is
// and the second return value is false.
func Move[T any](items []T, movedID, targetID string, key func(T) string) ([]T, bool) {
	if movedID == targetID {
		return items, false
	}

	from, to := -1, -1
	for i, item := range items {
		switch key(item) {
		case movedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return items, false
	}

	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	moved := items[from]
	out = append(out[:to], append([]T{moved}, out[to:]...)...)

	return out, true
}

// IndexOf returns the position of the element with the given id, or -1.
func IndexOf[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}
