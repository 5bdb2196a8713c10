package widgets

// NextValid returns the first index after cur, wrapping around n entries,
// for which valid holds. After a full lap without a match it returns cur,
// so a form with a single valid field loops onto itself and a form with none
// leaves the cursor in place.
func NextValid(cur, n int, valid func(int) bool) int {
	return step(cur, n, 1, valid)
}

// PrevValid is NextValid walking backwards.
func PrevValid(cur, n int, valid func(int) bool) int {
	return step(cur, n, n-1, valid)
}

func step(cur, n, delta int, valid func(int) bool) int {
	if n <= 0 {
		return cur
	}

	i := cur
	for range n {
		i = (i + delta) % n
		if valid(i) {
			return i
		}
	}

	return cur
}
