// Package movement decides which pending stop a car services next.
package movement

import "liftcore/src/types"

// NextStop implements the LOOK discipline: a car keeps going in its
// current direction until no stops remain ahead, then reverses. This
// bounds direction reversals by the number of direction changes actually
// requested, unlike a nearest-first policy.
//
// With direction idle the nearer stop wins, ties broken toward the
// lower floor. The second return value is false when no stop is pending.
func NextStop(current int, dir types.Direction, stops map[int]struct{}) (int, bool) {
	if len(stops) == 0 {
		return 0, false
	}

	switch dir {
	case types.DirUp:
		if up, ok := lowestAbove(current, stops); ok {
			return up, true
		}
		return highestBelow(current, stops)
	case types.DirDown:
		if down, ok := highestBelow(current, stops); ok {
			return down, true
		}
		return lowestAbove(current, stops)
	}

	lo, hasLo := highestBelow(current, stops)
	hi, hasHi := lowestAbove(current, stops)
	switch {
	case !hasLo:
		return hi, hasHi
	case !hasHi:
		return lo, true
	case current-lo <= hi-current:
		return lo, true
	default:
		return hi, true
	}
}

func lowestAbove(current int, stops map[int]struct{}) (int, bool) {
	best, found := 0, false
	for floor := range stops {
		if floor <= current {
			continue
		}
		if !found || floor < best {
			best, found = floor, true
		}
	}
	return best, found
}

func highestBelow(current int, stops map[int]struct{}) (int, bool) {
	best, found := 0, false
	for floor := range stops {
		if floor >= current {
			continue
		}
		if !found || floor > best {
			best, found = floor, true
		}
	}
	return best, found
}
