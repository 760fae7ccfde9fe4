package movement

import (
	"testing"

	"liftcore/src/types"
)

func stopSet(floors ...int) map[int]struct{} {
	stops := make(map[int]struct{})
	for _, f := range floors {
		stops[f] = struct{}{}
	}
	return stops
}

func TestNextStop(t *testing.T) {
	tests := []struct {
		name    string
		current int
		dir     types.Direction
		stops   []int
		want    int
		wantOK  bool
	}{
		{name: "empty set", current: 4, dir: types.DirUp, stops: nil, wantOK: false},
		{name: "up continues to nearest above", current: 4, dir: types.DirUp, stops: []int{2, 5, 9}, want: 5, wantOK: true},
		{name: "up reverses at top of queue", current: 9, dir: types.DirUp, stops: []int{2}, want: 2, wantOK: true},
		{name: "up skips stop at current floor", current: 5, dir: types.DirUp, stops: []int{2, 9}, want: 9, wantOK: true},
		{name: "down continues to nearest below", current: 7, dir: types.DirDown, stops: []int{2, 5, 9}, want: 5, wantOK: true},
		{name: "down reverses at bottom of queue", current: 1, dir: types.DirDown, stops: []int{6, 8}, want: 6, wantOK: true},
		{name: "idle picks nearer stop", current: 4, dir: types.DirIdle, stops: []int{1, 6}, want: 6, wantOK: true},
		{name: "idle tie breaks toward lower floor", current: 5, dir: types.DirIdle, stops: []int{3, 7}, want: 3, wantOK: true},
		{name: "idle only stops above", current: 2, dir: types.DirIdle, stops: []int{8, 11}, want: 8, wantOK: true},
		{name: "idle only stops below", current: 10, dir: types.DirIdle, stops: []int{1, 4}, want: 4, wantOK: true},
		{name: "up with no other floors", current: 3, dir: types.DirUp, stops: []int{3}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextStop(tt.current, tt.dir, stopSet(tt.stops...))
			if ok != tt.wantOK {
				t.Fatalf("NextStop(%d, %v, %v) ok = %v, want %v", tt.current, tt.dir, tt.stops, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("NextStop(%d, %v, %v) = %d, want %d", tt.current, tt.dir, tt.stops, got, tt.want)
			}
		})
	}
}

// A car sweeping upward clears every stop ahead before reversing.
func TestNextStopLookSweep(t *testing.T) {
	stops := stopSet(2, 5, 9)
	current, dir := 4, types.DirUp

	var order []int
	for len(stops) > 0 {
		next, ok := NextStop(current, dir, stops)
		if !ok {
			t.Fatalf("no next stop with %d pending", len(stops))
		}
		if next > current {
			dir = types.DirUp
		} else {
			dir = types.DirDown
		}
		current = next
		delete(stops, next)
		order = append(order, next)
	}

	want := []int{5, 9, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("sweep order = %v, want %v", order, want)
		}
	}
}
