package dispatch

import (
	"testing"

	"liftcore/src/types"
)

func view(id, floor int, state types.CarState, stops ...int) CarView {
	v := CarView{ID: id, Floor: floor, State: state, Stops: make(map[int]struct{})}
	for _, f := range stops {
		v.Stops[f] = struct{}{}
	}
	switch state {
	case types.MovingUp:
		v.Direction = types.DirUp
	case types.MovingDown:
		v.Direction = types.DirDown
	}
	return v
}

func TestChooseCarPrefersIdleNearby(t *testing.T) {
	views := []CarView{
		view(0, 10, types.Idle),
		view(1, 2, types.Idle),
	}
	id, ok := ChooseCar(views, 3, types.DirUp)
	if !ok || id != 1 {
		t.Errorf("ChooseCar = %d, %v; want 1, true", id, ok)
	}
}

func TestChooseCarPrefersMovingToward(t *testing.T) {
	// Car 1 is already moving up below the requested floor; the
	// moving-toward bonus beats car 0's idle bonus.
	views := []CarView{
		view(0, 8, types.Idle),
		view(1, 3, types.MovingUp, 9),
	}
	id, ok := ChooseCar(views, 5, types.DirUp)
	if !ok || id != 1 {
		t.Errorf("ChooseCar = %d, %v; want 1, true", id, ok)
	}
}

func TestChooseCarMovingAwayGetsNoBonus(t *testing.T) {
	if v := view(0, 6, types.MovingUp, 9); v.MovingToward(3, types.DirUp) {
		t.Error("car above the requested floor counts as moving toward it")
	}
	if v := view(0, 6, types.MovingDown, 0); v.MovingToward(8, types.DirDown) {
		t.Error("car below the requested floor counts as moving toward it")
	}
}

func TestChooseCarTieBreaksByLowestID(t *testing.T) {
	// Identical cars, identical scores: lowest id must win, every time.
	views := []CarView{
		view(2, 5, types.Idle),
		view(0, 5, types.Idle),
		view(1, 5, types.Idle),
	}
	for i := 0; i < 50; i++ {
		id, ok := ChooseCar(views, 7, types.DirUp)
		if !ok || id != 0 {
			t.Fatalf("iteration %d: ChooseCar = %d, %v; want 0, true", i, id, ok)
		}
	}
}

func TestChooseCarPendingStopsPenalty(t *testing.T) {
	views := []CarView{
		view(0, 5, types.Idle, 1, 2, 3, 4, 6, 7, 8, 9),
		view(1, 7, types.Idle),
	}
	id, ok := ChooseCar(views, 5, types.DirUp)
	if !ok || id != 1 {
		t.Errorf("ChooseCar = %d, %v; want 1 (loaded car penalized), true", id, ok)
	}
}

func TestChooseCarExcludesLockedOut(t *testing.T) {
	views := []CarView{
		view(0, 3, types.Maintenance),
		view(1, 12, types.Idle),
		view(2, 3, types.Emergency),
	}
	id, ok := ChooseCar(views, 3, types.DirUp)
	if !ok || id != 1 {
		t.Errorf("ChooseCar = %d, %v; want 1, true", id, ok)
	}
}

func TestChooseCarAllExcluded(t *testing.T) {
	views := []CarView{
		view(0, 3, types.Maintenance),
		view(1, 5, types.Emergency),
	}
	if id, ok := ChooseCar(views, 3, types.DirUp); ok {
		t.Errorf("ChooseCar = %d, true; want no eligible car", id)
	}
}
