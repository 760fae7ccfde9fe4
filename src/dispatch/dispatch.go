// Package dispatch picks the best car for a hall call.
package dispatch

import "liftcore/src/types"

// CarView is a detached copy of one car's dispatch-relevant state,
// taken under the car's lock. The policy never touches live car state.
type CarView struct {
	ID        int
	Floor     int
	Direction types.Direction
	State     types.CarState
	Stops     map[int]struct{}
}

// MovingToward reports whether the car is already travelling in the
// requested direction and has not yet passed the requested floor.
func (v CarView) MovingToward(floor int, dir types.Direction) bool {
	if v.State == types.MovingUp && dir == types.DirUp {
		return v.Floor <= floor
	}
	if v.State == types.MovingDown && dir == types.DirDown {
		return v.Floor >= floor
	}
	return false
}

// Scoring weights. Lower score wins.
const (
	distanceWeight    = 10
	idleBonus         = 15
	movingTowardBonus = 20
	stopPenalty       = 5
)

// Score is the cost of sending this car to the given hall call.
func Score(v CarView, floor int, dir types.Direction) int {
	score := abs(v.Floor-floor) * distanceWeight
	if v.State == types.Idle {
		score -= idleBonus
	}
	if v.MovingToward(floor, dir) {
		score -= movingTowardBonus
	}
	score += len(v.Stops) * stopPenalty
	return score
}

// ChooseCar returns the id of the minimum-score eligible car, ties
// broken by lowest id. Cars under maintenance or emergency are
// excluded; ok is false only when every car is excluded.
func ChooseCar(views []CarView, floor int, dir types.Direction) (int, bool) {
	bestID, bestScore, found := 0, 0, false
	for _, v := range views {
		if !v.State.Dispatchable() {
			continue
		}
		score := Score(v, floor, dir)
		if !found || score < bestScore || (score == bestScore && v.ID < bestID) {
			bestID, bestScore, found = v.ID, score, true
		}
	}
	return bestID, found
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
