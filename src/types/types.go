package types

// Direction of travel, as requested by a hall call or held by a car.
type Direction int

const (
	DirUp   Direction = 1
	DirIdle Direction = 0
	DirDown Direction = -1
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "idle"
}

// CarState is the operational state of a single car.
type CarState int

const (
	Idle CarState = iota
	MovingUp
	MovingDown
	Maintenance
	Emergency
)

func (s CarState) String() string {
	switch s {
	case Idle:
		return "idle"
	case MovingUp:
		return "moving_up"
	case MovingDown:
		return "moving_down"
	case Maintenance:
		return "maintenance"
	case Emergency:
		return "emergency"
	}
	return "unknown"
}

// Dispatchable reports whether a car in this state may be assigned hall calls.
func (s CarState) Dispatchable() bool {
	return s != Maintenance && s != Emergency
}

type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
)

func (d DoorState) String() string {
	if d == DoorOpen {
		return "open"
	}
	return "closed"
}

// HallCall is an external request for service at a floor. It is consumed
// exactly once by the dispatcher, or re-queued if no car is eligible.
type HallCall struct {
	Floor     int
	Direction Direction
}

// StatusSnapshot is the immutable view of a car published after every
// state-affecting transition. It carries no ownership back to the car.
type StatusSnapshot struct {
	CarID       int
	Floor       int
	Direction   Direction
	State       CarState
	Door        DoorState
	LoadKg      int
	Overloaded  bool
	Maintenance bool
}
