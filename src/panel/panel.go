// Package panel models the physical call panels: one hall panel per
// floor and one destination panel per car. Buttons are a tagged variant
// rather than a type hierarchy; a button is pressed-or-not plus an
// identifying payload.
package panel

import "liftcore/src/types"

// Controls is the slice of the elevator core that panels press into.
type Controls interface {
	CallElevator(floor int, dir types.Direction)
	RegisterDestination(carID, floor int)
	HoldDoor(carID int)
	EmergencyStop(carID int)
}

type ButtonKind int

const (
	HallButton ButtonKind = iota
	DestinationButton
	OpenButton
	CloseButton
	EmergencyButton
)

// Button identifies what a press means. Floor is set for hall and
// destination buttons, Direction for hall buttons, CarID for buttons
// mounted inside a car.
type Button struct {
	Kind      ButtonKind
	Floor     int
	Direction types.Direction
	CarID     int
}

// Press routes the button to the core. Unroutable presses (the close
// button; the door closes on its own) are dropped.
func (b Button) Press(ctl Controls) {
	switch b.Kind {
	case HallButton:
		ctl.CallElevator(b.Floor, b.Direction)
	case DestinationButton:
		ctl.RegisterDestination(b.CarID, b.Floor)
	case OpenButton:
		ctl.HoldDoor(b.CarID)
	case EmergencyButton:
		ctl.EmergencyStop(b.CarID)
	}
}

// HallPanel is the pair of call buttons at one floor. The top floor has
// no up button and floor 0 has no down button.
type HallPanel struct {
	Floor int
	Up    *Button
	Down  *Button
}

func NewHallPanel(floor, topFloor int) HallPanel {
	p := HallPanel{Floor: floor}
	if floor < topFloor {
		p.Up = &Button{Kind: HallButton, Floor: floor, Direction: types.DirUp}
	}
	if floor > 0 {
		p.Down = &Button{Kind: HallButton, Floor: floor, Direction: types.DirDown}
	}
	return p
}

// CarPanel is the in-car panel: one destination button per floor plus
// door and emergency controls.
type CarPanel struct {
	CarID        int
	FloorButtons []Button
	Open         Button
	Close        Button
	Emergency    Button
}

func NewCarPanel(carID, numFloors int) CarPanel {
	p := CarPanel{
		CarID:     carID,
		Open:      Button{Kind: OpenButton, CarID: carID},
		Close:     Button{Kind: CloseButton, CarID: carID},
		Emergency: Button{Kind: EmergencyButton, CarID: carID},
	}
	for f := 0; f < numFloors; f++ {
		p.FloorButtons = append(p.FloorButtons, Button{Kind: DestinationButton, Floor: f, CarID: carID})
	}
	return p
}

// Floor couples a floor number with its hall panel. Floor membership is
// fixed at construction.
type Floor struct {
	Number int
	Panel  HallPanel
}
