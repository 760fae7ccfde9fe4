// Package system is the facade over the elevator core: it owns the
// fleet, the dispatcher and the floor panels, and exposes the
// operations external collaborators call.
package system

import (
	"sync"

	"github.com/xyproto/randomstring"

	"liftcore/src/car"
	"liftcore/src/config"
	"liftcore/src/dispatcher"
	"liftcore/src/logger"
	"liftcore/src/panel"
	"liftcore/src/types"
)

var log = logger.Get()

const nameLen = 10

// System is explicitly constructed and owned by the calling process;
// there is no hidden global instance.
type System struct {
	cfg    config.Config
	name   string
	cars   []*car.Car
	floors []panel.Floor
	panels []panel.CarPanel
	disp   *dispatcher.Dispatcher

	obsMu     sync.RWMutex
	observers []func(types.StatusSnapshot)

	wg      sync.WaitGroup
	lifeMu  sync.Mutex
	started bool
	stopped bool
}

// New builds the fleet and floors. Cars are created once and never
// removed; shutdown terminates their loops without destroying them.
func New(cfg config.Config) *System {
	s := &System{cfg: cfg, name: cfg.SystemName}
	if s.name == "" {
		s.name = randomstring.EnglishFrequencyString(nameLen)
		log.Warn().Str("name", s.name).Msg("No system name configured, generated one")
	}

	for id := 0; id < cfg.NumCars; id++ {
		s.cars = append(s.cars, car.New(id, cfg, s.publish))
		s.panels = append(s.panels, panel.NewCarPanel(id, cfg.NumFloors))
	}
	for f := 0; f < cfg.NumFloors; f++ {
		s.floors = append(s.floors, panel.Floor{
			Number: f,
			Panel:  panel.NewHallPanel(f, cfg.TopFloor()),
		})
	}
	s.disp = dispatcher.New(s.cars, cfg.DispatchRetry)
	return s
}

// Start launches one control loop per car plus the dispatcher loop.
// A system that has been shut down stays down; Start after Shutdown is
// a no-op.
func (s *System) Start() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	log.Info().Str("system", s.name).Int("cars", len(s.cars)).
		Int("floors", s.cfg.NumFloors).Msg("Starting elevator system")
	for _, c := range s.cars {
		c.Start(&s.wg)
	}
	s.disp.Start(&s.wg)
}

// Shutdown terminates all loops and waits for them to exit. Idempotent.
func (s *System) Shutdown() {
	s.lifeMu.Lock()
	if s.stopped || !s.started {
		s.stopped = true
		s.lifeMu.Unlock()
		return
	}
	s.stopped = true
	s.lifeMu.Unlock()

	log.Info().Str("system", s.name).Msg("Shutting down")
	s.disp.Stop()
	for _, c := range s.cars {
		c.Stop()
	}
	s.wg.Wait()
}

// CallElevator submits a hall call. Always returns after the enqueue;
// servicing is eventual. Floors outside the building are dropped.
func (s *System) CallElevator(floor int, dir types.Direction) {
	if floor < 0 || floor > s.cfg.TopFloor() {
		return
	}
	s.disp.Submit(floor, dir)
}

// RegisterDestination presses an in-car floor button. No-op for an
// unknown car, an out-of-range floor, or a car under maintenance or
// emergency.
func (s *System) RegisterDestination(carID, floor int) {
	if c := s.car(carID); c != nil {
		c.RegisterStop(floor)
	}
}

// SetLoad feeds a load sensor reading to a car.
func (s *System) SetLoad(carID, kg int) {
	if c := s.car(carID); c != nil {
		c.SetLoad(kg)
	}
}

func (s *System) EnterMaintenance(carID int) {
	if c := s.car(carID); c != nil {
		c.EnterMaintenance()
	}
}

func (s *System) ExitMaintenance(carID int) {
	if c := s.car(carID); c != nil {
		c.ExitMaintenance()
	}
}

func (s *System) EmergencyStop(carID int) {
	if c := s.car(carID); c != nil {
		c.EmergencyStop()
	}
}

func (s *System) ResetEmergency(carID int) {
	if c := s.car(carID); c != nil {
		c.ResetEmergency()
	}
}

// HoldDoor extends the door dwell of a car whose door is open.
func (s *System) HoldDoor(carID int) {
	if c := s.car(carID); c != nil {
		c.HoldDoor()
	}
}

// Subscribe registers a status sink. Delivery is synchronous and
// at-least-once per transition; sinks must not block for long and must
// not call back into the core from the callback.
func (s *System) Subscribe(observer func(types.StatusSnapshot)) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, observer)
}

func (s *System) publish(snap types.StatusSnapshot) {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	for _, observer := range s.observers {
		observer(snap)
	}
}

func (s *System) Name() string { return s.name }

// Cars exposes the fleet, read-only by convention.
func (s *System) Cars() []*car.Car { return s.cars }

// Floors exposes the floor list with hall panels.
func (s *System) Floors() []panel.Floor { return s.floors }

// CarPanels exposes the in-car panels.
func (s *System) CarPanels() []panel.CarPanel { return s.panels }

func (s *System) car(carID int) *car.Car {
	if carID < 0 || carID >= len(s.cars) {
		return nil
	}
	return s.cars[carID]
}
