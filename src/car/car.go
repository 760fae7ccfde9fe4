// Package car implements a single elevator car: its state machine,
// safety sensors and the control loop that drives it.
package car

import (
	"sync"

	"github.com/tiendc/go-deepcopy"

	"liftcore/src/config"
	"liftcore/src/dispatch"
	"liftcore/src/logger"
	"liftcore/src/types"
)

var log = logger.Get()

// PublishFunc receives a status snapshot after every state-affecting
// transition. Delivery happens outside the car's lock; implementations
// must not block for long.
type PublishFunc func(types.StatusSnapshot)

// Car is the unit of concurrency: one control loop per car, with all
// mutable state guarded by a single mutex. External callers and the
// loop share the same lock; the only blocking waits (floor transit,
// door dwell) happen outside it.
type Car struct {
	id       int
	topFloor int
	capacity int

	cfg     config.Config
	publish PublishFunc

	mu   sync.Mutex
	cond *sync.Cond
	quit chan struct{}

	floor       int
	state       types.CarState
	direction   types.Direction
	door        types.DoorState
	loadKg      int
	overloaded  bool
	maintenance bool
	holdDoor    bool
	running     bool

	stops map[int]struct{}
}

// New builds a car at floor 0, idle, door closed. The publish sink may
// be nil. Start must be called before the car services stops.
func New(id int, cfg config.Config, publish PublishFunc) *Car {
	if publish == nil {
		publish = func(types.StatusSnapshot) {}
	}
	c := &Car{
		id:       id,
		topFloor: cfg.TopFloor(),
		capacity: cfg.MaxLoadKg,
		cfg:      cfg,
		publish:  publish,
		quit:     make(chan struct{}),
		state:    types.Idle,
		door:     types.DoorClosed,
		stops:    make(map[int]struct{}),
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Start launches the control loop. wg is released when the loop exits.
func (c *Car) Start(wg *sync.WaitGroup) {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.run()
	}()
}

// Stop terminates the control loop, including mid-wait and mid-sleep.
// Safe to call more than once.
func (c *Car) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.quit)
	c.cond.Broadcast()
	c.mu.Unlock()
}

func (c *Car) ID() int { return c.id }

// Status returns the car's current snapshot.
func (c *Car) Status() types.StatusSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// View detaches a copy of the dispatch-relevant state. The pending-stop
// set is deep-copied so the dispatch policy never aliases live state.
func (c *Car) View() dispatch.CarView {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := dispatch.CarView{
		ID:        c.id,
		Floor:     c.floor,
		Direction: c.direction,
		State:     c.state,
	}
	if err := deepcopy.Copy(&view.Stops, &c.stops); err != nil {
		panic(err)
	}
	return view
}

// HasStop reports whether floor is in the pending-stop set.
func (c *Car) HasStop(floor int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.stops[floor]
	return ok
}

// PendingStops returns the number of pending stops.
func (c *Car) PendingStops() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stops)
}

func (c *Car) snapshotLocked() types.StatusSnapshot {
	return types.StatusSnapshot{
		CarID:       c.id,
		Floor:       c.floor,
		Direction:   c.direction,
		State:       c.state,
		Door:        c.door,
		LoadKg:      c.loadKg,
		Overloaded:  c.overloaded,
		Maintenance: c.maintenance,
	}
}
