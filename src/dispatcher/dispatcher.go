// Package dispatcher routes hall calls to cars.
package dispatcher

import (
	"sync"
	"time"

	"liftcore/src/car"
	"liftcore/src/dispatch"
	"liftcore/src/logger"
	"liftcore/src/types"
)

var log = logger.Get()

// Dispatcher owns the FIFO hall-call queue and the single coordinating
// loop that assigns calls to cars. The queue lock is disjoint from any
// car's lock. Calls that find no eligible car are re-enqueued at the
// tail; callers should expect eventual, not immediate, servicing while
// the whole fleet is locked out.
type Dispatcher struct {
	fleet []*car.Car
	retry time.Duration

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []types.HallCall
	running bool
	quit    chan struct{}
}

// New builds a dispatcher over a fleet. Fleet membership never changes
// at runtime. retry bounds the busy-retry cadence when every car is
// under maintenance or emergency.
func New(fleet []*car.Car, retry time.Duration) *Dispatcher {
	d := &Dispatcher{
		fleet: fleet,
		retry: retry,
		quit:  make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// Submit enqueues a hall call and wakes the loop. Never blocks past the
// enqueue.
func (d *Dispatcher) Submit(floor int, dir types.Direction) {
	d.mu.Lock()
	d.queue = append(d.queue, types.HallCall{Floor: floor, Direction: dir})
	d.cond.Broadcast()
	d.mu.Unlock()
}

// QueueLen returns the number of hall calls awaiting assignment.
func (d *Dispatcher) QueueLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Start launches the coordinating loop. wg is released when it exits.
func (d *Dispatcher) Start(wg *sync.WaitGroup) {
	d.mu.Lock()
	d.running = true
	d.mu.Unlock()
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.run()
	}()
}

// Stop terminates the loop, including mid-wait. Safe to call more than
// once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.quit)
	d.cond.Broadcast()
	d.mu.Unlock()
}

func (d *Dispatcher) run() {
	for {
		call, ok := d.nextCall()
		if !ok {
			return
		}

		views := make([]dispatch.CarView, 0, len(d.fleet))
		for _, c := range d.fleet {
			views = append(views, c.View())
		}

		id, found := dispatch.ChooseCar(views, call.Floor, call.Direction)
		if !found {
			// Whole fleet locked out; put the call back and retry at a
			// bounded cadence. The call loses its queue position.
			d.mu.Lock()
			d.queue = append(d.queue, call)
			d.mu.Unlock()
			if !d.sleep(d.retry) {
				return
			}
			continue
		}

		log.Debug().Int("floor", call.Floor).Stringer("direction", call.Direction).
			Int("car", id).Msg("Hall call assigned")
		for _, c := range d.fleet {
			if c.ID() == id {
				c.RegisterStop(call.Floor)
				break
			}
		}
	}
}

// nextCall blocks until a call is queued or shutdown. The condition
// check and the wait share one lock acquisition.
func (d *Dispatcher) nextCall() (types.HallCall, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.running && len(d.queue) == 0 {
		d.cond.Wait()
	}
	if !d.running {
		return types.HallCall{}, false
	}
	call := d.queue[0]
	d.queue = d.queue[1:]
	return call, true
}

func (d *Dispatcher) sleep(t time.Duration) bool {
	timer := time.NewTimer(t)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-d.quit:
		return false
	}
}
