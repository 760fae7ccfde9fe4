package car

import (
	"time"

	"liftcore/src/movement"
	"liftcore/src/types"
)

// run is the control loop. Each iteration waits until the car may move,
// walks one floor toward the next stop, services arrivals and cycles
// the door. Transit and dwell sleeps happen outside the lock so
// administrative calls are never stalled behind them.
func (c *Car) run() {
	for {
		c.mu.Lock()
		if !c.waitRunnableLocked() {
			c.mu.Unlock()
			return
		}

		// A stop registered at the current floor is serviced in place.
		if _, here := c.stops[c.floor]; here {
			snap := c.serviceStopLocked()
			c.mu.Unlock()
			c.publish(snap)
			if !c.dwell() {
				return
			}
			continue
		}

		target, ok := movement.NextStop(c.floor, c.direction, c.stops)
		if !ok {
			c.mu.Unlock()
			continue
		}
		var snap types.StatusSnapshot
		changed := false
		if target > c.floor {
			changed = c.state != types.MovingUp
			c.direction, c.state = types.DirUp, types.MovingUp
		} else {
			changed = c.state != types.MovingDown
			c.direction, c.state = types.DirDown, types.MovingDown
		}
		if changed {
			snap = c.snapshotLocked()
		}
		c.mu.Unlock()
		if changed {
			c.publish(snap)
		}

		// One floor per time quantum.
		if !c.sleep(c.cfg.TravelDuration) {
			return
		}

		c.mu.Lock()
		if !c.running {
			c.mu.Unlock()
			return
		}
		// An emergency or maintenance raised mid-transit brakes the car
		// where it is; the floor does not advance.
		if c.maintenance || c.state == types.Emergency {
			c.mu.Unlock()
			continue
		}
		if target > c.floor {
			c.floor++
		} else if target < c.floor {
			c.floor--
		}
		arrived := false
		if _, stop := c.stops[c.floor]; stop {
			snap = c.serviceStopLocked()
			arrived = true
		} else {
			snap = c.snapshotLocked()
		}
		floor := c.floor
		c.mu.Unlock()
		c.publish(snap)

		if arrived {
			log.Debug().Int("car", c.id).Int("floor", floor).Msg("Stopping at floor")
			if !c.dwell() {
				return
			}
		}
	}
}

// waitRunnableLocked blocks until the car has a pending stop, is not
// overloaded and is not locked out, or until shutdown. The condition
// check and the wait share one lock acquisition, so wakeups cannot be
// missed. Returns false on shutdown.
func (c *Car) waitRunnableLocked() bool {
	for {
		if !c.running {
			return false
		}
		if !c.maintenance && c.state != types.Emergency && !c.overloaded && len(c.stops) > 0 {
			return true
		}
		if !c.maintenance && c.state != types.Emergency {
			if len(c.stops) == 0 {
				if c.state != types.Idle || c.direction != types.DirIdle {
					c.state = types.Idle
					c.direction = types.DirIdle
					snap := c.snapshotLocked()
					c.mu.Unlock()
					c.publish(snap)
					c.mu.Lock()
					continue
				}
			} else if target, ok := movement.NextStop(c.floor, c.direction, c.stops); ok {
				// Overload hold: direction keeps pointing at the next
				// target so dispatch still sees where the car is headed.
				switch {
				case target > c.floor:
					c.direction = types.DirUp
				case target < c.floor:
					c.direction = types.DirDown
				}
			}
		}
		c.cond.Wait()
	}
}

// serviceStopLocked removes the current floor from the pending set,
// parks the car and opens the door. Direction is retained while stops
// remain so the next target continues the current sweep.
func (c *Car) serviceStopLocked() types.StatusSnapshot {
	delete(c.stops, c.floor)
	c.state = types.Idle
	if len(c.stops) == 0 {
		c.direction = types.DirIdle
	}
	c.door = types.DoorOpen
	return c.snapshotLocked()
}

// dwell holds the door open for the configured duration, restarting the
// countdown each time a hold signal was observed within the window,
// then closes it and publishes. Returns false on shutdown.
func (c *Car) dwell() bool {
	deadline := time.Now().Add(c.cfg.DoorOpenDuration)
	for time.Now().Before(deadline) {
		if !c.sleep(c.cfg.DoorHoldPoll) {
			return false
		}
		c.mu.Lock()
		if c.door == types.DoorClosed {
			// Forced closed by maintenance or emergency mid-dwell. A hold
			// signal in flight must not leak into the next door cycle.
			c.holdDoor = false
			c.mu.Unlock()
			return true
		}
		if c.holdDoor {
			c.holdDoor = false
			deadline = time.Now().Add(c.cfg.DoorOpenDuration)
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	if c.door == types.DoorClosed {
		c.holdDoor = false
		c.mu.Unlock()
		return true
	}
	c.door = types.DoorClosed
	c.holdDoor = false
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
	return true
}

// sleep waits for d or until shutdown, whichever comes first.
func (c *Car) sleep(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-c.quit:
		return false
	}
}
