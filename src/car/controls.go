package car

import "liftcore/src/types"

// RegisterStop adds a destination to the pending-stop set and wakes the
// control loop. Requests for floors outside [0, topFloor] and requests
// while under maintenance or emergency are dropped silently: a physical
// panel cannot express an invalid floor, and a locked-out car must not
// accumulate stops.
func (c *Car) RegisterStop(floor int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maintenance || c.state == types.Emergency {
		return
	}
	if floor < 0 || floor > c.topFloor {
		return
	}
	c.stops[floor] = struct{}{}
	c.cond.Broadcast()
}

// SetLoad records a load sensor reading and recomputes the overload
// flag. Overload suspends movement without clearing pending stops; the
// car resumes once load drops back under capacity.
func (c *Car) SetLoad(kg int) {
	c.mu.Lock()
	if kg < 0 {
		kg = 0
	}
	c.loadKg = kg
	wasOverloaded := c.overloaded
	c.overloaded = kg > c.capacity
	if c.overloaded && !wasOverloaded {
		log.Warn().Int("car", c.id).Int("loadKg", kg).Int("capacityKg", c.capacity).
			Msg("Overload, movement suspended")
	}
	snap := c.snapshotLocked()
	c.cond.Broadcast()
	c.mu.Unlock()
	c.publish(snap)
}

// EnterMaintenance locks the car out: pending stops are cleared, the
// door is forced closed and dispatch eligibility is revoked. A latched
// emergency is overridden; a technician taking the car out of service
// wins over the emergency stop.
func (c *Car) EnterMaintenance() {
	c.mu.Lock()
	c.maintenance = true
	c.state = types.Maintenance
	c.direction = types.DirIdle
	clear(c.stops)
	c.door = types.DoorClosed
	c.holdDoor = false
	snap := c.snapshotLocked()
	c.cond.Broadcast()
	c.mu.Unlock()
	log.Info().Int("car", c.id).Msg("Entering maintenance")
	c.publish(snap)
}

// ExitMaintenance returns the car to service. No-op if the car is not
// under maintenance.
func (c *Car) ExitMaintenance() {
	c.mu.Lock()
	if !c.maintenance {
		c.mu.Unlock()
		return
	}
	c.maintenance = false
	c.state = types.Idle
	c.direction = types.DirIdle
	snap := c.snapshotLocked()
	c.cond.Broadcast()
	c.mu.Unlock()
	log.Info().Int("car", c.id).Msg("Exiting maintenance")
	c.publish(snap)
}

// EmergencyStop halts the car where it is: pending stops are cleared
// and the door is forced closed. Ignored while under maintenance; the
// maintenance lockout takes precedence. Only ResetEmergency releases it.
func (c *Car) EmergencyStop() {
	c.mu.Lock()
	if c.maintenance {
		c.mu.Unlock()
		return
	}
	c.state = types.Emergency
	c.direction = types.DirIdle
	clear(c.stops)
	c.door = types.DoorClosed
	c.holdDoor = false
	snap := c.snapshotLocked()
	c.cond.Broadcast()
	c.mu.Unlock()
	log.Error().Int("car", c.id).Msg("ALERT: emergency stop")
	c.publish(snap)
}

// ResetEmergency releases an emergency stop. Strict no-op on a car not
// in emergency: no state change, no snapshot.
func (c *Car) ResetEmergency() {
	c.mu.Lock()
	if c.state != types.Emergency {
		c.mu.Unlock()
		return
	}
	c.state = types.Idle
	c.direction = types.DirIdle
	snap := c.snapshotLocked()
	c.cond.Broadcast()
	c.mu.Unlock()
	log.Info().Int("car", c.id).Msg("Emergency reset")
	c.publish(snap)
}

// HoldDoor extends the door-open dwell. Observed by the dwell loop
// within one poll interval; the countdown restarts from the full dwell
// duration. Ignored while the door is closed.
func (c *Car) HoldDoor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.door == types.DoorOpen {
		c.holdDoor = true
	}
}
