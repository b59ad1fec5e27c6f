package wave

import "time"

// DefaultCooldown is the minimum elapsed time between two confirmed alert
// activations. It debounces a single sustained wave from re-triggering on
// every evaluation while the oscillation is still in the window.
const DefaultCooldown = 3 * time.Second

// State is the alarm state.
type State int

const (
	// StateInactive means no alert is currently raised.
	StateInactive State = iota
	// StateActive means a confirmed wave alert is being displayed.
	StateActive
)

// String returns the state name.
func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "inactive"
}

// Event records one confirmed detection that passed the cooldown gate.
// Exactly one Event is emitted per Inactive to Active transition.
type Event struct {
	Timestamp time.Time
}

// Alarm is the alert state machine. The Inactive to Active transition
// requires both a positive detector report and an elapsed cooldown since
// the previous trigger, and emits exactly one Event. Active to Inactive
// follows the detector: the alarm drops as soon as a later evaluation
// stops seeing a qualifying window, unless a hold duration guarantees a
// minimum visible period.
type Alarm struct {
	state       State
	activatedAt time.Time
	lastTrigger time.Time
	cooldown    time.Duration
	hold        time.Duration
}

// NewAlarm creates an Alarm. A non-positive cooldown falls back to
// DefaultCooldown. A positive hold keeps the alarm active for at least
// that long after activation; zero ties visibility directly to the
// detector output.
func NewAlarm(cooldown, hold time.Duration) *Alarm {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if hold < 0 {
		hold = 0
	}
	return &Alarm{
		cooldown: cooldown,
		hold:     hold,
	}
}

// Update consumes one detector evaluation at the given time. It returns a
// non-nil Event on an Inactive to Active transition and nil otherwise.
// A positive report inside the cooldown window neither activates the alarm
// nor emits an event.
func (a *Alarm) Update(detected bool, now time.Time) *Event {
	switch a.state {
	case StateInactive:
		if !detected {
			return nil
		}
		if !a.lastTrigger.IsZero() && now.Sub(a.lastTrigger) <= a.cooldown {
			return nil
		}
		a.state = StateActive
		a.activatedAt = now
		a.lastTrigger = now
		return &Event{Timestamp: now}

	case StateActive:
		if !detected && now.Sub(a.activatedAt) >= a.hold {
			a.state = StateInactive
		}
	}
	return nil
}

// State returns the current alarm state.
func (a *Alarm) State() State {
	return a.state
}

// Active reports whether the alarm is currently raised.
func (a *Alarm) Active() bool {
	return a.state == StateActive
}

// ActivatedAt returns the time of the current activation.
// Only meaningful while the alarm is active.
func (a *Alarm) ActivatedAt() time.Time {
	return a.activatedAt
}

// LastTrigger returns the time of the most recent confirmed detection.
func (a *Alarm) LastTrigger() time.Time {
	return a.lastTrigger
}
