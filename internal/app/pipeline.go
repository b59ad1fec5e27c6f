package app

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ritankar/handwave/internal/notify"
	"github.com/ritankar/handwave/internal/store"
	"github.com/ritankar/handwave/internal/wave"
)

// runPipeline is the main detection loop.
//
// Pipeline logic:
//  1. Start in idle mode (IdleFPS)
//  2. On motion, switch to active mode (ActiveFPS)
//  3. The throttler admits every Nth frame
//  4. In active mode, run hand estimation and feed the wave detector
//  5. Evaluate the alarm on every admitted frame
//  6. After 2s without motion, drop back to idle mode
//
// The wave window is deliberately not reset when the pipeline goes idle:
// temporal gaps between admitted frames are absorbed, and a frozen window
// keeps whatever verdict it last held.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			if !a.throttle.Admit() {
				frame.Close()
				continue
			}

			moving, _ := a.gate.Detect(frame)

			if moving {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if activeMode {
				kp, err := a.estimator.Detect(frame)
				if err != nil {
					log.Printf("Error estimating hand: %v", err)
				} else if kp != nil {
					a.observe(kp.X)
				}
			}

			frame.Close()

			a.evaluate(time.Now())
		}
	}
}

// observe feeds one horizontal hand position into the wave detector.
func (a *App) observe(x float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.wave.Observe(x)
}

// evaluate runs the alarm state machine against the detector's current
// verdict and fires the alert or clear side effects on transitions.
func (a *App) evaluate(now time.Time) {
	a.mu.Lock()

	wasActive := a.alarm.Active()
	ev := a.alarm.Update(a.wave.Active(), now)

	if ev != nil {
		id := uuid.NewString()
		reversals := wave.Reversals(a.wave.Window().Samples())
		a.currentAlertID = id
		a.lastAlert = ev.Timestamp

		alertFns := append([]func(AlertEvent){}, a.alertListeners...)
		stateFns := append([]func(bool){}, a.stateListeners...)
		a.mu.Unlock()

		a.handleAlert(AlertEvent{ID: id, Timestamp: ev.Timestamp, Reversals: reversals}, alertFns, stateFns)
		return
	}

	if wasActive && !a.alarm.Active() {
		id := a.currentAlertID
		a.currentAlertID = ""
		stateFns := append([]func(bool){}, a.stateListeners...)
		a.mu.Unlock()

		a.handleClear(id, now, stateFns)
		return
	}

	a.mu.Unlock()
}

// handleAlert records one confirmed alert everywhere it needs to go: the
// database, the append-only log, the alert hooks and the listeners.
func (a *App) handleAlert(ev AlertEvent, alertFns []func(AlertEvent), stateFns []func(bool)) {
	log.Printf("Alert triggered: %s (%d reversals)", ev.ID, ev.Reversals)

	if a.config.Store != nil {
		err := a.config.Store.Alerts().Create(&store.Alert{
			ID:          ev.ID,
			TriggeredAt: ev.Timestamp,
			Reversals:   ev.Reversals,
		})
		if err != nil {
			log.Printf("Failed to record alert: %v", err)
		}
	}

	if a.config.AlertLog != nil {
		if err := a.config.AlertLog.Append(ev.Timestamp); err != nil {
			log.Printf("Failed to append alert log: %v", err)
		}
	}

	go a.runner.RunAll(a.hooks, &notify.Event{
		ID:          ev.ID,
		TriggeredAt: ev.Timestamp,
		Reversals:   ev.Reversals,
	})

	for _, fn := range alertFns {
		fn(ev)
	}
	for _, fn := range stateFns {
		fn(true)
	}
}

// handleClear marks the alert as over once the alarm deactivates.
func (a *App) handleClear(id string, at time.Time, stateFns []func(bool)) {
	log.Printf("Alert cleared: %s", id)

	if a.config.Store != nil && id != "" {
		if err := a.config.Store.Alerts().Clear(id, at); err != nil {
			log.Printf("Failed to clear alert: %v", err)
		}
	}

	for _, fn := range stateFns {
		fn(false)
	}
}
