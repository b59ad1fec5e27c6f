// Package app wires the capture, detection and alerting pieces into the
// wave monitor and runs the frame pipeline.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ritankar/handwave/internal/alertlog"
	"github.com/ritankar/handwave/internal/capture"
	"github.com/ritankar/handwave/internal/detector"
	"github.com/ritankar/handwave/internal/notify"
	"github.com/ritankar/handwave/internal/store"
	"github.com/ritankar/handwave/internal/wave"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the scene is still.
	IdleFPS = 5
	// ActiveFPS is the frame rate while the motion gate reports movement.
	ActiveFPS = 15
	// IdleTimeoutMs is how long the scene must stay still before the
	// pipeline drops back to the idle rate.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	AlertLog     *alertlog.Logger
	HookDir      string
	CameraID     int
	Width        int
	Height       int
	Stride       int
	WindowSize   int
	MinReversals int
	Cooldown     time.Duration
	Hold         time.Duration
	MotionThresh float64
	Landmark     int
}

// AlertEvent describes one confirmed alert, delivered to listeners.
type AlertEvent struct {
	ID        string
	Timestamp time.Time
	Reversals int
}

// Status is a point-in-time snapshot of the monitor for the HTTP API.
type Status struct {
	Enabled    bool      `json:"enabled"`
	Monitoring bool      `json:"monitoring"`
	Alerting   bool      `json:"alerting"`
	Reversals  int       `json:"reversals"`
	WindowFull bool      `json:"window_full"`
	LastAlert  time.Time `json:"last_alert,omitempty"`
}

// App orchestrates the detection pipeline: frames from the camera pass
// through the throttler and motion gate, the estimator reduces each one to
// a hand position, and the wave detector and alarm decide when to alert.
type App struct {
	config    Config
	camera    capture.Camera
	gate      *capture.MotionGate
	estimator detector.Estimator
	wave      *wave.Detector
	throttle  *wave.Throttler
	alarm     *wave.Alarm
	hooks     *notify.Manager
	runner    *notify.Runner

	enabled        bool
	stopCh         chan struct{}
	currentAlertID string
	lastAlert      time.Time

	alertListeners []func(AlertEvent)
	stateListeners []func(bool)

	mu sync.RWMutex
}

// New creates an App from the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID, config.Width, config.Height),
		gate:     capture.NewMotionGate(motionThreshold),
		wave:     wave.NewDetector(config.WindowSize, config.MinReversals),
		throttle: wave.NewThrottler(config.Stride),
		alarm:    wave.NewAlarm(config.Cooldown, config.Hold),
		hooks:    notify.NewManager(config.HookDir),
		runner:   notify.NewRunner(5000),
	}

	// Try MediaPipe first, fall back to the mock estimator
	estConfig := detector.DefaultConfig()
	if config.Landmark > 0 {
		estConfig.Landmark = config.Landmark
	}
	if mp, err := detector.NewMediaPipeEstimator(estConfig); err == nil {
		a.estimator = mp
		log.Println("Using MediaPipe hand estimation")
	} else {
		log.Printf("MediaPipe not available (%v), using mock estimator", err)
		a.estimator = detector.NewMockEstimator()
	}

	return a
}

// SetEnabled enables or disables monitoring. While disabled the pipeline
// keeps ticking but does not read frames or evaluate the alarm.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled reports whether monitoring is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetCamera replaces the camera implementation. Used by tests.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetEstimator replaces the hand estimator implementation.
func (a *App) SetEstimator(e detector.Estimator) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.estimator = e
}

// OnAlert registers a listener called once per confirmed alert.
func (a *App) OnAlert(fn func(AlertEvent)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alertListeners = append(a.alertListeners, fn)
}

// OnStateChange registers a listener called when the alarm flips between
// active and inactive.
func (a *App) OnStateChange(fn func(bool)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stateListeners = append(a.stateListeners, fn)
}

// DiscoverHooks scans the hook directory for alert hooks.
func (a *App) DiscoverHooks() error {
	return a.hooks.Discover()
}

// Hooks returns the hook manager.
func (a *App) Hooks() *notify.Manager {
	return a.hooks
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Gate returns the motion gate.
func (a *App) Gate() *capture.MotionGate {
	return a.gate
}

// Alerting reports whether the alarm is currently active.
func (a *App) Alerting() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.alarm.Active()
}

// Status returns a snapshot of the monitor state.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return Status{
		Enabled:    a.enabled,
		Monitoring: a.stopCh != nil,
		Alerting:   a.alarm.Active(),
		Reversals:  wave.Reversals(a.wave.Window().Samples()),
		WindowFull: a.wave.Window().Full(),
		LastAlert:  a.lastAlert,
	}
}

// Start opens the camera and begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.gate.Close()

	if a.estimator != nil {
		if err := a.estimator.Close(); err != nil {
			log.Printf("Error closing estimator: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}
