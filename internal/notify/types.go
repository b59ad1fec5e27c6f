// Package notify discovers and executes external alert hooks: standalone
// executables that react to a confirmed wave alert (sound a buzzer, send a
// message, flash a light).
package notify

import "time"

// Manifest describes a hook's metadata.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Executable  string `json:"executable"`
}

// Event is the payload delivered to a hook on each confirmed alert,
// as JSON on the hook's stdin.
type Event struct {
	ID          string    `json:"id"`
	TriggeredAt time.Time `json:"triggered_at"`
	Reversals   int       `json:"reversals"`
}

// Response is what a hook writes to stdout after handling an event.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Hook represents a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}
