// Package main provides the announce hook: it speaks an alert announcement
// through the system speech synthesizer so someone nearby hears that help
// was requested.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// Event is the alert payload delivered on stdin.
type Event struct {
	ID          string    `json:"id"`
	TriggeredAt time.Time `json:"triggered_at"`
	Reversals   int       `json:"reversals"`
}

// Response is the result written to stdout.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func main() {
	var ev Event
	if err := json.NewDecoder(os.Stdin).Decode(&ev); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("failed to decode event: %v", err)})
		return
	}

	message := fmt.Sprintf("Attention. A help wave was detected at %s.",
		ev.TriggeredAt.Format("3:04 PM"))

	if err := speak(message); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("speech failed: %v", err)})
		return
	}

	writeResponse(Response{Success: true})
}

// speak runs the platform speech synthesizer.
func speak(message string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("say", message).Run()
	case "linux":
		return exec.Command("espeak", message).Run()
	default:
		return fmt.Errorf("no speech synthesizer for %s", runtime.GOOS)
	}
}

func writeResponse(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
