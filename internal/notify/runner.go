package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// Runner executes hooks with a timeout.
type Runner struct {
	timeoutMs int
}

// NewRunner creates a Runner with the given per-hook timeout in
// milliseconds.
func NewRunner(timeoutMs int) *Runner {
	if timeoutMs <= 0 {
		timeoutMs = 5000
	}
	return &Runner{
		timeoutMs: timeoutMs,
	}
}

// Run executes one hook with the alert event on stdin and parses its
// stdout as a Response.
func (r *Runner) Run(hook *Hook, ev *Event) (*Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, hook.Executable)
	cmd.Dir = hook.Path

	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("hook %s timed out after %dms", hook.Manifest.Name, r.timeoutMs)
	}

	if err != nil {
		if stderrStr := stderr.String(); stderrStr != "" {
			return nil, fmt.Errorf("hook %s failed: %w, stderr: %s", hook.Manifest.Name, err, stderrStr)
		}
		return nil, fmt.Errorf("hook %s failed: %w", hook.Manifest.Name, err)
	}

	var response Response
	if err := json.Unmarshal(stdout.Bytes(), &response); err != nil {
		return nil, fmt.Errorf("parse hook %s response: %w, stdout: %s", hook.Manifest.Name, err, stdout.String())
	}

	return &response, nil
}

// RunAll delivers the event to every discovered hook, logging failures.
// Hook failures never propagate: a broken buzzer must not take down the
// monitor.
func (r *Runner) RunAll(m *Manager, ev *Event) {
	for _, hook := range m.List() {
		resp, err := r.Run(hook, ev)
		if err != nil {
			log.Printf("Alert hook %s: %v", hook.Manifest.Name, err)
			continue
		}
		if !resp.Success {
			log.Printf("Alert hook %s reported failure: %s", hook.Manifest.Name, resp.Error)
		}
	}
}
