package notify

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeHook creates a hook directory with a manifest and a shell script
// executable.
func writeHook(t *testing.T, dir, name, script string) {
	t.Helper()

	hookDir := filepath.Join(dir, name)
	if err := os.MkdirAll(hookDir, 0755); err != nil {
		t.Fatalf("mkdir hook: %v", err)
	}

	manifest := Manifest{
		Name:        name,
		Version:     "1.0.0",
		Description: "test hook",
		Executable:  "run.sh",
	}
	data, _ := json.Marshal(manifest)
	if err := os.WriteFile(filepath.Join(hookDir, "hook.json"), data, 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	content := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(filepath.Join(hookDir, "run.sh"), []byte(content), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

func TestManager_Discover(t *testing.T) {
	dir := t.TempDir()

	writeHook(t, dir, "buzzer", `echo '{"success": true}'`)
	writeHook(t, dir, "beacon", `echo '{"success": true}'`)

	// A directory without a manifest is not a hook
	if err := os.MkdirAll(filepath.Join(dir, "not-a-hook"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// A malformed manifest is skipped
	badDir := filepath.Join(dir, "broken")
	os.MkdirAll(badDir, 0755)
	os.WriteFile(filepath.Join(badDir, "hook.json"), []byte("{not json"), 0644)

	m := NewManager(dir)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(m.List()) != 2 {
		t.Errorf("List() returned %d hooks, want 2", len(m.List()))
	}

	hook, err := m.Get("buzzer")
	if err != nil {
		t.Fatalf("Get(buzzer) error = %v", err)
	}
	if hook.Manifest.Name != "buzzer" {
		t.Errorf("hook name = %q, want buzzer", hook.Manifest.Name)
	}
	if !strings.HasSuffix(hook.Executable, "run.sh") {
		t.Errorf("executable = %q, want a run.sh path", hook.Executable)
	}

	if _, err := m.Get("missing"); !errors.Is(err, ErrHookNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrHookNotFound", err)
	}
}

func TestManager_DiscoverMissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nope"))

	if err := m.Discover(); err != nil {
		t.Errorf("Discover() on missing dir error = %v, want nil", err)
	}
	if len(m.List()) != 0 {
		t.Errorf("List() returned %d hooks, want 0", len(m.List()))
	}
}

func TestRunner_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts use /bin/sh")
	}

	dir := t.TempDir()
	// The hook echoes the received id back inside a success response
	writeHook(t, dir, "echoer", `
read payload
echo '{"success": true}'`)

	m := NewManager(dir)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	hook, err := m.Get("echoer")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	r := NewRunner(5000)
	ev := &Event{ID: "a1", TriggeredAt: time.Now(), Reversals: 4}

	resp, err := r.Run(hook, ev)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !resp.Success {
		t.Errorf("Success = false, want true")
	}
}

func TestRunner_RunFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts use /bin/sh")
	}

	dir := t.TempDir()
	writeHook(t, dir, "crasher", `echo "boom" >&2; exit 1`)

	m := NewManager(dir)
	m.Discover()
	hook, _ := m.Get("crasher")

	r := NewRunner(5000)
	if _, err := r.Run(hook, &Event{ID: "a1", TriggeredAt: time.Now()}); err == nil {
		t.Error("Run() should fail when the hook exits non-zero")
	}
}

func TestRunner_RunTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts use /bin/sh")
	}

	dir := t.TempDir()
	writeHook(t, dir, "sleeper", `sleep 5; echo '{"success": true}'`)

	m := NewManager(dir)
	m.Discover()
	hook, _ := m.Get("sleeper")

	r := NewRunner(100)
	if _, err := r.Run(hook, &Event{ID: "a1", TriggeredAt: time.Now()}); err == nil {
		t.Error("Run() should fail when the hook exceeds the timeout")
	}
}

func TestRunner_RunBadOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts use /bin/sh")
	}

	dir := t.TempDir()
	writeHook(t, dir, "garbler", `echo "not json"`)

	m := NewManager(dir)
	m.Discover()
	hook, _ := m.Get("garbler")

	r := NewRunner(5000)
	if _, err := r.Run(hook, &Event{ID: "a1", TriggeredAt: time.Now()}); err == nil {
		t.Error("Run() should fail on unparseable hook output")
	}
}

func TestRunner_RunAllToleratesFailures(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts use /bin/sh")
	}

	dir := t.TempDir()
	writeHook(t, dir, "good", `echo '{"success": true}'`)
	writeHook(t, dir, "bad", `exit 1`)

	m := NewManager(dir)
	m.Discover()

	// Must not panic or propagate the failing hook's error
	r := NewRunner(5000)
	r.RunAll(m, &Event{ID: "a1", TriggeredAt: time.Now(), Reversals: 3})
}
