package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/ritankar/handwave/internal/alertlog"
	"github.com/ritankar/handwave/internal/app"
	"github.com/ritankar/handwave/internal/config"
	"github.com/ritankar/handwave/internal/server"
	"github.com/ritankar/handwave/internal/store"
	"github.com/ritankar/handwave/internal/tray"
)

func main() {
	fmt.Println("Handwave - Wave Gesture Alert Monitor")

	configPath := flag.String("config", "", "path to the configuration file")
	headless := flag.Bool("headless", false, "run without the system tray")
	flag.Parse()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".handwave")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if *configPath == "" {
		*configPath = filepath.Join(dataDir, "config.yaml")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "handwave.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	logPath := cfg.Alert.LogPath
	if logPath == "" {
		logPath = filepath.Join(dataDir, "alerts.log")
	}

	hookDir := cfg.Hooks.Dir
	if hookDir == "" {
		hookDir = filepath.Join(dataDir, "hooks")
	}

	a := app.New(app.Config{
		Store:        st,
		AlertLog:     alertlog.New(logPath),
		HookDir:      hookDir,
		CameraID:     cfg.Camera.Device,
		Width:        cfg.Camera.Width,
		Height:       cfg.Camera.Height,
		Stride:       cfg.Camera.Stride,
		WindowSize:   cfg.Wave.WindowSize,
		MinReversals: cfg.Wave.MinReversals,
		Cooldown:     cfg.Cooldown(),
		Hold:         cfg.Hold(),
		MotionThresh: cfg.Camera.MotionThreshold,
		Landmark:     cfg.Wave.Landmark,
	})

	if err := a.DiscoverHooks(); err != nil {
		log.Printf("Hook discovery failed: %v", err)
	} else if n := len(a.Hooks().List()); n > 0 {
		log.Printf("Discovered %d alert hooks", n)
	}

	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findWebDir(dataDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     st,
		App:       a,
		RefLine:   cfg.Alert.ReferenceLine,
	})

	go func() {
		log.Printf("Starting server on %s", cfg.Server.Listen)
		if err := srv.ListenAndServe(cfg.Server.Listen); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start detection pipeline: %v", err)
	}
	defer a.Stop()

	// Monitoring state survives restarts
	enabled := true
	if v, err := st.Settings().Get("monitoring_enabled"); err == nil {
		enabled = v == "true"
	}
	a.SetEnabled(enabled)

	if *headless {
		runHeadless()
		return
	}

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		if err := st.Settings().Set("monitoring_enabled", strconv.FormatBool(enabled)); err != nil {
			log.Printf("Failed to save monitoring state: %v", err)
		}
	})
	t.OnQuit(func() {
		a.Stop()
	})
	a.OnAlert(func(ev app.AlertEvent) {
		t.SetLastAlert(ev.Timestamp.Format("15:04:05"))
	})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		t.Quit()
	}()

	// Blocks until quit
	t.Run()
}

// runHeadless blocks until an interrupt or termination signal arrives.
func runHeadless() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down")
}

// findWebDir searches for the web directory in common locations.
func findWebDir(dataDir string) string {
	candidates := []string{"web", "../web", filepath.Join(dataDir, "web")}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}
	return ""
}
