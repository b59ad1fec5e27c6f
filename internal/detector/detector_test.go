package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Landmark != Wrist {
		t.Errorf("Landmark = %d, want %d (wrist)", cfg.Landmark, Wrist)
	}
	if cfg.MinConfidence != 0.5 {
		t.Errorf("MinConfidence = %f, want 0.5", cfg.MinConfidence)
	}
	if cfg.MinTrackingConf != 0.5 {
		t.Errorf("MinTrackingConf = %f, want 0.5", cfg.MinTrackingConf)
	}
}

func TestMediaPipeEstimator_Reduce(t *testing.T) {
	est := &MediaPipeEstimator{config: DefaultConfig()}

	wristAt := func(x, y float64) []jsonPoint {
		pts := make([]jsonPoint, NumLandmarks)
		pts[Wrist] = jsonPoint{X: x, Y: y}
		return pts
	}

	t.Run("no hands returns nil", func(t *testing.T) {
		if kp := est.reduce(nil, 320, 240); kp != nil {
			t.Errorf("reduce(nil) = %v, want nil", kp)
		}
	})

	t.Run("scales normalized coordinates to pixels", func(t *testing.T) {
		hands := []jsonHand{
			{Points: wristAt(0.5, 0.25), Score: 0.9},
		}

		kp := est.reduce(hands, 320, 240)
		if kp == nil {
			t.Fatal("expected a keypoint")
		}
		if math.Abs(kp.X-160) > epsilon {
			t.Errorf("X = %f, want 160", kp.X)
		}
		if math.Abs(kp.Y-60) > epsilon {
			t.Errorf("Y = %f, want 60", kp.Y)
		}
	})

	t.Run("picks the best scoring hand", func(t *testing.T) {
		hands := []jsonHand{
			{Points: wristAt(0.2, 0.5), Score: 0.6},
			{Points: wristAt(0.8, 0.5), Score: 0.95},
		}

		kp := est.reduce(hands, 100, 100)
		if kp == nil {
			t.Fatal("expected a keypoint")
		}
		if math.Abs(kp.X-80) > epsilon {
			t.Errorf("X = %f, want 80 (from the higher-scoring hand)", kp.X)
		}
	})

	t.Run("low confidence hands are ignored", func(t *testing.T) {
		hands := []jsonHand{
			{Points: wristAt(0.5, 0.5), Score: 0.2},
		}

		if kp := est.reduce(hands, 100, 100); kp != nil {
			t.Errorf("reduce() = %v for low-confidence hand, want nil", kp)
		}
	})

	t.Run("out of range landmark index falls back to wrist", func(t *testing.T) {
		bad := &MediaPipeEstimator{config: Config{Landmark: 99, MinConfidence: 0.5}}
		hands := []jsonHand{
			{Points: wristAt(0.5, 0.5), Score: 0.9},
		}

		kp := bad.reduce(hands, 100, 100)
		if kp == nil {
			t.Fatal("expected a keypoint from the wrist fallback")
		}
	})
}

func TestMockEstimator_Sequence(t *testing.T) {
	m := NewMockEstimator()
	m.SetSequence([]*Keypoint{
		{X: 100, Y: 120},
		nil, // hand lost for one frame
		{X: 140, Y: 120},
	})

	kp, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if kp == nil || kp.X != 100 {
		t.Errorf("first keypoint = %v, want X=100", kp)
	}

	kp, _ = m.Detect(nil)
	if kp != nil {
		t.Errorf("second keypoint = %v, want nil (no hand)", kp)
	}

	kp, _ = m.Detect(nil)
	if kp == nil || kp.X != 140 {
		t.Errorf("third keypoint = %v, want X=140", kp)
	}

	// Exhausted sequence falls back to the fixed keypoint (nil by default)
	kp, _ = m.Detect(nil)
	if kp != nil {
		t.Errorf("exhausted sequence keypoint = %v, want nil", kp)
	}

	if m.Calls() != 4 {
		t.Errorf("Calls() = %d, want 4", m.Calls())
	}
}

func TestMockEstimator_Error(t *testing.T) {
	m := NewMockEstimator()
	wantErr := errors.New("estimator crashed")
	m.SetError(wantErr)

	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}

func TestWaveKeypoints(t *testing.T) {
	kps := WaveKeypoints(6, 100, 140)

	if len(kps) != 6 {
		t.Fatalf("len = %d, want 6", len(kps))
	}
	for i, kp := range kps {
		want := 100.0
		if i%2 == 1 {
			want = 140.0
		}
		if kp.X != want {
			t.Errorf("kps[%d].X = %f, want %f", i, kp.X, want)
		}
	}
}

func TestRampKeypoints(t *testing.T) {
	kps := RampKeypoints(4, 100, 5)

	want := []float64{100, 105, 110, 115}
	for i, kp := range kps {
		if kp.X != want[i] {
			t.Errorf("kps[%d].X = %f, want %f", i, kp.X, want[i])
		}
	}
}
