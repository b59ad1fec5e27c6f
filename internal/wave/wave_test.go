package wave

import "testing"

func TestReversals(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    int
	}{
		{
			name:    "empty",
			samples: nil,
			want:    0,
		},
		{
			name:    "two samples have no delta pair",
			samples: []float64{100, 140},
			want:    0,
		},
		{
			name:    "monotonic increasing",
			samples: []float64{10, 20, 30, 40, 50},
			want:    0,
		},
		{
			name:    "monotonic decreasing",
			samples: []float64{50, 40, 30, 20, 10},
			want:    0,
		},
		{
			name:    "single reversal",
			samples: []float64{100, 140, 100},
			want:    1,
		},
		{
			name:    "full zig-zag",
			samples: []float64{100, 140, 100, 140, 100, 140},
			want:    4,
		},
		{
			name: "zero delta does not count as a change",
			// The still sample produces two zero products; neither counts.
			samples: []float64{100, 140, 140, 100},
			want:    0,
		},
		{
			name: "stillness inside a run does not add reversals",
			samples: []float64{100, 120, 120, 140, 160},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reversals(tt.samples); got != tt.want {
				t.Errorf("Reversals(%v) = %d, want %d", tt.samples, got, tt.want)
			}
		})
	}
}

func TestDetector_InactiveUntilWindowFull(t *testing.T) {
	d := NewDetector(DefaultWindowSize, DefaultMinReversals)

	// A perfect wave pattern that is one sample short of a full window
	// must still report inactive.
	for i := 0; i < DefaultWindowSize-1; i++ {
		if i%2 == 0 {
			d.Observe(100)
		} else {
			d.Observe(140)
		}
		if d.Active() {
			t.Fatalf("Active() = true with %d samples, want false until window full", i+1)
		}
	}
}

func TestDetector_AlternatingWaveIsActive(t *testing.T) {
	d := NewDetector(DefaultWindowSize, DefaultMinReversals)

	// 20 samples alternating 100,140,100,140,...
	for i := 0; i < DefaultWindowSize; i++ {
		if i%2 == 0 {
			d.Observe(100)
		} else {
			d.Observe(140)
		}
	}

	if got := Reversals(d.Window().Samples()); got < DefaultMinReversals {
		t.Fatalf("Reversals = %d, want >= %d", got, DefaultMinReversals)
	}
	if !d.Active() {
		t.Error("alternating sample window should be detected as a wave")
	}
}

func TestDetector_MonotonicRampIsInactive(t *testing.T) {
	d := NewDetector(DefaultWindowSize, DefaultMinReversals)

	// 20 samples strictly increasing by 5 each step
	x := 100.0
	for i := 0; i < DefaultWindowSize; i++ {
		d.Observe(x)
		x += 5
	}

	if !d.Window().Full() {
		t.Fatal("window should be full")
	}
	if d.Active() {
		t.Error("monotonic motion should not be detected as a wave")
	}
}

func TestDetector_SlowDriftAfterWave(t *testing.T) {
	d := NewDetector(10, 3)

	// Wave fills the window and activates the detector.
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			d.Observe(100)
		} else {
			d.Observe(140)
		}
	}
	if !d.Active() {
		t.Fatal("expected wave to be active")
	}

	// A monotonic drift flushes the oscillation out of the window and the
	// detector drops back to inactive.
	x := 150.0
	for i := 0; i < 10; i++ {
		d.Observe(x)
		x += 5
	}
	if d.Active() {
		t.Error("detector should deactivate once the oscillation leaves the window")
	}
}

func TestDetector_ActiveIsIdempotent(t *testing.T) {
	d := NewDetector(6, 3)
	for _, x := range []float64{100, 140, 100, 140, 100, 140} {
		d.Observe(x)
	}

	first := d.Active()
	second := d.Active()
	if first != second {
		t.Errorf("Active() changed between calls without new samples: %v then %v", first, second)
	}
	if d.Window().Len() != 6 {
		t.Errorf("Active() must not mutate the window, Len() = %d", d.Window().Len())
	}
}
