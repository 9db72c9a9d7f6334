package stage

import (
	"errors"
	"math"
	"testing"
)

func TestEnvelopeAttackTiming(t *testing.T) {
	env := NewEnvelope()

	buf := constBlock(1024, 1)
	env.Process(buf)

	full := -1
	for i, v := range buf {
		if v >= 1-1e-9 {
			full = i
			break
		}
	}
	if full < 0 {
		t.Fatal("attack never reached full scale")
	}

	// 10 ms at 44.1 kHz is 441 samples.
	samples := full + 1
	if samples < 440 || samples > 442 {
		t.Fatalf("attack reached full scale after %d samples, want 441 ±1", samples)
	}
}

func TestEnvelopeDecayReachesSustain(t *testing.T) {
	env := NewEnvelope()

	buf := constBlock(8192, 1)
	env.Process(buf)

	peak := -1
	for i, v := range buf {
		if v >= 1-1e-9 {
			peak = i
			break
		}
	}
	if peak < 0 {
		t.Fatal("attack never reached full scale")
	}

	settled := -1
	for i := peak + 1; i < len(buf); i++ {
		if buf[i] <= 0.7+1e-9 {
			settled = i
			break
		}
	}
	if settled < 0 {
		t.Fatal("decay never reached the sustain level")
	}

	// 100 ms of decay at 44.1 kHz is 4410 samples.
	d := settled - peak
	if d < 4408 || d > 4412 {
		t.Fatalf("decay took %d samples, want 4410 ±2", d)
	}

	if buf[7000] != 0.7 {
		t.Fatalf("sustain output = %v, want exactly 0.7", buf[7000])
	}
}

func TestEnvelopeReleaseTiming(t *testing.T) {
	env := NewEnvelope()

	drive := constBlock(6000, 1)
	env.Process(drive)

	// Below the gate threshold but nonzero, so the falling level stays
	// observable in the output.
	tail := constBlock(16384, 0.0005)
	env.Process(tail)

	zero := -1
	for i, v := range tail {
		if v == 0 {
			zero = i
			break
		}
	}
	if zero < 0 {
		t.Fatal("release never reached zero")
	}

	// 0.7 of full-scale travel at 500 ms per unit is 15435 samples.
	samples := zero + 1
	if samples < 15433 || samples > 15437 {
		t.Fatalf("release reached zero after %d samples, want 15435 ±2", samples)
	}
}

func TestEnvelopeGateThresholdIsStrict(t *testing.T) {
	env := NewEnvelope()

	at := constBlock(8, 0.001)
	env.Process(at)
	for i, v := range at {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0 (0.001 does not open the gate)", i, v)
		}
	}

	above := constBlock(8, 0.002)
	env.Process(above)
	if above[0] == 0 {
		t.Fatal("gate did not open just above the threshold")
	}
}

func TestEnvelopeGateOpensOnNegativeInput(t *testing.T) {
	env := NewEnvelope()

	buf := constBlock(8, -1)
	env.Process(buf)

	if buf[0] >= 0 {
		t.Fatalf("buf[0] = %v, want negative (magnitude opens the gate)", buf[0])
	}
}

func TestEnvelopeRetriggerWaitsForIdle(t *testing.T) {
	env := NewEnvelope()
	if err := env.SetParameter("release", FloatValue(0.01)); err != nil {
		t.Fatalf("SetParameter(release): %v", err)
	}

	head := constBlock(1000, 1)
	env.Process(head)

	// One silent sample flips the state machine into release.
	env.Process([]float64{0})

	tail := constBlock(1000, 1)
	env.Process(tail)

	zero := -1
	for i, v := range tail {
		if v == 0 {
			zero = i
			break
		}
	}
	if zero <= 0 {
		t.Fatalf("release did not run to zero before retriggering (zero at %d)", zero)
	}
	for i := 1; i < zero; i++ {
		if tail[i] >= tail[i-1] {
			t.Fatalf("sample %d = %v, want a falling release despite the open gate", i, tail[i])
		}
	}
	if tail[zero+1] <= 0 || tail[zero+1] >= tail[0] {
		t.Fatalf("sample after idle = %v, want a fresh attack from zero", tail[zero+1])
	}
}

func TestEnvelopeSetParameterErrors(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		value   Value
		wantErr error
	}{
		{"attack below range", "attack", FloatValue(0.0005), ErrOutOfRange},
		{"attack above range", "attack", FloatValue(3), ErrOutOfRange},
		{"decay above range", "decay", FloatValue(2.5), ErrOutOfRange},
		{"sustain below range", "sustain", FloatValue(-0.1), ErrOutOfRange},
		{"sustain above range", "sustain", FloatValue(1.5), ErrOutOfRange},
		{"release above range", "release", FloatValue(6), ErrOutOfRange},
		{"sustain wants float", "sustain", StringValue("most"), ErrTypeMismatch},
		{"unknown name", "hold", FloatValue(0.1), ErrUnknownParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvelope()
			err := env.SetParameter(tt.param, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetParameter(%s) error = %v, want %v", tt.param, err, tt.wantErr)
			}
		})
	}
}

func TestEnvelopeResetPreservesParameters(t *testing.T) {
	env := NewEnvelope()
	if err := env.SetParameter("sustain", FloatValue(0.4)); err != nil {
		t.Fatalf("SetParameter(sustain): %v", err)
	}

	buf := constBlock(6000, 1)
	env.Process(buf)

	env.Reset()

	got, err := env.Parameter("sustain")
	if err != nil {
		t.Fatalf("Parameter(sustain): %v", err)
	}
	if got.Float() != 0.4 {
		t.Fatalf("sustain after reset = %v, want 0.4", got.Float())
	}

	fresh := constBlock(4, 1)
	env.Process(fresh)
	want := 1.0 / (0.01 * 44100.0)
	if math.Abs(fresh[0]-want) > 1e-15 {
		t.Fatalf("first sample after reset = %v, want %v (attack restarts)", fresh[0], want)
	}
}

func TestEnvelopeSampleRateScalesTiming(t *testing.T) {
	env := NewEnvelope()
	if err := env.SetSampleRate(22050); err != nil {
		t.Fatalf("SetSampleRate(22050): %v", err)
	}

	buf := constBlock(512, 1)
	env.Process(buf)

	full := -1
	for i, v := range buf {
		if v >= 1-1e-9 {
			full = i
			break
		}
	}
	if full < 0 {
		t.Fatal("attack never reached full scale")
	}

	// 10 ms at 22.05 kHz is about 221 samples.
	samples := full + 1
	if samples < 219 || samples > 222 {
		t.Fatalf("attack reached full scale after %d samples, want about 221", samples)
	}
}

func TestEnvelopeParameterNames(t *testing.T) {
	want := []string{"attack", "decay", "sustain", "release"}
	got := NewEnvelope().ParameterNames()

	if len(got) != len(want) {
		t.Fatalf("ParameterNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParameterNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnvelopeDescribe(t *testing.T) {
	got := NewEnvelope().Describe()
	want := "Envelope: A=0.01s D=0.1s S=0.7 R=0.5s"
	if got != want {
		t.Fatalf("Describe() = %q, want %q", got, want)
	}
}
