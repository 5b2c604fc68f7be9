package circuitio

import (
	"math"
	"strings"
	"testing"

	"qpesim/gate"
)

func TestParseAngleAcceptsPiExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5707963", 1.5707963, true},
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"2*pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"-pi/2", -math.Pi / 2, true},
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseAngle(tt.input)
		if ok != tt.ok {
			t.Errorf("parseAngle(%q): ok=%v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("parseAngle(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestFormatAngleUsesPiNotationForKnownFractions(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{-math.Pi, "-pi"},
		{1.5, "1.5"},
	}

	for _, tt := range tests {
		if got := formatAngle(tt.input); got != tt.want {
			t.Errorf("formatAngle(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTangeloRecordRoundTripsPiAngle(t *testing.T) {
	record := "RX 0 pi/2"
	circuit, err := ReadTangeloCircuit(1, strings.NewReader(record+"\n"), 0)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", record, err)
	}
	_, got, err := gate.UnpackOneTargetOneAngle(circuit.Elements[0].Gate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-math.Pi/2) > 1e-10 {
		t.Errorf("parsed angle = %g, want pi/2", got)
	}

	var out strings.Builder
	if err := WriteTangeloCircuit(&out, circuit); err != nil {
		t.Fatalf("unexpected error writing: %v", err)
	}
	if strings.TrimSpace(out.String()) != record {
		t.Errorf("written record = %q, want %q", strings.TrimSpace(out.String()), record)
	}
}
