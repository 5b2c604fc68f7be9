package renderer

import (
	"strings"
	"testing"

	"qpesim/bitutil"
	"qpesim/gate"
	"qpesim/measurement"
	"qpesim/qcircuit"
)

func TestRenderCircuitIncludesGateNames(t *testing.T) {
	c := qcircuit.New(2, 1)
	_ = c.AddOneTargetGate(gate.H, 0)
	_ = c.AddOneControlOneTargetGate(gate.CX, 0, 1)
	_ = c.AddMeasurement(1, 0)

	out := RenderCircuit(c)
	if !strings.Contains(out, "H") {
		t.Fatalf("expected rendered circuit to mention H, got:\n%s", out)
	}
	if !strings.Contains(out, "q0") || !strings.Contains(out, "q1") {
		t.Fatalf("expected rendered circuit to label both qubit wires, got:\n%s", out)
	}
}

func TestRenderCircuitShowsClassicalIfMarker(t *testing.T) {
	c := qcircuit.New(1, 1)
	_ = c.AddMeasurement(0, 0)
	body := []qcircuit.Element{{Kind: qcircuit.ElementGate, Gate: gate.PackOneTarget(gate.X, 0)}}
	c.AddClassicalIf(qcircuit.Predicate{BitIndices: []int{0}, ExpectedValue: 1}, body)

	out := RenderCircuit(c)
	if !strings.Contains(out, "IF") {
		t.Fatalf("expected rendered circuit to mark the classical-if body, got:\n%s", out)
	}
}

func TestRenderHistogramScalesBarsToMaxCount(t *testing.T) {
	counts := map[string]uint64{"00": 10, "11": 5}
	out := RenderHistogram(counts, 20)
	if !strings.Contains(out, "00") || !strings.Contains(out, "11") {
		t.Fatalf("expected both bitstrings to appear, got:\n%s", out)
	}
}

func TestRenderHistogramHandlesNoShots(t *testing.T) {
	out := RenderHistogram(map[string]uint64{}, 20)
	if !strings.Contains(out, "no shots") {
		t.Fatalf("expected a no-shots message, got:\n%s", out)
	}
}

func TestRenderCountsRendersViaBitstring(t *testing.T) {
	counts := measurement.Counts{0: 3, 1: 7}
	out := RenderCounts(counts, 1, bitutil.Little, 20)
	if !strings.Contains(out, "0") || !strings.Contains(out, "1") {
		t.Fatalf("expected bitstring keys in rendered output, got:\n%s", out)
	}
}
