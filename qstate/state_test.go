package qstate

import (
	"math"
	"testing"

	"qpesim/bitutil"
)

func TestNewZeroStateHasUnitAmplitudeAtIndex0(t *testing.T) {
	s := NewZeroState(3)
	if len(s.Amplitudes) != 8 {
		t.Fatalf("len(Amplitudes) = %d, want 8", len(s.Amplitudes))
	}
	if s.Amplitudes[0] != 1 {
		t.Errorf("Amplitudes[0] = %v, want 1", s.Amplitudes[0])
	}
	for i := 1; i < 8; i++ {
		if s.Amplitudes[i] != 0 {
			t.Errorf("Amplitudes[%d] = %v, want 0", i, s.Amplitudes[i])
		}
	}
}

func TestNewFromBitstringLittleEndian(t *testing.T) {
	s, err := NewFromBitstring("001", bitutil.Little)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// little endian: rightmost char is qubit 0, so "001" -> qubit0=1, index 1
	if s.Amplitudes[1] != 1 {
		t.Errorf("Amplitudes[1] = %v, want 1", s.Amplitudes[1])
	}
}

func TestNewFromBitstringRejectsMalformed(t *testing.T) {
	if _, err := NewFromBitstring("01x", bitutil.Little); err == nil {
		t.Fatal("expected an error for a malformed bitstring")
	}
}

func TestProbabilitiesRawSumsToOne(t *testing.T) {
	s := NewZeroState(2)
	s.Amplitudes[0] = complex(1/math.Sqrt2, 0)
	s.Amplitudes[3] = complex(1/math.Sqrt2, 0)

	probs := s.ProbabilitiesRaw()
	var sum float64
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("sum of probabilities = %v, want 1", sum)
	}
	if math.Abs(probs[0]-0.5) > 1e-9 || math.Abs(probs[3]-0.5) > 1e-9 {
		t.Errorf("probs = %v, want [0.5, 0, 0, 0.5]", probs)
	}
}

func TestProbabilitiesMapKeyedByBitstring(t *testing.T) {
	s := NewZeroState(2)
	s.Amplitudes[0] = 0
	s.Amplitudes[1] = 1

	probs := s.Probabilities(bitutil.Little)
	if math.Abs(probs["01"]-1.0) > 1e-9 {
		t.Errorf("probs[%q] = %v, want 1", "01", probs["01"])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewZeroState(1)
	clone := s.Clone()
	clone.Amplitudes[0] = 0
	clone.Amplitudes[1] = 1

	if s.Amplitudes[0] != 1 {
		t.Fatal("mutating the clone mutated the original")
	}
}

func TestValidateShapeDetectsMismatch(t *testing.T) {
	s := &State{Amplitudes: make([]complex128, 3), NQubits: 2}
	if err := s.ValidateShape(); err == nil {
		t.Fatal("expected an error for a mismatched amplitude slice length")
	}
}

func TestNormOfZeroStateIsOne(t *testing.T) {
	s := NewZeroState(4)
	if math.Abs(s.Norm()-1.0) > 1e-9 {
		t.Errorf("Norm() = %v, want 1", s.Norm())
	}
}
