package spookyq

import (
	"math"
	"math/cmplx"
	"math/rand"
)

type Complex = complex128

// collapseEpsilon is the probability below which a measurement outcome is
// treated as impossible and collapse refuses to divide by it.
const collapseEpsilon = 1e-12

// StateVector is the dense amplitude representation of an n-qubit register.
// Basis state i assigns bit q of i to qubit q. The sum of squared magnitudes
// stays 1 across every unitary application.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns the |0...0> state on numQubits qubits.
// Callers are expected to have validated the qubit count against the
// simulator ceiling before allocating 2^n amplitudes here.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]Complex, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// apply dispatches a single unitary operation to its kernel.
// Barrier, measure and conditional ops never reach here; the executor
// handles those.
func (s *StateVector) apply(op *Op) {
	switch op.Kind {
	case OpHadamard:
		s.applyH(op.Target)
	case OpPauliX:
		s.applyX(op.Target)
	case OpPauliZ:
		s.applyZ(op.Target)
	case OpRotateY:
		s.applyRY(op.Target, op.Theta)
	case OpCNOT:
		s.applyCX(op.Control, op.Target)
	}
}

// Single-qubit kernels walk every basis-state pair (i, i|bit) that differs
// only in the target bit and apply the 2x2 matrix to that amplitude pair.
// O(2^n) per gate; the full 2^n x 2^n matrix is never materialized.

func (s *StateVector) applyH(q int) {
	f := complex(1.0/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = f * (a + b)
			s.Amplitudes[j] = f * (a - b)
		}
	}
}

func (s *StateVector) applyX(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] = -s.Amplitudes[i]
		}
	}
}

// applyRY applies [[cos(t/2), -sin(t/2)], [sin(t/2), cos(t/2)]].
// On |0> this puts cos(t/2) on |0> and sin(t/2) on |1>.
func (s *StateVector) applyRY(q int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a - sn*b
			s.Amplitudes[j] = sn*a + c*b
		}
	}
}

// applyCX swaps the target-bit pair for every basis state whose control bit
// is set; control-clear states are untouched.
func (s *StateVector) applyCX(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Probability returns the squared magnitude of basis state i.
func (s *StateVector) Probability(i int) float64 {
	return real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
}

// TotalProbability sums squared magnitudes over all basis states. Stays
// within floating-point tolerance of 1 after every unitary step.
func (s *StateVector) TotalProbability() float64 {
	total := 0.0
	for i := range s.Amplitudes {
		total += s.Probability(i)
	}
	return total
}

// QubitProbability returns the marginal distribution of a single qubit.
func (s *StateVector) QubitProbability(q int) (p0, p1 float64) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			p1 += s.Probability(i)
		} else {
			p0 += s.Probability(i)
		}
	}
	return p0, p1
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns marginal distributions for all qubits in one
// pass over the amplitude vector.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i := range s.Amplitudes {
		p := s.Probability(i)
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// measure samples an outcome for qubit q from its marginal distribution,
// collapses the state accordingly and returns the outcome. The caller owns
// the random source; this is the only place randomness enters a trial.
func (s *StateVector) measure(q int, r *rand.Rand) (int, error) {
	_, p1 := s.QubitProbability(q)
	outcome := 0
	if r.Float64() < p1 {
		outcome = 1
	}
	if err := s.collapse(q, outcome); err != nil {
		return 0, err
	}
	return outcome, nil
}

// collapse zeroes every amplitude whose bit q disagrees with outcome and
// renormalizes the survivors by 1/sqrt(p_outcome).
func (s *StateVector) collapse(q, outcome int) error {
	bit := 1 << q
	want := 0
	if outcome == 1 {
		want = bit
	}

	p := 0.0
	for i := range s.Amplitudes {
		if i&bit == want {
			p += s.Probability(i)
		}
	}
	if p < collapseEpsilon {
		return &DegenerateCollapseError{Qubit: q, Outcome: outcome, Probability: p}
	}

	norm := complex(1/math.Sqrt(p), 0)
	for i := range s.Amplitudes {
		if i&bit == want {
			s.Amplitudes[i] *= norm
		} else {
			s.Amplitudes[i] = 0
		}
	}
	return nil
}
