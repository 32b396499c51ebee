package spookyq

import (
	"errors"
	"fmt"
)

// ErrControlEqualsTarget is returned when a controlled gate names the same
// qubit as both control and target.
var ErrControlEqualsTarget = errors.New("spookyq: control and target must be distinct qubits")

// InvalidQubitIndexError reports a qubit index outside [0, NumQubits).
// Raised at circuit-build time; the offending operation is rejected and the
// circuit is left unchanged.
type InvalidQubitIndexError struct {
	Index     int
	NumQubits int
}

func (e *InvalidQubitIndexError) Error() string {
	return fmt.Sprintf("spookyq: qubit index %d out of range [0, %d)", e.Index, e.NumQubits)
}

// InvalidClassicalBitIndexError reports a classical bit index outside
// [0, NumCbits). Raised at circuit-build time.
type InvalidClassicalBitIndexError struct {
	Index    int
	NumCbits int
}

func (e *InvalidClassicalBitIndexError) Error() string {
	return fmt.Sprintf("spookyq: classical bit index %d out of range [0, %d)", e.Index, e.NumCbits)
}

// UnboundClassicalBitError reports a conditional operation that referenced a
// classical bit before any measurement wrote to it in the same trial.
type UnboundClassicalBitError struct {
	Cbit int
}

func (e *UnboundClassicalBitError) Error() string {
	return fmt.Sprintf("spookyq: classical bit %d read before measurement", e.Cbit)
}

// DegenerateCollapseError reports a measurement collapse onto an outcome with
// zero probability. A correctly evolved, normalized state can never trigger
// this; it signals an invariant violation upstream.
type DegenerateCollapseError struct {
	Qubit       int
	Outcome     int
	Probability float64
}

func (e *DegenerateCollapseError) Error() string {
	return fmt.Sprintf("spookyq: cannot collapse qubit %d to outcome %d with probability %g",
		e.Qubit, e.Outcome, e.Probability)
}

// StateTooLargeError reports a requested qubit count above the configured
// ceiling. Raised before the amplitude vector is allocated.
type StateTooLargeError struct {
	NumQubits int
	MaxQubits int
}

func (e *StateTooLargeError) Error() string {
	return fmt.Sprintf("spookyq: %d qubits exceeds the %d-qubit ceiling", e.NumQubits, e.MaxQubits)
}
