package spookyq

import "fmt"

// OpKind identifies an operation variant.
type OpKind int

const (
	OpHadamard OpKind = iota
	OpPauliX
	OpPauliZ
	OpRotateY
	OpCNOT
	OpBarrier
	OpMeasure
	OpConditional
)

func (k OpKind) String() string {
	switch k {
	case OpHadamard:
		return "H"
	case OpPauliX:
		return "X"
	case OpPauliZ:
		return "Z"
	case OpRotateY:
		return "RY"
	case OpCNOT:
		return "CX"
	case OpBarrier:
		return "BARRIER"
	case OpMeasure:
		return "MEASURE"
	case OpConditional:
		return "IF"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one operation in a circuit's timeline. Fields not used by a given
// kind hold their zero value (-1 for the index fields).
type Op struct {
	Kind    OpKind
	Target  int
	Control int     // CNOT control qubit, -1 otherwise
	Theta   float64 // OpRotateY rotation angle
	Cbit    int     // OpMeasure destination / OpConditional guard, -1 otherwise
	Want    int     // value the guard bit must hold for the body to run
	Inner   *Op     // OpConditional body (a single-qubit unitary)
	Step    int     // timeline position, used by the diagram renderer
}

// isUnitary reports whether the op evolves the state through a gate kernel.
func (op *Op) isUnitary() bool {
	switch op.Kind {
	case OpHadamard, OpPauliX, OpPauliZ, OpRotateY, OpCNOT:
		return true
	}
	return false
}

// Circuit is an ordered operation list over a fixed-size quantum register
// and classical bit store. It is pure data: building never touches an
// amplitude vector, and executors borrow it read-only, so one circuit can
// back any number of concurrent trials.
type Circuit struct {
	NumQubits int
	NumCbits  int
	Ops       []Op

	steps int
}

// New creates an empty circuit over numQubits qubits and numCbits classical
// bits. Qubit counts above DefaultMaxQubits fail fast with
// StateTooLargeError, before any executor allocates 2^n amplitudes.
func New(numQubits, numCbits int) (*Circuit, error) {
	if numQubits < 1 {
		return nil, fmt.Errorf("spookyq: circuit needs at least one qubit, got %d", numQubits)
	}
	if numQubits > DefaultMaxQubits {
		return nil, &StateTooLargeError{NumQubits: numQubits, MaxQubits: DefaultMaxQubits}
	}
	if numCbits < 0 {
		return nil, fmt.Errorf("spookyq: negative classical bit count %d", numCbits)
	}
	return &Circuit{NumQubits: numQubits, NumCbits: numCbits}, nil
}

// Steps returns the number of timeline positions appended so far.
func (c *Circuit) Steps() int { return c.steps }

func (c *Circuit) checkQubit(q int) error {
	if q < 0 || q >= c.NumQubits {
		return &InvalidQubitIndexError{Index: q, NumQubits: c.NumQubits}
	}
	return nil
}

func (c *Circuit) checkCbit(b int) error {
	if b < 0 || b >= c.NumCbits {
		return &InvalidClassicalBitIndexError{Index: b, NumCbits: c.NumCbits}
	}
	return nil
}

// append stamps the op with the next step and adds it to the timeline.
// All validation happens before this point, so a rejected operation never
// mutates the circuit.
func (c *Circuit) append(op Op) {
	op.Step = c.steps
	c.steps++
	c.Ops = append(c.Ops, op)
}

func (c *Circuit) addSingle(kind OpKind, q int, theta float64) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}
	c.append(Op{Kind: kind, Target: q, Control: -1, Theta: theta, Cbit: -1})
	return nil
}

// H appends a Hadamard gate on qubit q.
func (c *Circuit) H(q int) error { return c.addSingle(OpHadamard, q, 0) }

// X appends a Pauli-X (NOT) gate on qubit q.
func (c *Circuit) X(q int) error { return c.addSingle(OpPauliX, q, 0) }

// Z appends a Pauli-Z gate on qubit q.
func (c *Circuit) Z(q int) error { return c.addSingle(OpPauliZ, q, 0) }

// RY appends a rotation of theta radians around the Y axis on qubit q.
func (c *Circuit) RY(theta float64, q int) error { return c.addSingle(OpRotateY, q, theta) }

// CX appends a controlled-NOT gate with the given control and target qubits.
func (c *Circuit) CX(control, target int) error {
	if err := c.checkQubit(control); err != nil {
		return err
	}
	if err := c.checkQubit(target); err != nil {
		return err
	}
	if control == target {
		return ErrControlEqualsTarget
	}
	c.append(Op{Kind: OpCNOT, Target: target, Control: control, Cbit: -1})
	return nil
}

// Barrier appends a scheduling fence across all qubits. Barriers never
// change the state; they only pin the diagram layout.
func (c *Circuit) Barrier() {
	c.append(Op{Kind: OpBarrier, Target: -1, Control: -1, Cbit: -1})
}

// Measure appends a measurement of qubit q into classical bit cbit.
func (c *Circuit) Measure(q, cbit int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}
	if err := c.checkCbit(cbit); err != nil {
		return err
	}
	c.append(Op{Kind: OpMeasure, Target: q, Control: -1, Cbit: cbit})
	return nil
}

// conditional appends a unitary guarded on a classical bit holding want.
// The guard is evaluated per trial against that trial's bit store; reading
// a bit no measurement has written yet fails the trial with
// UnboundClassicalBitError.
func (c *Circuit) conditional(cbit, want int, inner Op) error {
	if err := c.checkCbit(cbit); err != nil {
		return err
	}
	if want != 0 && want != 1 {
		return fmt.Errorf("spookyq: conditional wants bit value 0 or 1, got %d", want)
	}
	if !inner.isUnitary() || inner.Kind == OpCNOT {
		return fmt.Errorf("spookyq: conditional body must be a single-qubit unitary, got %s", inner.Kind)
	}
	if err := c.checkQubit(inner.Target); err != nil {
		return err
	}
	body := inner
	body.Control = -1
	body.Cbit = -1
	c.append(Op{Kind: OpConditional, Target: body.Target, Control: -1, Cbit: cbit, Want: want, Inner: &body})
	return nil
}

// ConditionalX appends a Pauli-X on target, applied only when classical bit
// cbit was measured as want.
func (c *Circuit) ConditionalX(cbit, want, target int) error {
	return c.conditional(cbit, want, Op{Kind: OpPauliX, Target: target})
}

// ConditionalZ appends a Pauli-Z on target, applied only when classical bit
// cbit was measured as want.
func (c *Circuit) ConditionalZ(cbit, want, target int) error {
	return c.conditional(cbit, want, Op{Kind: OpPauliZ, Target: target})
}

// ConditionalH appends a Hadamard on target, applied only when classical bit
// cbit was measured as want.
func (c *Circuit) ConditionalH(cbit, want, target int) error {
	return c.conditional(cbit, want, Op{Kind: OpHadamard, Target: target})
}

// ConditionalRY appends a Y rotation on target, applied only when classical
// bit cbit was measured as want.
func (c *Circuit) ConditionalRY(cbit, want int, theta float64, target int) error {
	return c.conditional(cbit, want, Op{Kind: OpRotateY, Target: target, Theta: theta})
}
