package spookyq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCircuitValidation(t *testing.T) {
	c, err := New(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumQubits)
	assert.Equal(t, 2, c.NumCbits)
	assert.Empty(t, c.Ops)

	_, err = New(0, 0)
	assert.Error(t, err)

	_, err = New(1, -1)
	assert.Error(t, err)
}

func TestNewCircuitRejectsOversizedRegister(t *testing.T) {
	_, err := New(DefaultMaxQubits+1, 0)

	var tooLarge *StateTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, DefaultMaxQubits+1, tooLarge.NumQubits)
	assert.Equal(t, DefaultMaxQubits, tooLarge.MaxQubits)
}

func TestInvalidQubitIndexLeavesCircuitUntouched(t *testing.T) {
	c, err := New(2, 1)
	require.NoError(t, err)
	require.NoError(t, c.H(0))

	before := len(c.Ops)
	beforeSteps := c.Steps()

	var invalid *InvalidQubitIndexError
	for name, err := range map[string]error{
		"h":       c.H(5),
		"x":       c.X(-1),
		"z":       c.Z(2),
		"ry":      c.RY(math.Pi, 7),
		"cx ctl":  c.CX(5, 0),
		"cx tgt":  c.CX(0, 5),
		"measure": c.Measure(3, 0),
	} {
		require.ErrorAs(t, err, &invalid, name)
		assert.Equal(t, 2, invalid.NumQubits, name)
	}

	assert.Equal(t, before, len(c.Ops))
	assert.Equal(t, beforeSteps, c.Steps())
}

func TestInvalidClassicalBitIndex(t *testing.T) {
	c, err := New(2, 1)
	require.NoError(t, err)

	var invalid *InvalidClassicalBitIndexError
	require.ErrorAs(t, c.Measure(0, 1), &invalid)
	assert.Equal(t, 1, invalid.Index)
	assert.Equal(t, 1, invalid.NumCbits)

	require.ErrorAs(t, c.ConditionalX(3, 1, 0), &invalid)
	assert.Empty(t, c.Ops)
}

func TestCXRejectsEqualControlAndTarget(t *testing.T) {
	c, err := New(2, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, c.CX(1, 1), ErrControlEqualsTarget)
	assert.Empty(t, c.Ops)
}

func TestConditionalGateValidation(t *testing.T) {
	c, err := New(2, 2)
	require.NoError(t, err)

	assert.Error(t, c.ConditionalX(0, 2, 1), "guard value must be 0 or 1")
	assert.Error(t, c.ConditionalZ(0, -1, 1))
	assert.Empty(t, c.Ops)

	require.NoError(t, c.ConditionalX(0, 1, 1))
	require.NoError(t, c.ConditionalRY(1, 0, math.Pi/4, 0))
	require.Len(t, c.Ops, 2)

	op := c.Ops[0]
	assert.Equal(t, OpConditional, op.Kind)
	assert.Equal(t, 0, op.Cbit)
	assert.Equal(t, 1, op.Want)
	require.NotNil(t, op.Inner)
	assert.Equal(t, OpPauliX, op.Inner.Kind)
	assert.Equal(t, 1, op.Inner.Target)
}

func TestOpsRecordMonotonicSteps(t *testing.T) {
	c, err := New(2, 2)
	require.NoError(t, err)

	require.NoError(t, c.H(0))
	require.NoError(t, c.CX(0, 1))
	c.Barrier()
	require.NoError(t, c.Measure(0, 0))
	require.NoError(t, c.ConditionalZ(0, 1, 1))

	require.Len(t, c.Ops, 5)
	for i, op := range c.Ops {
		assert.Equal(t, i, op.Step)
	}
	assert.Equal(t, 5, c.Steps())
}

func TestOpKindStrings(t *testing.T) {
	for kind, want := range map[OpKind]string{
		OpHadamard:    "H",
		OpPauliX:      "X",
		OpPauliZ:      "Z",
		OpRotateY:     "RY",
		OpCNOT:        "CX",
		OpBarrier:     "BARRIER",
		OpMeasure:     "MEASURE",
		OpConditional: "IF",
	} {
		assert.Equal(t, want, kind.String())
	}
}

func TestBellPairCircuitShape(t *testing.T) {
	c := BellPairCircuit()
	assert.Equal(t, 2, c.NumQubits)
	assert.Equal(t, 2, c.NumCbits)
	require.Len(t, c.Ops, 5)
	assert.Equal(t, OpHadamard, c.Ops[0].Kind)
	assert.Equal(t, OpCNOT, c.Ops[1].Kind)
	assert.Equal(t, OpBarrier, c.Ops[2].Kind)
	assert.Equal(t, OpMeasure, c.Ops[3].Kind)
	assert.Equal(t, OpMeasure, c.Ops[4].Kind)
}

func TestTeleportationCircuitShape(t *testing.T) {
	c := TeleportationCircuit(math.Pi / 4)
	assert.Equal(t, 3, c.NumQubits)
	assert.Equal(t, 2, c.NumCbits)

	conditionals := 0
	for _, op := range c.Ops {
		if op.Kind == OpConditional {
			conditionals++
		}
	}
	assert.Equal(t, 2, conditionals)

	// verify variant carries no measurements at all
	verify := TeleportationVerifyCircuit(math.Pi / 4)
	for _, op := range verify.Ops {
		assert.NotEqual(t, OpMeasure, op.Kind)
		assert.NotEqual(t, OpConditional, op.Kind)
	}
}
