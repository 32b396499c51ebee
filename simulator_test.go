package spookyq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestStatevectorBellPair(t *testing.T) {
	state, err := RunStatevector(BellPairCircuit())
	require.NoError(t, err)

	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(state.Amplitudes[0]), tol)
	assert.InDelta(t, 0, real(state.Amplitudes[1]), tol)
	assert.InDelta(t, 0, real(state.Amplitudes[2]), tol)
	assert.InDelta(t, inv, real(state.Amplitudes[3]), tol)
}

func TestStatevectorSkipsMeasurementCollapse(t *testing.T) {
	c, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, c.H(0))
	require.NoError(t, c.Measure(0, 0))

	state, err := RunStatevector(c)
	require.NoError(t, err)

	// superposition survives: no outcome was forced
	assert.InDelta(t, 0.5, state.Probability(0), tol)
	assert.InDelta(t, 0.5, state.Probability(1), tol)
}

func TestBarrierNeverChangesState(t *testing.T) {
	plain, err := New(2, 0)
	require.NoError(t, err)
	require.NoError(t, plain.H(0))
	require.NoError(t, plain.CX(0, 1))

	fenced, err := New(2, 0)
	require.NoError(t, err)
	fenced.Barrier()
	require.NoError(t, fenced.H(0))
	fenced.Barrier()
	require.NoError(t, fenced.CX(0, 1))
	fenced.Barrier()

	a, err := RunStatevector(plain)
	require.NoError(t, err)
	b, err := RunStatevector(fenced)
	require.NoError(t, err)

	for i := range a.Amplitudes {
		assert.InDelta(t, real(a.Amplitudes[i]), real(b.Amplitudes[i]), tol)
		assert.InDelta(t, imag(a.Amplitudes[i]), imag(b.Amplitudes[i]), tol)
	}
}

func TestConditionalAppliesOnlyOnMatch(t *testing.T) {
	// q0 is |1> with certainty, so the measurement writes 1 and the
	// guarded X on q1 must fire.
	c, err := New(2, 1)
	require.NoError(t, err)
	require.NoError(t, c.X(0))
	require.NoError(t, c.Measure(0, 0))
	require.NoError(t, c.ConditionalX(0, 1, 1))

	sim := NewSimulator()
	sim.Seed = 42
	res, err := sim.RunShot(c)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.Bits)
	assert.InDelta(t, 1, res.State.Probability(3), tol)
}

func TestConditionalSkippedOnMismatch(t *testing.T) {
	// q0 measures 0, the guard wants 1: the body must not run and the
	// state must be exactly |00>.
	c, err := New(2, 1)
	require.NoError(t, err)
	require.NoError(t, c.Measure(0, 0))
	require.NoError(t, c.ConditionalX(0, 1, 1))

	sim := NewSimulator()
	sim.Seed = 42
	res, err := sim.RunShot(c)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Bits)
	assert.InDelta(t, 1, res.State.Probability(0), tol)
}

func TestConditionalBeforeMeasurementFailsTrial(t *testing.T) {
	c, err := New(2, 1)
	require.NoError(t, err)
	require.NoError(t, c.ConditionalX(0, 1, 1))

	sim := NewSimulator()
	sim.Seed = 1

	var unbound *UnboundClassicalBitError
	_, err = sim.RunShot(c)
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, 0, unbound.Cbit)

	_, err = sim.RunSampling(c, 16)
	assert.ErrorAs(t, err, &unbound)
}

func TestSimulatorEnforcesQubitCeiling(t *testing.T) {
	c, err := New(5, 0)
	require.NoError(t, err)

	sim := NewSimulator()
	sim.MaxQubits = 4

	var tooLarge *StateTooLargeError
	_, err = sim.RunStatevector(c)
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, 5, tooLarge.NumQubits)
	assert.Equal(t, 4, tooLarge.MaxQubits)

	_, err = sim.RunSampling(c, 8)
	assert.ErrorAs(t, err, &tooLarge)
}

func TestSamplingRejectsNonPositiveShots(t *testing.T) {
	_, err := RunSampling(BellPairCircuit(), 0, 1)
	assert.Error(t, err)
}

func TestBellSamplingFrequencies(t *testing.T) {
	const shots = 10000
	counts, err := RunSampling(BellPairCircuit(), shots, 12345)
	require.NoError(t, err)

	assert.Equal(t, shots, counts.Total())
	assert.Zero(t, counts["01"])
	assert.Zero(t, counts["10"])

	// chi-square against the ideal 50/50 split; 10.83 is the 0.1%
	// critical value at one degree of freedom
	obs := []float64{float64(counts["00"]), float64(counts["11"])}
	exp := []float64{shots / 2, shots / 2}
	assert.Less(t, stat.ChiSquare(obs, exp), 10.83)
}

func TestSamplingMatchesStatevectorDistribution(t *testing.T) {
	const shots = 20000

	c, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, c.RY(math.Pi/3, 0))
	require.NoError(t, c.H(1))
	require.NoError(t, c.Measure(0, 0))
	require.NoError(t, c.Measure(1, 1))

	state, err := RunStatevector(c)
	require.NoError(t, err)
	counts, err := RunSampling(c, shots, 99)
	require.NoError(t, err)

	// basis index i maps to the bitstring with classical bit 1 leftmost
	obs := make([]float64, 4)
	exp := make([]float64, 4)
	for i := 0; i < 4; i++ {
		bits := []byte{'0' + byte(i>>1&1), '0' + byte(i&1)}
		obs[i] = float64(counts[string(bits)])
		exp[i] = state.Probability(i) * shots
	}
	// 16.27 is the 0.1% critical value at three degrees of freedom
	assert.Less(t, stat.ChiSquare(obs, exp), 16.27)
}

func TestSamplingDeterministicForSeed(t *testing.T) {
	c := TeleportationCircuit(math.Pi / 4)

	first, err := RunSampling(c, 500, 7)
	require.NoError(t, err)
	second, err := RunSampling(c, 500, 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := RunSampling(c, 500, 8)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestSamplingIndependentOfWorkerCount(t *testing.T) {
	c := TeleportationCircuit(1.0)

	serial := NewSimulator()
	serial.Seed = 11
	serial.Workers = 1
	parallel := NewSimulator()
	parallel.Seed = 11
	parallel.Workers = 8

	a, err := serial.RunSampling(c, 1000)
	require.NoError(t, err)
	b, err := parallel.RunSampling(c, 1000)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTeleportationDeliversMessageEveryShot(t *testing.T) {
	for _, theta := range []float64{math.Pi / 4, 1.0, 2.5} {
		wantP1 := math.Pow(math.Sin(theta/2), 2)
		for seed := int64(1); seed <= 25; seed++ {
			sim := NewSimulator()
			sim.Seed = seed
			res, err := sim.RunShot(TeleportationCircuit(theta))
			require.NoError(t, err)

			// q2 must carry the message exactly, whatever the sender measured
			_, p1 := res.State.QubitProbability(2)
			assert.InDelta(t, wantP1, p1, tol, "theta=%g seed=%d", theta, seed)
		}
	}
}

func TestTeleportationVerifyStatevector(t *testing.T) {
	theta := math.Pi / 4
	state, err := RunStatevector(TeleportationVerifyCircuit(theta))
	require.NoError(t, err)

	// with the corrections applied coherently the joint state is
	// (|00>+|01>+|10>+|11>)/2 on the sender qubits times the message on q2
	for i := 0; i < 8; i++ {
		want := 0.5 * math.Cos(theta/2)
		if i>>2&1 == 1 {
			want = 0.5 * math.Sin(theta/2)
		}
		assert.InDelta(t, want, real(state.Amplitudes[i]), tol, "basis %d", i)
		assert.InDelta(t, 0, imag(state.Amplitudes[i]), tol, "basis %d", i)
	}

	_, p1 := state.QubitProbability(2)
	assert.InDelta(t, math.Pow(math.Sin(theta/2), 2), p1, tol)
}

func TestShotBitstringOrientation(t *testing.T) {
	res := &ShotResult{Bits: []int{1, 0, -1}}
	// classical bit 2 is leftmost; unmeasured bits render as 0
	assert.Equal(t, "001", res.Bitstring())
}

func TestCountsHelpers(t *testing.T) {
	counts := Counts{"11": 30, "00": 70}
	assert.Equal(t, 100, counts.Total())
	assert.Equal(t, []string{"00", "11"}, counts.Keys())

	probs := counts.Probabilities()
	assert.InDelta(t, 0.7, probs["00"], tol)
	assert.InDelta(t, 0.3, probs["11"], tol)
}
