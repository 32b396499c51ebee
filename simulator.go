package spookyq

import (
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxQubits is the qubit ceiling applied when a Simulator does not
// set its own. 2^24 complex128 amplitudes is 256 MiB; anything above that is
// a resource-exhaustion problem, not a circuit.
const DefaultMaxQubits = 24

// Simulator executes circuits. The zero value is not ready to use; create
// one with NewSimulator and adjust fields before the first run.
//
// A Simulator folds a circuit's operation list over an amplitude vector in
// two distinct modes. Statevector mode runs once, skips measurement collapse
// and conditional bodies, and returns the ideal pre-measurement joint state.
// Sampling mode repeats the fold over many independent trials with genuine
// collapse, each trial owning a fresh amplitude vector and classical bit
// store, and aggregates the resulting bitstrings.
type Simulator struct {
	Seed      int64          // sampling seed; 0 draws one from the clock
	Workers   int            // parallel sampling trials; 0 means GOMAXPROCS
	MaxQubits int            // qubit ceiling; 0 means DefaultMaxQubits
	Log       zerolog.Logger // defaults to a disabled logger
}

// NewSimulator returns a Simulator with default limits and a disabled logger.
func NewSimulator() *Simulator {
	return &Simulator{Log: zerolog.Nop()}
}

func (sim *Simulator) maxQubits() int {
	if sim.MaxQubits > 0 {
		return sim.MaxQubits
	}
	return DefaultMaxQubits
}

// checkSize rejects circuits over the qubit ceiling before any 2^n
// allocation happens.
func (sim *Simulator) checkSize(c *Circuit) error {
	if c.NumQubits > sim.maxQubits() {
		return &StateTooLargeError{NumQubits: c.NumQubits, MaxQubits: sim.maxQubits()}
	}
	return nil
}

func (sim *Simulator) seed() int64 {
	if sim.Seed != 0 {
		return sim.Seed
	}
	return time.Now().UnixNano()
}

// RunStatevector replays the circuit once and returns the final amplitude
// vector. Measurements do not collapse and conditional bodies are skipped,
// so the result is the ideal joint state before any classical readout —
// the reference against which sampling frequencies are verified.
func (sim *Simulator) RunStatevector(c *Circuit) (*StateVector, error) {
	if err := sim.checkSize(c); err != nil {
		return nil, err
	}
	state := NewStateVector(c.NumQubits)
	for i := range c.Ops {
		op := &c.Ops[i]
		if !op.isUnitary() {
			continue
		}
		state.apply(op)
	}
	return state, nil
}

// ShotResult is the outcome of one genuine trial: the collapsed final state
// and the classical bits produced by its measurements.
type ShotResult struct {
	State *StateVector
	Bits  []int // per classical bit; -1 where no measurement wrote
}

// Bitstring renders the classical bits with bit NumCbits-1 leftmost.
// Bits never measured read as 0.
func (r *ShotResult) Bitstring() string {
	buf := make([]byte, len(r.Bits))
	for i, b := range r.Bits {
		if b == 1 {
			buf[len(r.Bits)-1-i] = '1'
		} else {
			buf[len(r.Bits)-1-i] = '0'
		}
	}
	return string(buf)
}

// RunShot executes a single trial with genuine measurement collapse and
// conditional execution, seeded from the Simulator's seed.
func (sim *Simulator) RunShot(c *Circuit) (*ShotResult, error) {
	if err := sim.checkSize(c); err != nil {
		return nil, err
	}
	return runTrial(c, rand.New(rand.NewSource(sim.seed())))
}

// runTrial folds the op list once, start to end, against a fresh amplitude
// vector and classical bit store. Single-threaded and single-pass; the
// random source is the trial's only nondeterminism.
func runTrial(c *Circuit, r *rand.Rand) (*ShotResult, error) {
	state := NewStateVector(c.NumQubits)
	bits := make([]int, c.NumCbits)
	for i := range bits {
		bits[i] = -1
	}

	for i := range c.Ops {
		op := &c.Ops[i]
		switch op.Kind {
		case OpBarrier:
			// scheduling fence only

		case OpMeasure:
			outcome, err := state.measure(op.Target, r)
			if err != nil {
				return nil, err
			}
			bits[op.Cbit] = outcome

		case OpConditional:
			held := bits[op.Cbit]
			if held < 0 {
				return nil, &UnboundClassicalBitError{Cbit: op.Cbit}
			}
			if held == op.Want {
				state.apply(op.Inner)
			}

		default:
			state.apply(op)
		}
	}

	return &ShotResult{State: state, Bits: bits}, nil
}

// Counts maps classical bitstrings to how many trials produced them.
type Counts map[string]int

// Total returns the number of trials aggregated.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Probabilities returns the empirical frequency of each bitstring.
func (c Counts) Probabilities() map[string]float64 {
	total := float64(c.Total())
	probs := make(map[string]float64, len(c))
	for bits, n := range c {
		probs[bits] = float64(n) / total
	}
	return probs
}

// Keys returns the observed bitstrings in sorted order.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for bits := range c {
		keys = append(keys, bits)
	}
	sort.Strings(keys)
	return keys
}

// RunSampling executes shots independent trials and aggregates their
// bitstrings. Trials share nothing but the read-only circuit, so they fan
// out across Workers goroutines; each trial draws its own seed from a master
// sequence, which keeps results identical for a given Seed regardless of
// worker count.
func (sim *Simulator) RunSampling(c *Circuit, shots int) (Counts, error) {
	if err := sim.checkSize(c); err != nil {
		return nil, err
	}
	if shots < 1 {
		return nil, fmt.Errorf("spookyq: shots must be positive, got %d", shots)
	}

	seed := sim.seed()
	master := rand.New(rand.NewSource(seed))
	trialSeeds := make([]int64, shots)
	for i := range trialSeeds {
		trialSeeds[i] = master.Int63()
	}

	workers := sim.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > shots {
		workers = shots
	}

	sim.Log.Debug().
		Int("shots", shots).
		Int64("seed", seed).
		Int("workers", workers).
		Int("qubits", c.NumQubits).
		Msg("sampling run")

	var (
		mu     sync.Mutex
		counts = make(Counts)
		g      errgroup.Group
	)
	per := (shots + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * per
		hi := min(lo+per, shots)
		if lo >= hi {
			break
		}
		g.Go(func() error {
			local := make(Counts)
			for i := lo; i < hi; i++ {
				res, err := runTrial(c, rand.New(rand.NewSource(trialSeeds[i])))
				if err != nil {
					return err
				}
				local[res.Bitstring()]++
			}
			mu.Lock()
			for bits, n := range local {
				counts[bits] += n
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// RunStatevector replays the circuit on a default Simulator.
func RunStatevector(c *Circuit) (*StateVector, error) {
	return NewSimulator().RunStatevector(c)
}

// RunSampling runs shots trials on a default Simulator with the given seed.
func RunSampling(c *Circuit, shots int, seed int64) (Counts, error) {
	sim := NewSimulator()
	sim.Seed = seed
	return sim.RunSampling(c, shots)
}
