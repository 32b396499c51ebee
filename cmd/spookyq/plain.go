package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"spookyq"
)

// runPlain prints both demos to stdout without the TUI, mirroring the
// original script flow: circuit diagram, ideal state, sampled histogram.
func runPlain(sim *spookyq.Simulator, shots int, theta float64, logger zerolog.Logger) {
	logger.Info().Int("shots", shots).Msg("running Bell entanglement demo")
	bell := spookyq.BellPairCircuit()
	showDemo(sim, "Bell entanglement", bell, bell, shots, logger)

	logger.Info().
		Int("shots", shots).
		Str("angle", spookyq.FormatParam(theta)).
		Msg("running quantum teleportation demo")
	showDemo(sim, "Quantum teleportation",
		spookyq.TeleportationCircuit(theta),
		spookyq.TeleportationVerifyCircuit(theta),
		shots, logger)
}

func showDemo(sim *spookyq.Simulator, name string, circuit, verify *spookyq.Circuit, shots int, logger zerolog.Logger) {
	fmt.Printf("=== %s ===\n\n", name)
	fmt.Println(circuit.Diagram())

	state, err := sim.RunStatevector(verify)
	if err != nil {
		logger.Fatal().Err(err).Msg("statevector run failed")
	}
	fmt.Println("Ideal qubit marginals:")
	fmt.Println(renderQubitProbs(state.QubitProbabilities()))

	counts, err := sim.RunSampling(circuit, shots)
	if err != nil {
		logger.Fatal().Err(err).Msg("sampling run failed")
	}
	fmt.Printf("\nSampled counts (%d shots):\n", shots)
	fmt.Println(renderHistogram(counts, 40))
	fmt.Println()
}
