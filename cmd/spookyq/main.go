// Command spookyq replays the two entanglement demonstrations the library
// was built around — Bell-pair creation and quantum teleportation — either
// as an interactive terminal UI or as plain text output.
package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"spookyq"
)

func main() {
	shots := flag.Int("shots", 1024, "number of sampling trials")
	seed := flag.Int64("seed", 0, "sampling seed (0 picks one from the clock)")
	angle := flag.String("angle", "pi/4", "teleportation message angle (accepts pi expressions)")
	plain := flag.Bool("plain", false, "print results instead of starting the TUI")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	theta, ok := spookyq.ParseParam(*angle)
	if !ok {
		logger.Fatal().Str("angle", *angle).Msg("cannot parse message angle")
	}

	sim := spookyq.NewSimulator()
	sim.Seed = *seed

	if *plain {
		sim.Log = logger
		runPlain(sim, *shots, theta, logger)
		return
	}

	if _, err := tea.NewProgram(newModel(sim, *shots, theta), tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal().Err(err).Msg("tui failed")
	}
}
