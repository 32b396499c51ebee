package main

import (
	"fmt"
	"strings"

	"spookyq"
)

// renderHistogram draws sampled counts as horizontal bars, one row per
// observed bitstring, scaled so the most frequent outcome spans barWidth.
func renderHistogram(counts spookyq.Counts, barWidth int) string {
	total := counts.Total()
	if total == 0 {
		return dimStyle.Render("no counts")
	}
	maxCount := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}

	var sb strings.Builder
	for _, bits := range counts.Keys() {
		n := counts[bits]
		w := n * barWidth / maxCount
		if w < 1 {
			w = 1
		}
		fmt.Fprintf(&sb, "%s %s %5d (%4.1f%%)\n",
			bits,
			barStyle.Render(strings.Repeat("█", w)),
			n,
			100*float64(n)/float64(total))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderQubitProbs lists each qubit's marginal distribution.
func renderQubitProbs(probs []spookyq.QubitProbability) string {
	var sb strings.Builder
	for q, p := range probs {
		fmt.Fprintf(&sb, "q[%d]  P(0)=%.4f  P(1)=%.4f\n", q, p.Prob0, p.Prob1)
	}
	return strings.TrimRight(sb.String(), "\n")
}
