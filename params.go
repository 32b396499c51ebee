package spookyq

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// paramPattern matches one rotation-angle literal inside QASM: a plain
// number or a pi expression such as "pi", "pi/2", "3*pi/4", "-2pi".
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseParam parses a rotation-angle expression. It accepts plain floats
// and pi expressions ("pi", "pi/4", "3*pi/4", "-pi/2", "2pi"). The second
// return value reports whether the input was understood.
func ParseParam(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	m := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}

	coeff := 1.0
	if m[2] != "" {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		coeff = v
	}
	val := coeff * math.Pi
	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		val /= denom
	}
	if m[1] == "-" {
		val = -val
	}
	return val, true
}

// piForms are the fractions FormatParam renders symbolically.
var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{3 * math.Pi / 4, "3*pi/4"},
	{2 * math.Pi / 3, "2*pi/3"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 8, "pi/8"},
}

// FormatParam renders an angle, preferring pi notation for the common
// fractions so exported QASM round-trips without float noise.
func FormatParam(val float64) string {
	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return fmt.Sprintf("%g", val)
}
