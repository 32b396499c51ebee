package spookyq

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// QASM 2.0 support for the op set the simulator implements: h, x, z, ry,
// cx, barrier, measure and classically-conditioned single-qubit gates.

var (
	qasmGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	qasmGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	qasmTwoQubitRegex  = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qasmMeasureRegex   = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*c\[(\d+)\];?$`)
	qasmIfRegex        = regexp.MustCompile(`^if\s*\(\s*c\[(\d+)\]\s*==\s*([01])\s*\)\s+(\w+)\s+q\[(\d+)\];?$`)
	qasmIfParamRegex   = regexp.MustCompile(`^if\s*\(\s*c\[(\d+)\]\s*==\s*([01])\s*\)\s+(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	qasmQregRegex      = regexp.MustCompile(`qreg\s+\w+\[(\d+)\]`)
	qasmCregRegex      = regexp.MustCompile(`creg\s+\w+\[(\d+)\]`)
)

func qasmName(k OpKind) string {
	return strings.ToLower(k.String())
}

// ToQASM renders the circuit as OPENQASM 2.0 text. Angles use pi notation
// where possible so the output re-parses to the same values.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits)
	if c.NumCbits > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", c.NumCbits)
	}
	sb.WriteString("\n")

	for i := range c.Ops {
		op := &c.Ops[i]
		switch op.Kind {
		case OpBarrier:
			qubits := make([]string, c.NumQubits)
			for q := range qubits {
				qubits[q] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(qubits, ", "))
		case OpMeasure:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", op.Target, op.Cbit)
		case OpConditional:
			if op.Inner.Kind == OpRotateY {
				fmt.Fprintf(&sb, "if(c[%d]==%d) ry(%s) q[%d];\n",
					op.Cbit, op.Want, FormatParam(op.Inner.Theta), op.Inner.Target)
			} else {
				fmt.Fprintf(&sb, "if(c[%d]==%d) %s q[%d];\n",
					op.Cbit, op.Want, qasmName(op.Inner.Kind), op.Inner.Target)
			}
		case OpCNOT:
			fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", op.Control, op.Target)
		case OpRotateY:
			fmt.Fprintf(&sb, "ry(%s) q[%d];\n", FormatParam(op.Theta), op.Target)
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", qasmName(op.Kind), op.Target)
		}
	}

	return sb.String()
}

// ParseQASM builds a circuit from OPENQASM 2.0 text. The register
// declarations must precede the first operation; lines using gates outside
// the supported set are rejected.
func ParseQASM(qasm string) (*Circuit, error) {
	var (
		c         *Circuit
		numQubits int
		numCbits  int
	)

	circuit := func() (*Circuit, error) {
		if c != nil {
			return c, nil
		}
		if numQubits == 0 {
			return nil, fmt.Errorf("spookyq: qasm operation before qreg declaration")
		}
		var err error
		c, err = New(numQubits, numCbits)
		return c, err
	}

	singleGate := func(c *Circuit, name string, q int) error {
		switch name {
		case "h":
			return c.H(q)
		case "x":
			return c.X(q)
		case "z":
			return c.Z(q)
		}
		return fmt.Errorf("spookyq: unsupported qasm gate %q", name)
	}

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "//"),
			strings.HasPrefix(line, "OPENQASM"), strings.HasPrefix(line, "include"):
			continue
		case strings.HasPrefix(line, "qreg"):
			if m := qasmQregRegex.FindStringSubmatch(line); m != nil {
				numQubits, _ = strconv.Atoi(m[1])
			}
			continue
		case strings.HasPrefix(line, "creg"):
			if m := qasmCregRegex.FindStringSubmatch(line); m != nil {
				numCbits, _ = strconv.Atoi(m[1])
			}
			continue
		}

		c, err := circuit()
		if err != nil {
			return nil, err
		}

		if strings.HasPrefix(line, "barrier") {
			c.Barrier()
			continue
		}

		if m := qasmMeasureRegex.FindStringSubmatch(line); m != nil {
			q, _ := strconv.Atoi(m[1])
			cbit, _ := strconv.Atoi(m[2])
			if err := c.Measure(q, cbit); err != nil {
				return nil, err
			}
			continue
		}

		if m := qasmIfParamRegex.FindStringSubmatch(line); m != nil {
			cbit, _ := strconv.Atoi(m[1])
			want, _ := strconv.Atoi(m[2])
			if m[3] != "ry" {
				return nil, fmt.Errorf("spookyq: unsupported conditional gate %q", m[3])
			}
			theta, ok := ParseParam(m[4])
			if !ok {
				return nil, fmt.Errorf("spookyq: bad angle %q in %q", m[4], line)
			}
			q, _ := strconv.Atoi(m[5])
			if err := c.ConditionalRY(cbit, want, theta, q); err != nil {
				return nil, err
			}
			continue
		}

		if m := qasmIfRegex.FindStringSubmatch(line); m != nil {
			cbit, _ := strconv.Atoi(m[1])
			want, _ := strconv.Atoi(m[2])
			q, _ := strconv.Atoi(m[4])
			var err error
			switch m[3] {
			case "x":
				err = c.ConditionalX(cbit, want, q)
			case "z":
				err = c.ConditionalZ(cbit, want, q)
			case "h":
				err = c.ConditionalH(cbit, want, q)
			default:
				err = fmt.Errorf("spookyq: unsupported conditional gate %q", m[3])
			}
			if err != nil {
				return nil, err
			}
			continue
		}

		if m := qasmTwoQubitRegex.FindStringSubmatch(line); m != nil {
			if m[1] != "cx" {
				return nil, fmt.Errorf("spookyq: unsupported qasm gate %q", m[1])
			}
			control, _ := strconv.Atoi(m[2])
			target, _ := strconv.Atoi(m[3])
			if err := c.CX(control, target); err != nil {
				return nil, err
			}
			continue
		}

		if m := qasmGateParamRegex.FindStringSubmatch(line); m != nil {
			if m[1] != "ry" {
				return nil, fmt.Errorf("spookyq: unsupported qasm gate %q", m[1])
			}
			theta, ok := ParseParam(m[2])
			if !ok {
				return nil, fmt.Errorf("spookyq: bad angle %q in %q", m[2], line)
			}
			q, _ := strconv.Atoi(m[3])
			if err := c.RY(theta, q); err != nil {
				return nil, err
			}
			continue
		}

		if m := qasmGateRegex.FindStringSubmatch(line); m != nil {
			q, _ := strconv.Atoi(m[2])
			if err := singleGate(c, m[1], q); err != nil {
				return nil, err
			}
			continue
		}

		return nil, fmt.Errorf("spookyq: cannot parse qasm line %q", line)
	}

	if c == nil {
		return nil, fmt.Errorf("spookyq: qasm input declares no operations")
	}
	return c, nil
}
