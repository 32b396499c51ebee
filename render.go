package spookyq

import (
	"fmt"
	"strings"
)

// Plain-text circuit diagram. The output carries no styling so consumers
// can wrap or colorize it; the demo binary does exactly that.

const (
	diagCellW  = 7 // width of one column in characters
	diagNameW  = 3 // gate name width inside a box
	diagLabelW = 7 // width of the wire label area
)

// layoutColumns packs ops into diagram columns. Ops whose qubit spans do
// not overlap share a column; barriers claim every qubit, and measurements
// and conditionals additionally serialize against the classical wire so
// corrections always render after the measurement they depend on.
func layoutColumns(c *Circuit) [][]*Op {
	avail := make([]int, c.NumQubits)
	availC := 0
	var cols [][]*Op

	place := func(op *Op, lo, hi int, classical bool) {
		col := 0
		for q := lo; q <= hi; q++ {
			col = max(col, avail[q])
		}
		if classical {
			col = max(col, availC)
		}
		for len(cols) <= col {
			cols = append(cols, nil)
		}
		cols[col] = append(cols[col], op)
		for q := lo; q <= hi; q++ {
			avail[q] = col + 1
		}
		if classical {
			availC = col + 1
		}
	}

	for i := range c.Ops {
		op := &c.Ops[i]
		switch op.Kind {
		case OpBarrier:
			place(op, 0, c.NumQubits-1, false)
		case OpCNOT:
			place(op, min(op.Control, op.Target), max(op.Control, op.Target), false)
		case OpMeasure, OpConditional:
			// vertical wire runs down to the classical lane
			place(op, op.Target, c.NumQubits-1, true)
		default:
			place(op, op.Target, op.Target, false)
		}
	}
	return cols
}

func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-left-len(s))
}

func opBoxName(op *Op) string {
	switch op.Kind {
	case OpMeasure:
		return "M"
	case OpConditional:
		return op.Inner.Kind.String()
	default:
		return op.Kind.String()
	}
}

// renderDiagramCell returns the three lines of one (column, qubit) cell.
func renderDiagramCell(col []*Op, q int) (top, mid, bot string) {
	empty := strings.Repeat(" ", diagCellW)
	wire := strings.Repeat("─", diagCellW)
	half := diagCellW / 2
	vert := strings.Repeat(" ", half) + "│" + strings.Repeat(" ", diagCellW-half-1)
	dvert := strings.Repeat(" ", half) + "║" + strings.Repeat(" ", diagCellW-half-1)
	dashL := strings.Repeat("─", half)
	dashR := strings.Repeat("─", diagCellW-half-1)

	box := func(name string, downDouble bool) (string, string, string) {
		margin := (diagCellW - diagNameW - 2) / 2
		pad := strings.Repeat(" ", margin)
		dash := strings.Repeat("─", margin)
		t := pad + "┌" + strings.Repeat("─", diagNameW) + "┐" + pad
		m := dash + "┤" + padCenter(name, diagNameW) + "├" + dash
		b := pad + "└" + strings.Repeat("─", diagNameW) + "┘" + pad
		if downDouble {
			b = dvert
		}
		return t, m, b
	}

	for _, op := range col {
		switch op.Kind {
		case OpBarrier:
			return vert, dashL + "│" + dashR, vert

		case OpCNOT:
			lo := min(op.Control, op.Target)
			hi := max(op.Control, op.Target)
			if q == op.Control || q == op.Target {
				sym := "●"
				if q == op.Target {
					sym = "⊕"
				}
				top, mid, bot = empty, dashL+sym+dashR, empty
				if q > lo {
					top = vert
				}
				if q < hi {
					bot = vert
				}
				return top, mid, bot
			}
			if q > lo && q < hi {
				return vert, dashL + "┼" + dashR, vert
			}

		case OpMeasure, OpConditional:
			if q == op.Target {
				return box(opBoxName(op), true)
			}
			if q > op.Target {
				return dvert, dashL + "╫" + dashR, dvert
			}

		default:
			if q == op.Target {
				return box(opBoxName(op), false)
			}
		}
	}

	return empty, wire, empty
}

// Diagram renders the circuit as a text drawing: one three-line row per
// qubit, plus a double-line classical wire when the circuit has classical
// bits. Measurements land on the classical wire with ╩ and the bit index;
// conditional gates hang from it with ● and the guard bit index.
func (c *Circuit) Diagram() string {
	cols := layoutColumns(c)
	var sb strings.Builder

	blank := strings.Repeat(" ", diagLabelW)
	for q := 0; q < c.NumQubits; q++ {
		topLine := blank
		midLine := fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q)) + "──"
		botLine := blank
		for _, col := range cols {
			top, mid, bot := renderDiagramCell(col, q)
			topLine += top
			midLine += mid
			botLine += bot
		}
		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	if c.NumCbits == 0 {
		return sb.String()
	}

	half := diagCellW / 2
	dashL := strings.Repeat("═", half)

	cbitLine := fmt.Sprintf("%-5s", fmt.Sprintf("c%d", c.NumCbits)) + "══"
	for _, col := range cols {
		cell := strings.Repeat("═", diagCellW)
		for _, op := range col {
			if op.Kind != OpMeasure && op.Kind != OpConditional {
				continue
			}
			sym := "╩"
			if op.Kind == OpConditional {
				sym = "●"
			}
			label := fmt.Sprintf("%s%d", sym, op.Cbit)
			rest := diagCellW - half - len(fmt.Sprintf("%d", op.Cbit)) - 1
			if rest < 0 {
				rest = 0
			}
			cell = dashL + label + strings.Repeat("═", rest)
		}
		cbitLine += cell
	}
	sb.WriteString(cbitLine + "\n")

	return sb.String()
}
