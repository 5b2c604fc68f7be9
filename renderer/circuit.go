// Package renderer implements ASCII pretty-printing for circuits and
// measurement histograms, adapted from the teacher's render.go/
// styles.go box-drawing conventions, but driving off qcircuit.Circuit
// instead of the teacher's editor-oriented Circuit/Gate model.
package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qpesim/bitutil"
	"qpesim/gate"
	"qpesim/measurement"
	"qpesim/qcircuit"
)

// padCenter centers s within width, truncating if s is already wider.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// RenderCircuit draws circuit as a wire diagram: one row per qubit,
// one column per top-level gate element. Nested classical-if/if-else
// bodies are rendered as an indented sub-diagram below a marker row,
// rather than merged into the parent's column grid.
func RenderCircuit(circuit *qcircuit.Circuit) string {
	var b strings.Builder
	renderElements(&b, circuit.NQubits, circuit.Elements, "")
	return circuitBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderElements(b *strings.Builder, nQubits int, elements []qcircuit.Element, indent string) {
	rows := make([][3]string, nQubits)
	for q := 0; q < nQubits; q++ {
		rows[q] = [3]string{"", "", ""}
	}

	columns := 0
	flushGateColumns := func() {
		if columns == 0 {
			return
		}
		for q := 0; q < nQubits; q++ {
			label := qubitLabelStyle.Render(padCenter(fmt.Sprintf("q%d", q), labelVisualW))
			fmt.Fprintf(b, "%s%s │ %s\n", indent, label, rows[q][1])
		}
		b.WriteString("\n")
		for q := 0; q < nQubits; q++ {
			rows[q] = [3]string{"", "", ""}
		}
		columns = 0
	}

	for _, element := range elements {
		switch element.Kind {
		case qcircuit.ElementGate:
			column := make([][3]string, nQubits)
			renderGateColumn(column, nQubits, element.Gate)
			for q := 0; q < nQubits; q++ {
				rows[q][1] += lipgloss.PlaceHorizontal(gateNameW, lipgloss.Center, column[q][1], lipgloss.WithWhitespaceChars("─"))
			}
			columns++
		case qcircuit.ElementLogger:
			// no wire impact; the kernel's pass-through marker.
		case qcircuit.ElementClassicalIf:
			flushGateColumns()
			fmt.Fprintf(b, "%s%s\n", indent, controlFlowStyle.Render(predicateLabel(element.Predicate, "IF")))
			renderElements(b, nQubits, element.IfBody, indent+"  ")
		case qcircuit.ElementClassicalIfElse:
			flushGateColumns()
			fmt.Fprintf(b, "%s%s\n", indent, controlFlowStyle.Render(predicateLabel(element.Predicate, "IF")))
			renderElements(b, nQubits, element.IfBody, indent+"  ")
			fmt.Fprintf(b, "%s%s\n", indent, controlFlowStyle.Render("ELSE"))
			renderElements(b, nQubits, element.ElseBody, indent+"  ")
		}
	}
	flushGateColumns()
}

func predicateLabel(p qcircuit.Predicate, prefix string) string {
	op := "=="
	if p.Kind == qcircuit.IfNot {
		op = "!="
	}
	return fmt.Sprintf("%s (bits%v %s %d)", prefix, p.BitIndices, op, p.ExpectedValue)
}

func renderGateColumn(rows [][3]string, nQubits int, info gate.Info) {
	switch {
	case info.Kind == gate.M:
		qubit, bit, err := gate.UnpackM(info)
		if err != nil {
			return
		}
		setBoxCell(rows, qubit, measureStyle.Render(fmt.Sprintf("M->c%d", bit)))

	case gate.IsOneTarget(info.Kind):
		target, err := gate.UnpackOneTarget(info)
		if err != nil {
			return
		}
		setBoxCell(rows, target, gateStyle.Render(info.Kind.String()))

	case gate.IsOneTargetOneAngle(info.Kind):
		target, _, err := gate.UnpackOneTargetOneAngle(info)
		if err != nil {
			return
		}
		setBoxCell(rows, target, gateStyle.Render(info.Kind.String()))

	case info.Kind == gate.U:
		target, _, err := gate.UnpackU(info)
		if err != nil {
			return
		}
		setBoxCell(rows, target, gateStyle.Render("U"))

	case gate.IsOneControlOneTarget(info.Kind):
		control, target, err := gate.UnpackOneControlOneTarget(info)
		if err != nil {
			return
		}
		setControlTargetCells(rows, control, target, info.Kind.String())

	case gate.IsOneControlOneTargetOneAngle(info.Kind):
		control, target, _, err := gate.UnpackOneControlOneTargetOneAngle(info)
		if err != nil {
			return
		}
		setControlTargetCells(rows, control, target, info.Kind.String())

	case info.Kind == gate.CU:
		control, target, _, err := gate.UnpackCU(info)
		if err != nil {
			return
		}
		setControlTargetCells(rows, control, target, "CU")
	}
}

func setBoxCell(rows [][3]string, qubit int, label string) {
	rows[qubit][1] = label
}

func setControlTargetCells(rows [][3]string, control, target int, kindName string) {
	rows[control][1] = "●"
	sym := "⊕"
	switch {
	case strings.HasSuffix(kindName, "Z"):
		sym = "●"
	case strings.HasSuffix(kindName, "H"):
		sym = gateStyle.Render("H")
	case strings.HasSuffix(kindName, "SX"):
		sym = gateStyle.Render("SX")
	case strings.HasSuffix(kindName, "Y"):
		sym = gateStyle.Render("Y")
	}
	rows[target][1] = sym
}

// RenderHistogram draws a bar chart of counts, one bar per observed
// state, labeled by its bitstring rendering.
func RenderHistogram(counts map[string]uint64, maxBarWidth int) string {
	var total uint64
	var maxCount uint64
	for _, c := range counts {
		total += c
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return histogramBorderStyle.Render("(no shots)")
	}

	keys := sortedKeys(counts)

	var b strings.Builder
	for _, k := range keys {
		c := counts[k]
		barLen := int(float64(c) / float64(maxCount) * float64(maxBarWidth))
		bar := barStyle.Render(strings.Repeat("█", barLen))
		frac := float64(c) / float64(total)
		fmt.Fprintf(&b, "%s │%s %d (%.1f%%)\n", padCenter(k, labelVisualW), bar, c, frac*100)
	}
	return histogramBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func sortedKeys(counts map[string]uint64) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// RenderCounts is a convenience wrapper combining measurement.Counts
// with its bitstring rendering for direct use by command-line callers.
func RenderCounts(counts measurement.Counts, nQubits int, endian bitutil.Endian, maxBarWidth int) string {
	return RenderHistogram(measurement.ToBitstringCounts(counts, nQubits, endian), maxBarWidth)
}
