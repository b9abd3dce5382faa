// Package dot renders the shader build progress machine as Graphviz DOT.
package dot

import (
	"bytes"
	"fmt"

	"github.com/comalice/shaderstage/checked"
)

// productNode is the sink every terminal progress builds into.
const productNode = "Shader"

// Export generates DOT source for the given states and transitions. current is
// highlighted; terminal states get a build edge into the product node.
func Export(states []checked.Progress, transitions []checked.Transition, current checked.Progress) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph ShaderBuilder {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, p := range states {
		renderState(&buf, p, p == current)
	}
	fmt.Fprintf(&buf, "  %q [shape=doublecircle];\n", productNode)

	for _, t := range transitions {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", t.From.String(), t.To.String(), t.Op.String())
	}
	for _, p := range states {
		if p.Terminal() {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", p.String(), productNode, checked.OpBuild.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Machine renders the full progress machine with m's progress highlighted.
func Machine(m *checked.Machine) string {
	return Export(checked.States(), checked.Transitions(), m.Progress())
}

func renderState(buf *bytes.Buffer, p checked.Progress, active bool) {
	attrs := ""
	if p == checked.Initial {
		attrs += " peripheries=2"
	}
	if active {
		attrs += " style=filled fillcolor=lightgreen"
	}
	fmt.Fprintf(buf, "  %q [label=%q%s];\n", p.String(), p.String(), attrs)
}
