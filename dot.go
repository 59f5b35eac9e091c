package scnr

import (
	"fmt"
	"io"
)

// WriteDot renders cm's minimized DFA as a Graphviz digraph: one node per
// state (accepting states double-circled and annotated with their
// terminal id), one edge per (ClassId, target) pair labeled with the
// class's human-readable description (A5).
func (cm *CompiledMode) WriteDot(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "digraph %s {\n\trankdir=LR;\n", dotIdent(cm.Name)); err != nil {
		return err
	}

	for id, st := range cm.DFA.States {
		shape := "circle"
		label := fmt.Sprintf("%d", id)
		if st.Accept.HasMatch {
			shape = "doublecircle"
			label = fmt.Sprintf("%d\\nterm=%d", id, st.Accept.Terminal)
		}
		if _, err := fmt.Fprintf(w, "\t%d [shape=%s,label=%q];\n", id, shape, label); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\tstart [shape=point];\n\tstart -> %d;\n", cm.DFA.Start); err != nil {
		return err
	}

	for id, st := range cm.DFA.States {
		for _, t := range st.Transitions {
			label := fmt.Sprintf("%d", t.Class)
			if cm.registry != nil {
				if cls := cm.registry.Class(t.Class); cls != nil {
					label = cls.Describe()
				}
			}
			if _, err := fmt.Fprintf(w, "\t%d -> %d [label=%q];\n", id, t.Target, label); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

// dotIdent sanitizes a mode name into a safe Graphviz graph identifier.
func dotIdent(name string) string {
	out := make([]byte, 0, len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			out = append(out, byte(r))
		} else {
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "mode"
	}
	return string(out)
}
