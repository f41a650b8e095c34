// Package harness renders a graph coloring problem as a C program for
// the KLEE symbolic execution engine. Every path KLEE completes through
// the program corresponds to a proper coloring that has not been
// blocked.
package harness

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/operator-framework/colorsat/pkg/graph"
)

var harness = template.Must(template.New("harness").Parse(`#include <klee/klee.h>

#define NODES {{ .Nodes }}
#define COLORS {{ .Colors }}
#define EDGES {{ len .Edges }}

int main() {
    int color[NODES];
{{- if .Edges }}

    int edges[EDGES][2] = {
{{- range $i, $e := .Edges }}{{ if $i }},{{ end }}
        { {{- $e.U }}, {{ $e.V -}} }
{{- end }}
    };
{{- end }}

    klee_make_symbolic(color, sizeof(color), "color");

    // Range constraints
    for (int i = 0; i < NODES; i++) {
        klee_assume(color[i] >= 0);
        klee_assume(color[i] < COLORS);
    }
{{- if .Edges }}

    // Edge constraints
    for (int i = 0; i < EDGES; i++) {
        int u = edges[i][0];
        int v = edges[i][1];
        klee_assume(color[u] != color[v]);
    }
{{- end }}
{{- if .Blocked }}

    // Block previously found colorings
{{- range .Blocked }}
    klee_assume(!({{ . }}));
{{- end }}
{{- end }}

    // Force KLEE to record concrete assignments
    for (int i = 0; i < NODES; i++) {
        klee_print_expr("color[i]", color[i]);
    }

    return 0;
}
`))

type data struct {
	Nodes   int
	Colors  int
	Edges   []graph.Edge
	Blocked []string
}

// Write renders the harness for g to w, excluding each assignment in
// blocked.
func Write(w io.Writer, g *graph.Graph, blocked []graph.Assignment) error {
	if g == nil {
		return &graph.InvalidGraph{Reason: "graph is nil"}
	}
	if g.VertexCount() == 0 {
		return &graph.InvalidGraph{Reason: "a harness needs at least one vertex"}
	}
	d := data{
		Nodes:  g.VertexCount(),
		Colors: g.PaletteSize(),
		Edges:  g.Edges(),
	}
	for _, a := range blocked {
		if len(a) != g.VertexCount() {
			return &graph.DimensionMismatch{Expected: g.VertexCount(), Actual: len(a)}
		}
		d.Blocked = append(d.Blocked, condition(a))
	}
	return errors.Wrap(harness.Execute(w, d), "failed to render harness")
}

// condition is the C expression that holds exactly when color equals a.
func condition(a graph.Assignment) string {
	terms := make([]string, len(a))
	for v, c := range a {
		terms[v] = fmt.Sprintf("color[%d] == %d", v, c)
	}
	return strings.Join(terms, " && ")
}
