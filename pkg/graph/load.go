package graph

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"
)

// Spec is the on-disk description of a Graph. It can be written as
// YAML, JSON or HCL:
//
//	vertices = 3
//	colors   = 3
//	edges    = [[0, 1], [1, 2], [0, 2]]
type Spec struct {
	Vertices int     `json:"vertices" hcl:"vertices"`
	Colors   int     `json:"colors" hcl:"colors"`
	Edges    [][]int `json:"edges,omitempty" hcl:"edges,optional" hash:"set"`
}

// Fingerprint identifies the graph s describes independently of the
// order its edges are listed in. Endpoints within an edge are ordered
// as given, so compare fingerprints of specs built by SpecOf.
func (s Spec) Fingerprint() (string, error) {
	h, err := hashstructure.Hash(s, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash graph")
	}
	return fmt.Sprintf("%016x", h), nil
}

// Graph validates s and builds the Graph it describes.
func (s Spec) Graph() (*Graph, error) {
	edges := make([]Edge, 0, len(s.Edges))
	for i, pair := range s.Edges {
		if len(pair) != 2 {
			return nil, &InvalidGraph{Reason: fmt.Sprintf("edge %d has %d endpoints", i, len(pair))}
		}
		edges = append(edges, Edge{U: pair[0], V: pair[1]})
	}
	return New(s.Vertices, edges, s.Colors)
}

// SpecOf returns the Spec describing g.
func SpecOf(g *Graph) Spec {
	s := Spec{
		Vertices: g.vertexCount,
		Colors:   g.paletteSize,
	}
	for _, e := range g.edges {
		s.Edges = append(s.Edges, []int{e.U, e.V})
	}
	return s
}

// LoadFile reads a graph description from path. Files ending in .hcl
// are parsed as HCL; anything else is parsed as YAML, which includes
// JSON.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read graph file %s", path)
	}

	var s Spec
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		s, err = decodeHCL(data, path)
	} else {
		s, err = decodeYAML(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode graph file %s", path)
	}

	g, err := s.Graph()
	if err != nil {
		return nil, errors.Wrapf(err, "graph file %s", path)
	}
	return g, nil
}

func decodeYAML(data []byte) (Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Spec{}, err
	}
	return s, nil
}

func decodeHCL(data []byte, filename string) (Spec, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return Spec{}, diags
	}
	var s Spec
	if diags := gohcl.DecodeBody(file.Body, nil, &s); diags.HasErrors() {
		return Spec{}, diags
	}
	return s, nil
}
