package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/operator-framework/colorsat/pkg/graph"
)

const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

// report is the document written by --output yaml|json and read back
// by --resume.
type report struct {
	Results []result `json:"results"`
}

type result struct {
	File      string     `json:"file"`
	Hash      string     `json:"hash,omitempty"`
	Graph     graph.Spec `json:"graph"`
	State     string     `json:"state"`
	Error     string     `json:"error,omitempty"`
	Solutions []solution `json:"solutions"`
}

type solution struct {
	Index     int              `json:"index"`
	Colors    graph.Assignment `json:"colors"`
	Names     []string         `json:"names,omitempty"`
	TreeIndex *int             `json:"treeIndex,omitempty"`
}

type formatOptions struct {
	names     bool
	treeIndex bool
}

func newSolution(index int, a graph.Assignment, palette int, o formatOptions) solution {
	s := solution{Index: index, Colors: a}
	if o.names {
		s.Names = a.Names()
	}
	if o.treeIndex {
		if id, ok := a.LeafIndex(palette); ok {
			s.TreeIndex = &id
		}
	}
	return s
}

func writeReport(w io.Writer, format string, r report) error {
	switch format {
	case outputText:
		return writeText(w, r)
	case outputYAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			return errors.Wrap(err, "failed to encode report")
		}
		_, err = w.Write(out)
		return err
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return errors.Errorf("unknown output format %q, expected one of text, yaml, json", format)
}

func writeText(w io.Writer, r report) error {
	var b strings.Builder
	for i, res := range r.Results {
		if len(r.Results) > 1 {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s:\n", res.File)
		}
		for _, s := range res.Solutions {
			colors := s.Colors.String()
			if s.Names != nil {
				colors = "[" + strings.Join(s.Names, " ") + "]"
			}
			fmt.Fprintf(&b, "Solution %d: %s", s.Index, colors)
			if s.TreeIndex != nil {
				fmt.Fprintf(&b, " (tree index %d)", *s.TreeIndex)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Total: %d solutions (%s)\n", len(res.Solutions), res.State)
		if res.Error != "" {
			fmt.Fprintf(&b, "Error: %s\n", res.Error)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// loadReport reads a report previously written as yaml or json.
func loadReport(path string) (*report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read resume file %s", path)
	}
	var r report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrapf(err, "failed to decode resume file %s", path)
	}
	return &r, nil
}

// priorFor returns the solutions recorded for the graph with the
// given fingerprint. Results without a fingerprint are matched by file
// name, and a report holding a single such result applies to any file.
func (r *report) priorFor(file, hash string) []graph.Assignment {
	if r == nil {
		return nil
	}
	for _, res := range r.Results {
		matched := res.Hash == hash
		if res.Hash == "" {
			matched = res.File == file || len(r.Results) == 1
		}
		if !matched {
			continue
		}
		prior := make([]graph.Assignment, len(res.Solutions))
		for i, s := range res.Solutions {
			prior[i] = s.Colors
		}
		return prior
	}
	return nil
}
