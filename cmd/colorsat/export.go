package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/colorsat/pkg/backtrack"
	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/graph"
	"github.com/operator-framework/colorsat/pkg/harness"
	"github.com/operator-framework/colorsat/pkg/solver"
)

func newExportCmd(logger *logrus.Logger) *cobra.Command {
	var resume string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the coloring problem of a graph for other tools",
	}
	cmd.PersistentFlags().StringVar(&resume, "resume", "", "yaml or json output of an earlier run whose solutions are excluded")

	// load returns the graph in file together with the solutions to
	// exclude, each checked against the graph.
	load := func(file string) (*graph.Graph, []graph.Assignment, error) {
		g, err := graph.LoadFile(file)
		if err != nil {
			return nil, nil, err
		}
		var prior *report
		if resume != "" {
			if prior, err = loadReport(resume); err != nil {
				return nil, nil, err
			}
		}
		hash, err := graph.SpecOf(g).Fingerprint()
		if err != nil {
			return nil, nil, err
		}
		blocked := prior.priorFor(file, hash)
		for _, a := range blocked {
			if err := g.Verify(a); err != nil {
				return nil, nil, err
			}
		}
		logger.WithFields(logrus.Fields{"graph": g.String(), "blocked": len(blocked)}).Debug("exporting")
		return g, blocked, nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "dimacs GRAPH",
			Short: "Write the coloring constraints as DIMACS CNF",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				g, blocked, err := load(args[0])
				if err != nil {
					return err
				}
				set, err := constraints.New(g, backtrack.New())
				if err != nil {
					return err
				}
				for _, a := range blocked {
					if err := set.AddBlock(a); err != nil {
						return err
					}
				}
				return solver.WriteDIMACS(cmd.OutOrStdout(), g, set.Clauses())
			},
		},
		&cobra.Command{
			Use:   "harness GRAPH",
			Short: "Write a KLEE harness that explores the colorings symbolically",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				g, blocked, err := load(args[0])
				if err != nil {
					return err
				}
				return harness.Write(cmd.OutOrStdout(), g, blocked)
			},
		},
	)
	return cmd
}
