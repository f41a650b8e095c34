package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/operator-framework/colorsat/pkg/backtrack"
	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/enumerator"
	"github.com/operator-framework/colorsat/pkg/graph"
	"github.com/operator-framework/colorsat/pkg/lib/server"
	"github.com/operator-framework/colorsat/pkg/lib/signals"
	"github.com/operator-framework/colorsat/pkg/metrics"
	"github.com/operator-framework/colorsat/pkg/solver"
)

const (
	backendGini      = "gini"
	backendBacktrack = "backtrack"
)

var registerMetrics sync.Once

type enumerateOptions struct {
	max         int
	backend     string
	output      string
	names       bool
	treeIndex   bool
	parallelism int
	resume      string
	metricsAddr string
	profiling   bool
	timeout     time.Duration
}

func newEnumerateCmd(logger *logrus.Logger) *cobra.Command {
	o := enumerateOptions{}

	cmd := &cobra.Command{
		Use:   "enumerate GRAPH...",
		Short: "Print every proper coloring of each graph",
		Long: `Enumerate every proper coloring of each graph file. Graph files are
YAML, JSON or (with a .hcl suffix) HCL documents with vertices, colors
and edges.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(signals.Context())
			defer cancel()
			if o.timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, o.timeout)
				defer cancel()
			}
			return o.run(ctx, logger, cmd.OutOrStdout(), args)
		},
	}

	o.bindFlags(cmd.Flags())

	return cmd
}

func (o *enumerateOptions) bindFlags(fs *pflag.FlagSet) {
	backend := os.Getenv("COLORSAT_SOLVER")
	if backend == "" {
		backend = backendGini
	}
	fs.IntVar(&o.max, "max", 0, "stop after this many new solutions per graph, 0 for no limit")
	fs.StringVar(&o.backend, "solver", backend, "solver backend, gini or backtrack (env COLORSAT_SOLVER)")
	fs.StringVarP(&o.output, "output", "o", outputText, "output format, one of text, yaml, json")
	fs.BoolVar(&o.names, "names", false, "print color names instead of indices")
	fs.BoolVar(&o.treeIndex, "tree-index", false, "print the search tree leaf id of every solution")
	fs.IntVar(&o.parallelism, "parallelism", 1, "number of graphs enumerated at once")
	fs.StringVar(&o.resume, "resume", "", "yaml or json output of an earlier run whose solutions are not repeated")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "address to serve prometheus metrics on, empty to disable")
	fs.BoolVar(&o.profiling, "profiling", false, "serve profiling data with the metrics")
	fs.DurationVar(&o.timeout, "timeout", 0, "stop searching after this long, 0 for no limit")
}

func (o *enumerateOptions) validate() error {
	if o.max < 0 {
		return errors.Errorf("--max must not be negative, got %d", o.max)
	}
	if o.parallelism < 1 {
		return errors.Errorf("--parallelism must be at least 1, got %d", o.parallelism)
	}
	switch o.backend {
	case backendGini, backendBacktrack:
	default:
		return errors.Errorf("unknown solver %q, expected gini or backtrack", o.backend)
	}
	switch o.output {
	case outputText, outputYAML, outputJSON:
	default:
		return errors.Errorf("unknown output format %q, expected one of text, yaml, json", o.output)
	}
	return nil
}

func (o *enumerateOptions) run(ctx context.Context, logger *logrus.Logger, out io.Writer, files []string) error {
	if err := o.validate(); err != nil {
		return err
	}

	var prior *report
	if o.resume != "" {
		r, err := loadReport(o.resume)
		if err != nil {
			return err
		}
		prior = r
	}

	if o.metricsAddr != "" {
		registerMetrics.Do(metrics.RegisterEnumerator)
		s, err := server.GetServer(server.WithAddress(o.metricsAddr), server.WithLogger(logger), server.WithProfiling(o.profiling))
		if err != nil {
			return err
		}
		go func() {
			if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Error("metrics server failed")
			}
		}()
		defer s.Close()
	}

	results := make([]result, len(files))
	// Graphs are independent: a failure in one file does not cancel
	// the others.
	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			res, err := o.enumerate(ctx, logger.WithField("file", file), file, prior)
			results[i] = res
			return err
		})
	}
	err := g.Wait()

	if werr := writeReport(out, o.output, report{Results: results}); werr != nil {
		return werr
	}
	return err
}

func (o *enumerateOptions) enumerate(ctx context.Context, logger *logrus.Entry, file string, resumed *report) (result, error) {
	res := result{File: file}
	g, err := graph.LoadFile(file)
	if err != nil {
		res.Error = err.Error()
		return res, err
	}
	res.Graph = graph.SpecOf(g)
	if res.Hash, err = res.Graph.Fingerprint(); err != nil {
		res.Error = err.Error()
		return res, err
	}
	prior := resumed.priorFor(file, res.Hash)
	logger.WithField("graph", g.String()).Debug("loaded graph")

	backend, closeBackend, err := o.newSolver(logger)
	if err != nil {
		return res, err
	}
	defer closeBackend()

	format := formatOptions{names: o.names, treeIndex: o.treeIndex}
	e, err := enumerator.New(g,
		enumerator.WithSolver(constraints.NewInstrumentedSolver(backend,
			metrics.RegisterSolveSuccess,
			metrics.RegisterSolveUnsatisfiable,
			metrics.RegisterSolveFailure,
		)),
		enumerator.WithLogger(logger),
		enumerator.WithPrior(prior...),
		enumerator.WithObserver(func(int, graph.Assignment) {
			metrics.EmitSolution()
		}),
	)
	if err != nil {
		res.Error = err.Error()
		return res, err
	}

	if o.max > 0 {
		err = e.RunUpTo(ctx, e.Len()+o.max)
	} else {
		err = e.RunToExhaustion(ctx)
	}
	if errors.Is(err, constraints.ErrIncomplete) {
		logger.WithField("solutions", e.Len()).Warn("enumeration interrupted, reporting partial results")
		err = nil
	}

	metrics.EmitEnumeration(o.backend, e.State().String())
	res.State = e.State().String()
	for i, a := range e.Solutions() {
		res.Solutions = append(res.Solutions, newSolution(i, a, g.PaletteSize(), format))
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res, err
}

// newSolver returns a fresh backend for one graph. gini keeps
// incremental state per graph, so backends are never shared.
func (o *enumerateOptions) newSolver(logger *logrus.Entry) (constraints.Solver, func(), error) {
	if o.backend == backendBacktrack {
		return backtrack.New(), func() {}, nil
	}
	if !logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		s, err := solver.New()
		return s, func() {}, err
	}
	w := logger.WriterLevel(logrus.DebugLevel)
	s, err := solver.New(solver.WithTracer(solver.LoggingTracer{Writer: w}))
	if err != nil {
		w.Close()
		return nil, nil, err
	}
	return s, func() { w.Close() }, nil
}
