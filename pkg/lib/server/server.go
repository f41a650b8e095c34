package server

import (
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Option applies a configuration option to the given config.
type Option func(s *serverConfig)

// GetServer returns an http.Server exposing /healthz and /metrics,
// and the pprof handlers when profiling is enabled.
func GetServer(options ...Option) (*http.Server, error) {
	sc := defaultServerConfig()
	sc.apply(options)
	return sc.getServer()
}

func WithAddress(addr string) Option {
	return func(sc *serverConfig) {
		sc.addr = addr
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(sc *serverConfig) {
		sc.logger = logger
	}
}

// WithGatherer serves metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(sc *serverConfig) {
		sc.gatherer = g
	}
}

func WithProfiling(profiling bool) Option {
	return func(sc *serverConfig) {
		sc.profiling = profiling
	}
}

type serverConfig struct {
	addr      string
	logger    logrus.FieldLogger
	gatherer  prometheus.Gatherer
	profiling bool
}

func (sc *serverConfig) apply(options []Option) {
	for _, o := range options {
		o(sc)
	}
}

func defaultServerConfig() serverConfig {
	return serverConfig{
		addr:     ":8080",
		logger:   logrus.StandardLogger(),
		gatherer: prometheus.DefaultGatherer,
	}
}

func (sc serverConfig) getServer() (*http.Server, error) {
	if sc.addr == "" {
		return nil, fmt.Errorf("metrics address must not be empty")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(sc.gatherer, promhttp.HandlerOpts{}))
	if sc.profiling {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	sc.logger.WithField("address", sc.addr).Info("serving metrics")

	return &http.Server{
		Handler: mux,
		Addr:    sc.addr,
	}, nil
}
