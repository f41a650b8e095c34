package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

	signalCtx context.Context
	once      sync.Once
)

// Context returns a Context that is cancelled on SIGTERM or SIGINT, so
// an interrupted enumeration can still report what it has found.
// If a second signal is caught, the program is terminated with exit code 1.
func Context() context.Context {
	once.Do(func() {
		signalCtx = notify(make(chan os.Signal, 2), func() { os.Exit(1) })
	})
	return signalCtx
}

func notify(c chan os.Signal, exit func()) context.Context {
	signal.Notify(c, shutdownSignals...)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-c
		cancel()
		<-c
		exit() // second signal. Exit directly.
	}()
	return ctx
}
