package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"service-partner/internal/logx"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the HTTP API and the optional pprof server.
type Runner struct {
	runFn func(*dig.Container) error
	exit  func(int)
}

// NewRunner returns a Runner bound to the container's servers.
func NewRunner() *Runner {
	return &Runner{runFn: run, exit: os.Exit}
}

// MustRun blocks until the context provided to the container is canceled.
// Any other failure is logged and terminates the process.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	reportExit(container, err, r.exit)
}

func reportExit(container *dig.Container, err error, exit func(int)) {
	if err == nil {
		return
	}
	logger := containerLogger(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		if exit != nil {
			exit(1)
		}
	}
}

func containerLogger(container *dig.Container) logx.Logger {
	var logger logx.Logger = logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

type serversIn struct {
	dig.In

	Ctx    context.Context
	Logger logx.Logger
	Main   *http.Server
	Pprof  *http.Server `name:"pprof_server" optional:"true"`
	Closer storeCloser
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

func appRun(in serversIn) error {
	defer in.Closer()

	servers := []*http.Server{in.Main}
	if in.Pprof != nil {
		servers = append(servers, in.Pprof)
	}

	g, gctx := errgroup.WithContext(in.Ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			in.Logger.Info("listening", logx.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		in.Logger.Info("shutting down service-partner")
		for _, srv := range servers {
			srv := srv
			gracefulShutdown(srv, in.Logger, shutdownTimeout)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return in.Ctx.Err()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}
