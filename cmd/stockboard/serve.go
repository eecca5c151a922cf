package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stockboard/internal/adapters/httpapi"
	"stockboard/internal/board"
	"stockboard/internal/observability"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	addr     string
	fragment string
	trace    string
}

func (*serveCmd) Name() string { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the JSON API, search fragment and metrics" }
func (*serveCmd) Usage() string {
	return `stockboard serve [-addr <host:port>] [-fragment <file>] [-trace <file>]

  Serves /api/v1/..., /search.html and /metrics until interrupted.
  With -trace every board operation is appended to <file> as a JSON line.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "listen address")
	f.StringVar(&c.fragment, "fragment", "busqueda.html", "search view markup served at /search.html")
	f.StringVar(&c.trace, "trace", "", "append operation spans as JSON lines to this file")
}

// server bundles a handler with the session and registry behind it.
type server struct {
	handler  *httpapi.Handler
	session  *session
	registry *prometheus.Registry
	trace    io.Closer
}

func (s *server) Close() error {
	err := s.session.Close()
	if s.trace != nil {
		err = errors.Join(err, s.trace.Close())
	}
	return err
}

func (c *serveCmd) build(ctx context.Context, a *app) (*server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	rec, err := observability.NewPrometheusRecorder(reg)
	if err != nil {
		return nil, err
	}
	latest := &httpapi.LatestNotification{Next: board.NotifierFunc(a.printNotification)}
	opts := []board.Option{
		board.WithMetricsRecorder(observability.MultiRecorder{rec, observability.NewExpvarMetricsRecorder("")}),
		board.WithNotifier(latest),
	}
	var traceFile *os.File
	if c.trace != "" {
		traceFile, err = os.OpenFile(c.trace, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		opts = append(opts, board.WithTracer(observability.NewJSONTracer(traceFile)))
	}
	s, err := a.open(ctx, opts...)
	if err != nil {
		if traceFile != nil {
			_ = traceFile.Close()
		}
		return nil, err
	}
	h := httpapi.NewHandler(s.store)
	h.Accounts = s.accounts
	h.Notifications = latest
	h.FragmentPath = c.fragment
	h.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	srv := &server{handler: h, session: s, registry: reg}
	if traceFile != nil {
		srv.trace = traceFile
	}
	return srv, nil
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := fromArgs(args)
	if a == nil {
		return subcommands.ExitFailure
	}
	srv, err := c.build(ctx, a)
	if err != nil {
		return a.fail(err)
	}
	defer func() { _ = srv.Close() }()

	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		return a.fail(err)
	}
	httpSrv := &http.Server{Handler: srv.handler, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- httpSrv.Serve(ln) }()
	a.logger.Info("serving", "addr", ln.Addr().String(), "driver", srv.session.persist.Driver())

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return a.fail(err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return a.fail(err)
		}
		a.logger.Info("server stopped")
	}
	return subcommands.ExitSuccess
}
