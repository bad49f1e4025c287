package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"coverletter/internal/shared/config"
	"coverletter/internal/shared/server"
	"coverletter/internal/shared/server/middleware"
	"coverletter/internal/shared/telemetry"
	"coverletter/internal/stubserver"
)

const shutdownTimeout = 10 * time.Second

func main() {
	verbose := flag.Bool("verbose", false, "Include detected resume sections in responses")
	rate := flag.Float64("rate", 5, "Generate requests per second per client (0 disables)")
	burst := flag.Int("burst", 10, "Generate request burst per client")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		exitErr(err.Error())
	}
	telemetry.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := stubserver.NewRouter(stubserver.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigin,
		RateLimit:        middleware.RateLimitRule{Rate: *rate, Burst: *burst},
		Verbose:          *verbose,
	})
	if err := serve(ctx, server.Addr(cfg.Port), handler); err != nil {
		exitErr(err.Error())
	}
}

// serve runs the HTTP server until ctx ends, then shuts it down gracefully.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		telemetry.Info("stub.listen", map[string]any{"addr": ln.Addr().String()})
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		telemetry.Info("stub.shutdown", nil)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
