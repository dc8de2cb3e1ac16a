package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tbjorklund/ttr/internal/server"
	"github.com/tbjorklund/ttr/internal/trace"
	"github.com/tbjorklund/ttr/pkg/rtable"
)

var (
	serveListen   string
	serveCacheTTL time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP trace service",
	Long: `Serve trace queries over HTTP against an in-memory routing table.
The table may be seeded with -f and replaced at runtime via
PUT /table. Traces are answered at GET /trace and Prometheus
metrics at GET /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", ":8080", "Listen address for the HTTP service")
	serveCmd.Flags().DurationVar(&serveCacheTTL, "cache-ttl", server.DefaultCacheTTL, "How long computed traces stay cached")
}

func runServe(cmd *cobra.Command, _ []string) error {
	var tbl rtable.Table
	if args.TablePath != "" {
		var err error
		tbl, err = rtable.LoadFile(args.TablePath)
		if err != nil {
			return err
		}
		if errs := tbl.Validate(); len(errs) > 0 {
			return fmt.Errorf("table %s has %d problem(s), fix them or upload a table later", args.TablePath, len(errs))
		}
	}

	s := server.New(tbl, trace.Options{
		HopLimit:      int(args.HopLimit),
		HashAlgorithm: args.HashAlgorithm,
	}, serveCacheTTL)

	// Set up signal handling for Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan error)
	go func() {
		done <- s.ListenAndServe(serveListen)
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-sigChan:
		logrus.Debug("received interrupt signal, stopping")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			return fmt.Errorf("during shutdown: %w", err)
		}
		<-done
	}
	return nil
}
