package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"medtrust/internal/patient"
	patientstore "medtrust/internal/patient/store"
	"medtrust/internal/platform/config"
	"medtrust/internal/platform/httpserver"
	"medtrust/internal/platform/logger"
)

var (
	serveAddr     string
	servePatients string
	serveSweep    time.Duration
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides MEDTRUST_ADDR)")
	serveCmd.Flags().StringVar(&servePatients, "patients", "", "YAML or JSON file of patient records to load at startup")
	serveCmd.Flags().DurationVar(&serveSweep, "grant-sweep", time.Minute, "Interval between temporary grant expiry sweeps")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the access gateway HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)

	var seed []patient.Record
	if servePatients != "" {
		seed, err = patientstore.LoadSeed(servePatients)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := buildApp(ctx, cfg, log, reg, seed)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer a.Close()

	go a.grants.Run(ctx, serveSweep)

	srv := httpserver.New(cfg.Server.Addr, a.router, log)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting medtrust", "addr", cfg.Server.Addr, "patients_seeded", len(seed))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
