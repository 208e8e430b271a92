package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avm2/avm2/vm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"
)

// serveMetricsCommand starts a /metrics HTTP endpoint over a VM
// instrumented with vm.WithMetrics, optionally pre-loading an ABC-JSON
// document so the served counters have something to report. Grounded on
// C360Studio-semspec's prometheus/client_golang wiring (that repo
// exposes a promhttp.Handler off its own registry the same way).
var serveMetricsCommand = &cli.Command{
	Name:      "serve-metrics",
	Usage:     "Serve a VM's Prometheus metrics over HTTP",
	ArgsUsage: "<addr> [file.json]",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		addr := cmd.Args().First()
		if addr == "" {
			addr = ":9090"
		}
		reg := prometheus.NewRegistry()
		machine := vm.New(vm.WithMetrics(reg))

		if path := cmd.Args().Get(1); path != "" {
			if _, err := loadFile(machine, path, true); err != nil {
				return err
			}
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		fmt.Printf("serving metrics on %s/metrics\n", addr)
		server := &http.Server{Addr: addr, Handler: mux}
		go func() {
			<-ctx.Done()
			server.Close()
		}()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve-metrics: %w", err)
		}
		return nil
	},
}
