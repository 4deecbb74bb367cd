package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/bed2go/internal/api"
	"github.com/markusressel/bed2go/internal/command"
	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/engine"
	"github.com/markusressel/bed2go/internal/link"
	"github.com/markusressel/bed2go/internal/persistence"
	"github.com/markusressel/bed2go/internal/safety"
	"github.com/markusressel/bed2go/internal/statistics"
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Warning("Unable to initialize persistence at %s: %v", config.DbPath, err)
	}

	hw, err := engine.NewHardware(config)
	if err != nil {
		ui.Fatal("Unable to initialize hardware: %v", err)
	}
	e, err := engine.New(config, hw)
	if err != nil {
		ui.Fatal("Unable to initialize controller: %v", err)
	}

	registry := statistics.NewRegistry()
	safetyCollector := statistics.RegisterBoard(registry, e.Board())
	e.OnTrip(safetyCollector.RecordTrip)
	e.OnTrip(func(trip safety.Trip) {
		ui.ErrorAndNotify("Thermal Safety",
			"ALERT: Critical temperature detected in segment %d (%.2f°C). All segments deactivated!",
			trip.Channel+1, trip.Temperature,
		)
		if err := pers.SaveSafetyTrip(trip); err != nil {
			ui.Warning("Unable to journal safety trip: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	lines := make(chan link.Line)

	var g run.Group
	{
		// === control loop
		loop := NewControlLoop(e, lines, config.ControlTickRate)
		g.Add(func() error {
			err := loop.Run(ctx)
			ui.Info("Control loop stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error in control loop: %v", err)
			}
			cancel()
		})
	}
	{
		// === debug report
		mon := NewStatusMonitor(e.Board(), config.DebugReportInterval)
		g.Add(func() error {
			return mon.Run(ctx)
		}, func(err error) {
			cancel()
		})
	}
	{
		// === command sources
		var sources []link.Source
		if config.Serial.Port != "" {
			sources = append(sources, link.NewSerialLink(config.Serial.Port, config.Serial.BaudRate))
		}
		if config.Console.Enabled {
			sources = append(sources, link.NewStreamSource("console", command.Operator, os.Stdin, os.Stdout))
		}
		for _, source := range sources {
			s := source
			g.Add(func() error {
				err := s.Run(ctx, lines)
				if err != nil {
					ui.Error("Command source %s failed: %v", s.Name(), err)
					ui.NotifyWarn("bed2go", fmt.Sprintf("Command source %s failed: %v", s.Name(), err))
				}
				// a closed source must not stop the controller
				<-ctx.Done()
				return nil
			}, func(err error) {
				cancel()
			})
		}
	}
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		addr := fmt.Sprintf(":%d", config.Statistics.Port)
		server := &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Add(func() error {
			ui.Info("Serving metrics on %s", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
			}
			<-ctx.Done()
			return nil
		}, func(err error) {
			cancel()
			stopServer("statistics", server.Shutdown)
		})
	}
	if config.Api.Enabled {
		// === REST api
		rest := api.CreateRestService(e.Board(), pers, registry)
		addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
		g.Add(func() error {
			ui.Info("Serving api on %s", addr)
			if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Error("Cannot start api (%s)", err.Error())
			}
			<-ctx.Done()
			return nil
		}, func(err error) {
			cancel()
			stopServer("api", rest.Shutdown)
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

func stopServer(name string, shutdown func(ctx context.Context) error) {
	ui.Info("Stopping %s server...", name)
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()
	if err := shutdown(timeoutCtx); err != nil {
		ui.Warning("Error stopping %s server: %v", name, err)
	} else {
		ui.Info("%s server stopped.", name)
	}
}
