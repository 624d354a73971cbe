package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LucasPMagno/induction-shrink-fit/internal/api"
	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/control"
	"github.com/LucasPMagno/induction-shrink-fit/internal/fusion"
	"github.com/LucasPMagno/induction-shrink-fit/internal/hal/sim"
	"github.com/LucasPMagno/induction-shrink-fit/internal/persistence"
	"github.com/LucasPMagno/induction-shrink-fit/internal/safety"
	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/LucasPMagno/induction-shrink-fit/internal/statistics"
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	store := state.NewStore()
	if settings, err := pers.LoadControlSettings(); err != nil {
		ui.Warning("No saved settings found, using defaults: %v", err)
	} else {
		store.Settings.Replace(settings)
		ui.Info("Restored settings: mode=%s manualPower=%.1fkW target=%.1f°C",
			settings.Mode, settings.ManualPowerKw, settings.TargetTempC)
	}

	// The bench build drives a simulated plant. On the real machine this is
	// where the hardware ADCs, PWM capture and gate driver lines are opened.
	plant := sim.NewPlant(configuration.CurrentConfig.Control, configuration.CurrentConfig.Fusion)

	monitors := InitializeMonitors(store, plant)

	safetyMonitor := safety.NewMonitor(store, safety.Inputs{
		Interlock: plant.Interlock(),
		GateFault: plant.GateFault(),
		GateReady: plant.GateReady(),
	}, configuration.CurrentConfig.Limits, configuration.CurrentConfig.Safety)

	controller := control.NewController(
		store,
		plant,
		plant.RunButton(),
		configuration.CurrentConfig.Control,
		configuration.CurrentConfig.Limits,
	)

	statistics.Register(statistics.NewMeasurementsCollector(store))
	statistics.Register(statistics.NewControlCollector(store))
	statistics.Register(statistics.NewFaultCollector(store))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9411
				}
				endpoint := "/metrics"
				addr := fmt.Sprintf(":%d", port)
				handler := promhttp.Handler()
				mux := http.NewServeMux()
				mux.Handle(endpoint, handler)
				server := &http.Server{Addr: addr, Handler: mux}
				if err := server.ListenAndServe(); err != nil {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return server.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			restService := api.CreateRestService(store, pers)
			g.Add(func() error {
				addr := fmt.Sprintf("%s:%d",
					configuration.CurrentConfig.Api.Host,
					configuration.CurrentConfig.Api.Port)
				if err := restService.Start(addr); err != nil {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return restService.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping REST api: " + err.Error())
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		// === sensor fusion monitors
		for _, monitor := range monitors {
			m := monitor
			g.Add(func() error {
				err := m.Run(ctx)
				ui.Info("Monitor %s stopped.", m.GetId())
				if err != nil {
					panic(err)
				}
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error running monitor %s: %v", m.GetId(), err)
				}
			})
		}
	}
	{
		// === safety monitor
		g.Add(func() error {
			err := safetyMonitor.Run(ctx)
			ui.Info("Safety monitor stopped.")
			if err != nil {
				panic(err)
			}
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error running safety monitor: %v", err)
			}
		})
	}
	{
		// === control loop
		g.Add(func() error {
			err := controller.Run(ctx)
			ui.Info("Control loop stopped.")
			if err != nil {
				panic(err)
			}
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error running control loop: %v", err)
			}
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
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

// InitializeMonitors builds the four sensor fusion monitors against the given
// hardware and registers them in the monitor registry.
func InitializeMonitors(store *state.Store, plant *sim.Plant) []fusion.Monitor {
	fusionConfig := configuration.CurrentConfig.Fusion

	monitors := []fusion.Monitor{
		fusion.NewPowerMonitor(store, plant, fusionConfig),
		fusion.NewMuxAdcMonitor(store, plant, fusionConfig),
		fusion.NewInfraredMonitor(store, plant, fusionConfig),
		fusion.NewModuleTempMonitor(store, plant, fusionConfig),
	}

	for _, monitor := range monitors {
		fusion.RegisterMonitor(monitor)
	}

	return monitors
}
