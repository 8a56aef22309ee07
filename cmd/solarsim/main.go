package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	solar "github.com/schluchc/solar-system"
	"github.com/soniakeys/meeus/julian"
	"github.com/spf13/viper"
)

// This binary reads a scenario file and runs the headless frame loop,
// optionally exporting the resulting ephemeris and serving metrics.

const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02 15:04:05"
)

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "simulation scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log every HUD refresh")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	start := confReadJDEorTime("sim.start")
	if start.IsZero() {
		start = time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC)
	}
	duration := viper.GetDuration("sim.duration")
	frameStep := viper.GetDuration("sim.frame")
	if frameStep == 0 {
		frameStep = time.Second / 60
	}
	timeScale := viper.GetFloat64("sim.time_scale")

	logger := solar.NewLogger("subsys", "solarsim")
	metrics, err := solar.NewCollector(nil)
	if err != nil {
		log.Fatalf("metrics: %s", err)
	}
	if addr := viper.GetString("metrics.listen"); addr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.Log("level", "warning", "message", "metrics server stopped", "err", err)
			}
		}()
	}

	sim, err := solar.NewSimulation(start, logger, metrics)
	if err != nil {
		log.Fatalf("could not build simulation: %s", err)
	}
	if timeScale > 0 {
		sim.Clock.TimeScale = timeScale
	}
	if name := viper.GetString("export.filename"); name != "" {
		conf := solar.ExportConfig{
			Filename:  name,
			Timestamp: viper.GetBool("export.timestamp"),
			Bodies:    viper.GetStringSlice("export.bodies"),
		}
		if err := sim.ExportTo(conf); err != nil {
			log.Fatalf("could not open export: %s", err)
		}
		defer sim.CloseExport()
	}

	if focus := viper.GetString("camera.focus"); focus != "" {
		if err := sim.FocusOn(focus); err != nil {
			log.Fatalf("camera focus: %s", err)
		}
	} else if viper.GetBool("camera.surface") {
		if err := sim.FollowHome(solar.HomeLatitudeDeg, solar.HomeLongitudeDeg); err != nil {
			log.Fatalf("camera surface follow: %s", err)
		}
	}

	frames := int(duration / frameStep)
	if frames <= 0 {
		frames = 1
	}
	dt := frameStep.Seconds()
	for i := 0; i < frames; i++ {
		sim.Step(dt, solar.CameraInput{})
		if verbose && i%600 == 0 {
			logger.Log("level", "info", "frame", i, "date", sim.Clock.Now().Format(dateFormat))
		}
	}
	logger.Log("level", "notice", "status", "finished", "frames", frames,
		"end", sim.Clock.Now().Format(dateFormat))
}

func confReadJDEorTime(key string) (dt time.Time) {
	jde := viper.GetFloat64(key)
	if jde == 0 {
		dt = viper.GetTime(key)
	} else {
		dt = julian.JDToTime(jde)
	}
	return
}
