package solar

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles the Prometheus metrics of the frame loop. All methods are
// nil-safe so a headless embedding can skip metrics entirely.
type Collector struct {
	Frames       prometheus.Counter
	Collisions   prometheus.Counter
	MeshRebuilds prometheus.Counter
	SimDate      prometheus.Gauge
	BodyCount    prometheus.Gauge
}

// NewCollector registers the frame loop metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Re-registration of identical collectors is tolerated so tests can build
// multiple simulations per process.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	frames, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solar_frames_total",
		Help: "Total number of simulation frames stepped.",
	}))
	if err != nil {
		return nil, err
	}
	collisions, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solar_camera_collisions_total",
		Help: "Total number of camera impact events.",
	}))
	if err != nil {
		return nil, err
	}
	rebuilds, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solar_mesh_rebuilds_total",
		Help: "Total number of orbit path meshes regenerated.",
	}))
	if err != nil {
		return nil, err
	}
	simDate, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solar_sim_julian_date",
		Help: "Current simulated Julian Date.",
	}))
	if err != nil {
		return nil, err
	}
	bodyCount, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solar_bodies",
		Help: "Number of bodies scheduled for propagation.",
	}))
	if err != nil {
		return nil, err
	}
	return &Collector{
		Frames:       frames,
		Collisions:   collisions,
		MeshRebuilds: rebuilds,
		SimDate:      simDate,
		BodyCount:    bodyCount,
	}, nil
}

func (c *Collector) frameStepped(jd float64) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	c.SimDate.Set(jd)
}

func (c *Collector) collided() {
	if c == nil {
		return
	}
	c.Collisions.Inc()
}

func (c *Collector) meshRebuilt(n int) {
	if c == nil {
		return
	}
	c.MeshRebuilds.Add(float64(n))
}

func (c *Collector) setBodyCount(n int) {
	if c == nil {
		return
	}
	c.BodyCount.Set(float64(n))
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector already registered with incompatible type")
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector already registered with incompatible type")
		}
		return nil, err
	}
	return gauge, nil
}
