package solar

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// OrbitPathEntity holds the polyline mesh tracing one body's full orbit.
// Element-set paths deform with the secular terms and are regenerated every
// frame; fixed-period paths are built once, with the inclination applied to
// the entity transform instead of the vertices.
type OrbitPathEntity struct {
	Body           int // arena index of the traced body
	Parent         int // arena index of the orbit focus
	Mesh           Mesh
	Color          [4]uint8
	Position       []float64 // parent position, refreshed each frame
	InclinationDeg float64   // entity X rotation, fixed-period paths only
	dynamic        bool
}

// RingEntity holds a planetary ring annulus pinned to its planet.
type RingEntity struct {
	Body     int // arena index of the ringed planet
	Mesh     Mesh
	Color    [4]uint8
	Texture  string
	Position []float64
	TiltDeg  float64 // entity X rotation (negated tilt, as rendered)
}

// System owns every Body in a flat arena. Parent references are indices into
// the arena, kept in construction order so a parent's position is always
// written before its children read it.
type System struct {
	Bodies    []*Body
	Asteroids []Asteroid
	Paths     []*OrbitPathEntity
	Rings     []*RingEntity
	AUScale   float64

	index  map[string]int
	logger kitlog.Logger
}

// NewSystem returns an empty system at the given world scale.
func NewSystem(auScale float64, logger kitlog.Logger) *System {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &System{AUScale: auScale, index: make(map[string]int), logger: logger}
}

// Add validates a definition and appends the body to the arena. A body with
// malformed orbital data is rejected here so it is never scheduled for
// propagation. Parents must be added before their children.
func (s *System) Add(def BodyDef) (*Body, error) {
	if _, dup := s.index[def.Name]; dup {
		return nil, fmt.Errorf("duplicate body %q", def.Name)
	}
	parentIdx := -1
	var parent *Body
	if def.Parent != "" {
		idx, found := s.index[def.Parent]
		if !found {
			return nil, fmt.Errorf("%s: unknown parent %q", def.Name, def.Parent)
		}
		parentIdx = idx
		parent = s.Bodies[idx]
	}
	b, err := newBody(def, parent, parentIdx, s.AUScale)
	if err != nil {
		return nil, err
	}
	s.index[b.Name] = len(s.Bodies)
	s.Bodies = append(s.Bodies, b)
	return b, nil
}

// BodyByName returns a body and its arena index.
func (s *System) BodyByName(name string) (*Body, int, bool) {
	idx, found := s.index[name]
	if !found {
		return nil, -1, false
	}
	return s.Bodies[idx], idx, true
}

// Propagate resolves every body's world position for dtDays of elapsed
// simulated time at Julian Date jd, in arena order.
func (s *System) Propagate(dtDays, jd float64) {
	origin := []float64{0, 0, 0}
	for _, b := range s.Bodies {
		parentPos := origin
		if b.parent >= 0 {
			parentPos = s.Bodies[b.parent].Position
		}
		b.step(parentPos, dtDays, jd)
	}
}

// BuildGeometry creates the orbit path and ring entities for the current
// arena at Julian Date jd. Called once after the catalog is loaded.
func (s *System) BuildGeometry(jd float64, segments int) {
	pathColor := [4]uint8{255, 255, 255, 40}
	for idx, b := range s.Bodies {
		if b.parent < 0 || !b.Orbits() || b.OrbitRadius <= 0 {
			continue
		}
		path := &OrbitPathEntity{
			Body:     idx,
			Parent:   b.parent,
			Color:    pathColor,
			Position: s.Bodies[b.parent].Position,
		}
		if b.HasElements() {
			path.Mesh = OrbitPathFromElements(*b.Elements, jd, s.AUScale, segments)
			path.dynamic = true
		} else {
			path.Mesh = OrbitEllipse(b.OrbitRadius, b.OrbitEccentricity, segments)
			path.InclinationDeg = -b.OrbitInclinationDeg
		}
		s.Paths = append(s.Paths, path)
	}
	for _, def := range RingDefs {
		planet, idx, found := s.BodyByName(def.Parent)
		if !found {
			s.logger.Log("level", "warning", "subsys", "geometry", "message", "ring for unknown body", "body", def.Parent)
			continue
		}
		inner := planet.WorldRadius() * def.InnerMult
		outer := planet.WorldRadius() * def.OuterMult
		s.Rings = append(s.Rings, &RingEntity{
			Body:     idx,
			Mesh:     RingAnnulus(inner, outer, def.Segments),
			Color:    def.Color,
			Texture:  def.Texture,
			Position: planet.Position,
			TiltDeg:  -def.TiltDeg,
		})
	}
}

// RefreshGeometry repositions every dependent entity against the freshly
// propagated body positions and regenerates the secular orbit paths. Returns
// the number of meshes rebuilt this frame.
func (s *System) RefreshGeometry(jd float64, segments int) (rebuilt int) {
	for _, path := range s.Paths {
		path.Position = s.Bodies[path.Parent].Position
		if path.dynamic {
			path.Mesh = OrbitPathFromElements(*s.Bodies[path.Body].Elements, jd, s.AUScale, segments)
			rebuilt++
		}
	}
	for _, ring := range s.Rings {
		ring.Position = s.Bodies[ring.Body].Position
	}
	return
}

// CollisionSpheres returns the collision proxies for every body and asteroid,
// read from the current positions.
func (s *System) CollisionSpheres() []Sphere {
	spheres := make([]Sphere, 0, len(s.Bodies)+len(s.Asteroids))
	for _, b := range s.Bodies {
		spheres = append(spheres, Sphere{Name: b.Name, Center: b.Position, Radius: b.WorldRadius()})
	}
	for i, a := range s.Asteroids {
		spheres = append(spheres, Sphere{Name: fmt.Sprintf("asteroid-%d", i), Center: a.Position, Radius: a.Size})
	}
	return spheres
}

// SimulationState threads the whole per-frame state through one explicit
// struct: the clock, the body arena, the camera and derived display text.
type SimulationState struct {
	Clock  *SimClock
	System *System
	Camera *CameraRig
	HUD    string

	// EarthMesh is the heightmap-displaced terrain mesh, or empty when the
	// elevation asset is missing (the renderer falls back to a primitive
	// sphere).
	EarthMesh Mesh

	pathSegments int
	logger       kitlog.Logger
	metrics      *Collector
	export       *EphemerisWriter
}

// NewSimulation builds the full catalog, belt and geometry and starts the
// clock at the provided instant.
func NewSimulation(start time.Time, logger kitlog.Logger, metrics *Collector) (*SimulationState, error) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	cfg := solarConfig()
	IncrementalKeplerIters = cfg.IncrementalIters
	ElementsKeplerIters = cfg.ElementsIters

	sys := NewSystem(cfg.AUScale, logger)
	for _, def := range AllDefs() {
		if _, err := sys.Add(def); err != nil {
			return nil, err
		}
	}
	sys.Asteroids = GenerateBelt(cfg.BeltCount, cfg.AUScale)

	clock := NewSimClock(start)
	// Write the initial positions so geometry and collision proxies are
	// valid before the first frame.
	sys.Propagate(0, clock.JD)
	sys.BuildGeometry(clock.JD, cfg.PathSegments)

	sim := &SimulationState{
		Clock:        clock,
		System:       sys,
		Camera:       NewCameraRig([]float64{0, 15, -35}, DefaultCameraConfig()),
		pathSegments: cfg.PathSegments,
		logger:       logger,
		metrics:      metrics,
	}
	sim.EarthMesh = sim.buildEarthMesh(cfg)
	sim.metrics.setBodyCount(len(sys.Bodies))
	sim.refreshHUD()
	logger.Log("level", "info", "subsys", "sim", "status", "initialized",
		"bodies", len(sys.Bodies), "asteroids", len(sys.Asteroids), "start", clock.Now())
	return sim, nil
}

// buildEarthMesh attempts the heightmap-displaced Earth terrain. A missing or
// corrupt asset is logged and degrades to an empty mesh, never an error.
func (s *SimulationState) buildEarthMesh(cfg _solarconfig) Mesh {
	img, err := LoadHeightmap(filepath.Join(cfg.AssetDir, cfg.HeightmapPath))
	if err != nil {
		s.logger.Log("level", "warning", "subsys", "geometry", "message", err.Error())
		return Mesh{}
	}
	return HeightmapSphere(img, 1.0, cfg.HeightmapScale, 96, 48)
}

// ExportTo streams every stepped frame's body positions to a CSV ephemeris.
// Call CloseExport once stepping is done.
func (s *SimulationState) ExportTo(conf ExportConfig) error {
	w, err := NewEphemerisWriter(conf, s.System)
	if err != nil {
		return err
	}
	s.export = w
	return nil
}

// CloseExport flushes and closes the CSV ephemeris, if one was opened.
func (s *SimulationState) CloseExport() {
	if s.export != nil {
		s.export.Close()
		s.export = nil
	}
}

// Step runs one frame in the fixed deterministic order: advance clock,
// resolve camera (look, lock override, movement and collisions against last
// frame's positions), propagate every body, refresh dependent geometry,
// recompute the HUD. No step may be reordered.
func (s *SimulationState) Step(elapsedRealSeconds float64, in CameraInput) *CollisionEvent {
	dtDays := s.Clock.Advance(elapsedRealSeconds)

	event := s.Camera.Step(elapsedRealSeconds, in, s.System.Bodies, s.System.CollisionSpheres())
	if event != nil {
		s.metrics.collided()
		s.logger.Log("level", "info", "subsys", "camera", "collided", event.Body)
	}

	s.System.Propagate(dtDays, s.Clock.JD)
	rebuilt := s.System.RefreshGeometry(s.Clock.JD, s.pathSegments)
	s.metrics.meshRebuilt(rebuilt)
	s.refreshHUD()
	s.metrics.frameStepped(s.Clock.JD)

	if s.export != nil {
		s.export.Write(s.Clock.JD, s.System)
	}
	return event
}

// FocusOn aims and pins the camera on a body by name.
func (s *SimulationState) FocusOn(name string) error {
	b, idx, found := s.System.BodyByName(name)
	if !found {
		return fmt.Errorf("unknown body %q", name)
	}
	s.Camera.FocusOn(idx, b)
	return nil
}

// Reference surface point for the default ground view.
const (
	HomeLatitudeDeg  = 46.7797248
	HomeLongitudeDeg = 9.6781356
)

// FollowHome glues the camera to the reference surface point on Earth.
func (s *SimulationState) FollowHome(latDeg, lonDeg float64) error {
	b, idx, found := s.System.BodyByName("Earth")
	if !found {
		return fmt.Errorf("no Earth in catalog")
	}
	s.Camera.FollowSurface(idx, b, latDeg, lonDeg)
	return nil
}

func (s *SimulationState) refreshHUD() {
	status := "running"
	if s.Clock.Paused {
		status = "paused"
	}
	s.HUD = fmt.Sprintf("Sim time (UTC): %s\nTime scale: %.2f days/sec (%s)",
		s.Clock.Now().Format(DisplayDateFormat), s.Clock.TimeScale, status)
}

// NewLogger returns the standard logfmt logger used across the simulation.
func NewLogger(keyvals ...interface{}) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	if len(keyvals) > 0 {
		klog = kitlog.With(klog, keyvals...)
	}
	return klog
}
