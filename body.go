package solar

import (
	"fmt"
	"math"
)

const (
	// MinOrbitFactor scales a body's own visual radius when clamping its
	// orbit outside the parent's surface.
	MinOrbitFactor = 1.6
	degPerTurn     = 360.0
)

// BodyDef is the static definition a Body is constructed from. Distances are
// in world units except OrbitRadiusAU; angles in degrees; periods in days.
// A zero orbit or rotation period means "none"; a negative period means
// retrograde motion.
type BodyDef struct {
	Name                string
	Radius              float64
	VisualScale         float64 // defaults to 1
	OrbitRadiusAU       float64
	OrbitEccentricity   float64
	OrbitInclinationDeg float64
	OrbitPeriodDays     float64
	RotationPeriodDays  float64
	Parent              string // parent body name, empty for the root
	Color               [3]uint8
	Texture             string
	TidallyLocked       bool
	IsMoon              bool
	Elements            *ElementSet
}

// Body is one simulated celestial body. Bodies live in a flat System arena
// and reference their parent by index, never by owning pointer.
type Body struct {
	Name                string
	IsMoon              bool
	Radius              float64
	VisualScale         float64
	OrbitRadius         float64 // world units, clamped at construction
	OrbitEccentricity   float64
	OrbitInclinationDeg float64
	OrbitPeriodDays     float64
	RotationPeriodDays  float64
	TidallyLocked       bool
	Color               [3]uint8
	Texture             string
	Elements            *ElementSet

	parent int // arena index, -1 for the root
	orbit  strategy

	// Mutable per-frame state.
	Position   []float64
	OrbitAngle float64 // radians, cumulative, fixed-period strategy only
	SpinDeg    float64 // spin phase about the +Y axis
}

// WorldRadius is the resolved visual radius, base radius times scale factor.
func (b *Body) WorldRadius() float64 {
	return b.Radius * b.VisualScale
}

// ParentIndex returns the arena index of the parent, -1 for the root.
func (b *Body) ParentIndex() int {
	return b.parent
}

// Orbits reports whether this body moves relative to its parent.
func (b *Body) Orbits() bool {
	_, static := b.orbit.(staticStrategy)
	return !static
}

// HasElements reports whether this body propagates from a full element set.
func (b *Body) HasElements() bool {
	_, ok := b.orbit.(elementSetStrategy)
	return ok
}

// strategy resolves a body position relative to its parent. Exactly one
// implementation is bound per Body at construction and never changes.
type strategy interface {
	position(b *Body, parentPos []float64, dtDays, jd float64) []float64
}

// staticStrategy pins a body to its parent (or the origin for the root).
type staticStrategy struct{}

func (staticStrategy) position(b *Body, parentPos []float64, dtDays, jd float64) []float64 {
	return []float64{parentPos[0], parentPos[1], parentPos[2]}
}

// fixedPeriodStrategy accumulates an orbit phase angle per simulated day and
// treats it as the mean anomaly. The accumulation makes it incremental:
// rewinding time does not retrace positions.
type fixedPeriodStrategy struct{}

func (fixedPeriodStrategy) position(b *Body, parentPos []float64, dtDays, jd float64) []float64 {
	b.OrbitAngle += 2 * math.Pi * (dtDays / b.OrbitPeriodDays)
	M := math.Mod(b.OrbitAngle, 2*math.Pi)
	E := EccentricAnomaly(M, b.OrbitEccentricity, IncrementalKeplerIters)
	x, z := perifocalPosition(b.OrbitRadius, b.OrbitEccentricity, E)
	pos := []float64{x, 0, z}
	if b.OrbitInclinationDeg != 0 {
		// Single rotation about the node line, which is implicitly the
		// world X axis for this strategy.
		si, ci := math.Sincos(b.OrbitInclinationDeg * deg2rad)
		pos = []float64{pos[0], pos[2] * si, pos[2] * ci}
	}
	return vecAdd(parentPos, pos)
}

// elementSetStrategy evaluates the full secular element set at the current
// Julian Date. Stateless and time-reversible.
type elementSetStrategy struct {
	auScale float64
}

func (s elementSetStrategy) position(b *Body, parentPos []float64, dtDays, jd float64) []float64 {
	return vecAdd(parentPos, b.Elements.PositionAt(jd, s.auScale))
}

// newBody validates a definition and binds its propagation strategy. The
// parent may be nil for the root body. Returns an error on malformed orbital
// data so that a bad body is never scheduled for propagation.
func newBody(def BodyDef, parent *Body, parentIdx int, auScale float64) (*Body, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("body without a name")
	}
	if def.Radius <= 0 {
		return nil, fmt.Errorf("%s: non-positive radius %f", def.Name, def.Radius)
	}
	if def.OrbitEccentricity < 0 || def.OrbitEccentricity >= 1 {
		return nil, fmt.Errorf("%s: eccentricity %f out of supported range [0,1)", def.Name, def.OrbitEccentricity)
	}
	if def.Elements != nil {
		if err := def.Elements.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %s", def.Name, err)
		}
	}
	scale := def.VisualScale
	if scale == 0 {
		scale = 1
	}
	b := &Body{
		Name:                def.Name,
		IsMoon:              def.IsMoon,
		Radius:              def.Radius,
		VisualScale:         scale,
		OrbitRadius:         def.OrbitRadiusAU * auScale,
		OrbitEccentricity:   def.OrbitEccentricity,
		OrbitInclinationDeg: def.OrbitInclinationDeg,
		OrbitPeriodDays:     def.OrbitPeriodDays,
		RotationPeriodDays:  def.RotationPeriodDays,
		TidallyLocked:       def.TidallyLocked,
		Color:               def.Color,
		Texture:             def.Texture,
		Elements:            def.Elements,
		parent:              parentIdx,
		Position:            []float64{0, 0, 0},
	}
	if parent != nil {
		// Never start a body inside the parent's visual surface.
		minOrbit := parent.WorldRadius() + b.WorldRadius()*MinOrbitFactor
		b.OrbitRadius = math.Max(b.OrbitRadius, minOrbit)
	}
	switch {
	case b.Elements != nil && parent != nil:
		b.orbit = elementSetStrategy{auScale: auScale}
	case parent != nil && def.OrbitPeriodDays != 0:
		b.orbit = fixedPeriodStrategy{}
	default:
		b.orbit = staticStrategy{}
	}
	return b, nil
}

// step advances the body by dtDays of simulated time at the given Julian
// Date, resolving its world position from the parent's position already
// written this frame, then its spin phase.
func (b *Body) step(parentPos []float64, dtDays, jd float64) {
	b.Position = b.orbit.position(b, parentPos, dtDays, jd)
	if b.TidallyLocked && b.parent >= 0 {
		// Orientation is derived, not accumulated: always face the parent.
		toParent := vecSub(parentPos, b.Position)
		b.SpinDeg = Rad2deg(math.Atan2(toParent[0], toParent[2]))
	} else if b.RotationPeriodDays != 0 {
		b.SpinDeg += degPerTurn * (dtDays / b.RotationPeriodDays)
	}
}
