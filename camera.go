package solar

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// CameraMode enumerates the mutually exclusive camera states.
type CameraMode uint8

const (
	// ModeFreeFlight integrates thrust and velocity with collision response.
	ModeFreeFlight CameraMode = iota
	// ModeFocusLock rigidly offsets the camera from a target body.
	ModeFocusLock
	// ModeSurfaceFollow glues the camera to a lat/lon point on a spinning body.
	ModeSurfaceFollow
)

// CameraConfig tunes the free-flight kinematics. DefaultCameraConfig matches
// the hand-tuned feel of the reference scene.
type CameraConfig struct {
	Acceleration      float64
	Damping           float64 // exponential damping per second
	MaxSpeed          float64
	RollSpeedDeg      float64
	LookSpeedDeg      float64
	LookBoost         float64
	LookDeadzone      float64
	BoostFactor       float64
	CameraRadius      float64
	CollisionSpeedMin float64 // below this, skip collision tests entirely
	ImpactCooldown    float64 // seconds between impact events
	SurfaceAltitude   float64
}

// DefaultCameraConfig returns the reference tuning.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Acceleration:      10.0,
		Damping:           2.8,
		MaxSpeed:          80.0,
		RollSpeedDeg:      70.0,
		LookSpeedDeg:      80.0,
		LookBoost:         2.5,
		LookDeadzone:      0.0015,
		BoostFactor:       2.0,
		CameraRadius:      0.05,
		CollisionSpeedMin: 2.5,
		ImpactCooldown:    0.6,
		SurfaceAltitude:   0.02,
	}
}

// CameraInput is the per-frame input snapshot consumed by the rig. Move holds
// the camera-local thrust direction (right, up, forward), each in {-1, 0, 1}.
type CameraInput struct {
	Move       [3]float64
	LookDeltaX float64 // raw horizontal mouse delta
	LookDeltaY float64
	Boost      bool
	RollCW     bool
	RollCCW    bool
}

func (in CameraInput) moving() bool {
	return in.Move[0] != 0 || in.Move[1] != 0 || in.Move[2] != 0
}

// Sphere is a collision proxy for a body or asteroid.
type Sphere struct {
	Name   string
	Center []float64
	Radius float64
}

// CollisionEvent reports a single camera impact, used by the rendering layer
// to spawn the one-shot flash and audio.
type CollisionEvent struct {
	Body     string
	Position []float64
	Size     float64
}

// CameraRig is the free-flying camera. At most one of free-flight, focus-lock
// and surface-follow is active at any instant; entering one clears the others.
type CameraRig struct {
	Position []float64
	Velocity []float64
	YawDeg   float64
	PitchDeg float64
	RollDeg  float64

	mode        CameraMode
	focusBody   int // arena index, valid in ModeFocusLock
	focusOffset []float64
	surfaceBody int // arena index, valid in ModeSurfaceFollow
	surfaceLat  float64
	surfaceLon  float64

	cooldown float64
	cfg      CameraConfig
}

// NewCameraRig places a camera at the given position in free flight.
func NewCameraRig(position []float64, cfg CameraConfig) *CameraRig {
	return &CameraRig{
		Position: position,
		Velocity: []float64{0, 0, 0},
		cfg:      cfg,
	}
}

// Mode returns the active camera mode.
func (c *CameraRig) Mode() CameraMode {
	return c.mode
}

// basis returns the camera-local right, up and forward axes in world space.
func (c *CameraRig) basis() (right, up, forward []float64) {
	var m mat64.Dense
	m.Mul(R2(-c.YawDeg*deg2rad), R1(-c.PitchDeg*deg2rad))
	m.Mul(&m, R3(-c.RollDeg*deg2rad))
	right = MxV33(&m, []float64{1, 0, 0})
	up = MxV33(&m, []float64{0, 1, 0})
	forward = MxV33(&m, []float64{0, 0, 1})
	return
}

// lookAt aims the camera at a world point, resetting roll.
func (c *CameraRig) lookAt(target []float64) {
	to := vecSub(target, c.Position)
	d := norm(to)
	if d < zeroε {
		return
	}
	c.YawDeg = Rad2deg(math.Atan2(to[0], to[2]))
	c.PitchDeg = -math.Asin(to[1]/d) / deg2rad
	c.RollDeg = 0
}

// FocusOn enters focus-lock on the given body. The viewing offset scales with
// the body's visual radius so every body fills a similar screen share.
func (c *CameraRig) FocusOn(bodyIdx int, b *Body) {
	size := b.WorldRadius()
	c.mode = ModeFocusLock
	c.focusBody = bodyIdx
	c.focusOffset = []float64{0, size * 6, -size * 12}
	c.Velocity = []float64{0, 0, 0}
	c.Position = vecAdd(b.Position, c.focusOffset)
	c.lookAt(b.Position)
}

// FollowSurface enters surface-follow at a latitude/longitude (degrees) on
// the given body.
func (c *CameraRig) FollowSurface(bodyIdx int, b *Body, latDeg, lonDeg float64) {
	c.mode = ModeSurfaceFollow
	c.surfaceBody = bodyIdx
	c.surfaceLat = latDeg * deg2rad
	c.surfaceLon = lonDeg * deg2rad
	c.Velocity = []float64{0, 0, 0}
	normal := latLonNormal(c.surfaceLat, c.surfaceLon)
	c.Position = vecAdd(b.Position, vecScale(b.WorldRadius()+c.cfg.SurfaceAltitude, normal))
	c.lookAt(vecAdd(b.Position, vecScale(2, normal)))
}

// Release returns the camera to free flight.
func (c *CameraRig) Release() {
	c.mode = ModeFreeFlight
}

// applyLock re-applies the focus or surface override for this frame against
// freshly read body state. No-op in free flight.
func (c *CameraRig) applyLock(bodies []*Body) {
	switch c.mode {
	case ModeFocusLock:
		b := bodies[c.focusBody]
		c.Position = vecAdd(b.Position, c.focusOffset)
		c.lookAt(b.Position)
	case ModeSurfaceFollow:
		b := bodies[c.surfaceBody]
		// Rotate the local surface normal by the body's current spin so the
		// camera stays glued to the same ground point.
		normal := rotateAboutY(latLonNormal(c.surfaceLat, c.surfaceLon), b.SpinDeg*deg2rad)
		c.Position = vecAdd(b.Position, vecScale(b.WorldRadius()+c.cfg.SurfaceAltitude, normal))
	}
}

// Step runs one camera frame in order: resolve look input, re-apply an
// active lock override against the previous frame's body state, then
// integrate free-flight movement with collision response against the
// provided spheres. Any directional input cancels an active lock mode first.
func (c *CameraRig) Step(dtSeconds float64, in CameraInput, bodies []*Body, spheres []Sphere) *CollisionEvent {
	if in.moving() && c.mode != ModeFreeFlight {
		c.Release()
	}
	c.resolveLook(dtSeconds, in)
	c.applyLock(bodies)
	return c.integrate(dtSeconds, in, spheres)
}

// resolveLook turns mouse deltas and roll keys into orientation.
func (c *CameraRig) resolveLook(dtSeconds float64, in CameraInput) {
	lookX := in.LookDeltaX
	lookY := in.LookDeltaY
	if math.Abs(lookX) < c.cfg.LookDeadzone {
		lookX = 0
	}
	if math.Abs(lookY) < c.cfg.LookDeadzone {
		lookY = 0
	}
	lookSpeed := c.cfg.LookSpeedDeg
	if in.Boost {
		lookSpeed *= c.cfg.LookBoost
	}
	c.YawDeg += lookX * lookSpeed
	c.PitchDeg = clamp(c.PitchDeg-lookY*lookSpeed, -80, 80)
	if in.RollCW {
		c.RollDeg += c.cfg.RollSpeedDeg * dtSeconds
	}
	if in.RollCCW {
		c.RollDeg -= c.cfg.RollSpeedDeg * dtSeconds
	}
}

// integrate advances free-flight kinematics and resolves collisions against
// the previous frame's body positions. The one-frame lag is intentional: it
// avoids order-dependent double resolution with the propagation step.
func (c *CameraRig) integrate(dtSeconds float64, in CameraInput, spheres []Sphere) *CollisionEvent {
	c.cooldown = math.Max(0, c.cooldown-dtSeconds)

	if in.moving() {
		right, up, forward := c.basis()
		thrust := unit(vecAdd(vecAdd(
			vecScale(in.Move[0], right),
			vecScale(in.Move[1], up)),
			vecScale(in.Move[2], forward)))
		boost := 1.0
		if in.Boost {
			boost = c.cfg.BoostFactor
		}
		c.Velocity = vecAdd(c.Velocity, vecScale(c.cfg.Acceleration*boost*dtSeconds, thrust))
	}

	speed := norm(c.Velocity)
	if speed == 0 {
		return nil
	}
	c.Velocity = vecSub(c.Velocity, vecScale(math.Min(1, c.cfg.Damping*dtSeconds), c.Velocity))
	if speed > c.cfg.MaxSpeed {
		c.Velocity = vecScale(c.cfg.MaxSpeed, unit(c.Velocity))
	}
	next := vecAdd(c.Position, vecScale(dtSeconds, c.Velocity))

	var event *CollisionEvent
	if c.mode == ModeFreeFlight && speed >= c.cfg.CollisionSpeedMin {
		for _, sphere := range spheres {
			toCam := vecSub(next, sphere.Center)
			dist := norm(toCam)
			minDist := sphere.Radius*0.97 + c.cfg.CameraRadius
			if dist < minDist && dist > 0 {
				next = vecAdd(sphere.Center, vecScale(minDist, unit(toCam)))
				c.Velocity = []float64{0, 0, 0}
				if c.cooldown == 0 {
					event = &CollisionEvent{Body: sphere.Name, Position: next, Size: sphere.Radius * 1.6}
					c.cooldown = c.cfg.ImpactCooldown
				}
			}
		}
	}
	c.Position = next
	return event
}
