package solar

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func testSystem(t *testing.T) *System {
	t.Helper()
	resetConfig()
	sys := NewSystem(DefaultAUScale, nil)
	for _, def := range AllDefs() {
		if _, err := sys.Add(def); err != nil {
			t.Fatalf("catalog body rejected: %s", err)
		}
	}
	return sys
}

func TestCatalogConstruction(t *testing.T) {
	sys := testSystem(t)
	if len(sys.Bodies) != 29 {
		t.Fatalf("expected 29 bodies, got %d", len(sys.Bodies))
	}
	sun, idx, found := sys.BodyByName("Sun")
	if !found || idx != 0 {
		t.Fatal("Sun is not the root of the arena")
	}
	if sun.Orbits() {
		t.Fatal("the Sun must not orbit")
	}
	for _, b := range sys.Bodies[1:] {
		if b.ParentIndex() < 0 {
			t.Fatalf("%s has no parent", b.Name)
		}
		if b.ParentIndex() >= len(sys.Bodies) {
			t.Fatalf("%s parent index out of range", b.Name)
		}
	}
	earth, _, _ := sys.BodyByName("Earth")
	if !earth.HasElements() {
		t.Fatal("Earth lost its element set")
	}
	moon, _, _ := sys.BodyByName("Moon")
	if moon.HasElements() || !moon.Orbits() {
		t.Fatal("the Moon must use the fixed-period strategy")
	}
	if !moon.IsMoon || !moon.TidallyLocked {
		t.Fatal("Moon flags lost")
	}
}

func TestBodyValidation(t *testing.T) {
	sys := NewSystem(DefaultAUScale, nil)
	if _, err := sys.Add(BodyDef{Name: "", Radius: 1}); err == nil {
		t.Fatal("nameless body accepted")
	}
	if _, err := sys.Add(BodyDef{Name: "flat", Radius: 0}); err == nil {
		t.Fatal("zero radius accepted")
	}
	if _, err := sys.Add(BodyDef{Name: "wild", Radius: 1, OrbitEccentricity: 1.2}); err == nil {
		t.Fatal("hyperbolic orbit accepted")
	}
	if _, err := sys.Add(BodyDef{Name: "orphan", Radius: 1, Parent: "Nibiru"}); err == nil {
		t.Fatal("unknown parent accepted")
	}
	if _, err := sys.Add(SunDef); err != nil {
		t.Fatalf("Sun rejected: %s", err)
	}
	if _, err := sys.Add(SunDef); err == nil {
		t.Fatal("duplicate body accepted")
	}
	bad := BodyDef{Name: "comet", Radius: 1, Parent: "Sun", Elements: &ElementSet{A: 1, E: 1.5}}
	if _, err := sys.Add(bad); err == nil {
		t.Fatal("parabolic element set accepted")
	}
}

func TestMinOrbitClamp(t *testing.T) {
	sys := NewSystem(DefaultAUScale, nil)
	sys.Add(SunDef)
	b, err := sys.Add(BodyDef{
		Name: "grazer", Radius: 0.2, Parent: "Sun",
		OrbitRadiusAU: 0.0001, OrbitPeriodDays: 10,
	})
	if err != nil {
		t.Fatalf("grazer rejected: %s", err)
	}
	minOrbit := 1.8 + 0.2*MinOrbitFactor
	if !floats.EqualWithinAbs(b.OrbitRadius, minOrbit, 1e-12) {
		t.Fatalf("orbit radius %f not clamped to %f", b.OrbitRadius, minOrbit)
	}
	// A comfortable orbit is left alone.
	c, _ := sys.Add(BodyDef{
		Name: "far", Radius: 0.2, Parent: "Sun",
		OrbitRadiusAU: 2, OrbitPeriodDays: 10,
	})
	if !floats.EqualWithinAbs(c.OrbitRadius, 2*DefaultAUScale, 1e-12) {
		t.Fatalf("distant orbit radius altered to %f", c.OrbitRadius)
	}
}

func TestFixedPeriodClosedOrbit(t *testing.T) {
	sys := testSystem(t)
	moon, _, _ := sys.BodyByName("Moon")
	period := moon.OrbitPeriodDays
	start := moon.OrbitAngle
	steps := 1000
	jd := J2000
	dt := period / float64(steps)
	for i := 0; i < steps; i++ {
		jd += dt
		sys.Propagate(dt, jd)
	}
	if ok, err := anglesEqual(math.Mod(start, 2*math.Pi), math.Mod(moon.OrbitAngle, 2*math.Pi)); !ok {
		t.Fatalf("orbit did not close after one period: %s", err)
	}
}

func TestFixedPeriodIsIncremental(t *testing.T) {
	sys := testSystem(t)
	moon, _, _ := sys.BodyByName("Moon")
	sys.Propagate(1, J2000+1)
	angleForward := moon.OrbitAngle
	// Feeding negative elapsed time unwinds the accumulator; it does not
	// jump to an absolute epoch.
	sys.Propagate(-1, J2000)
	if ok, _ := anglesEqual(moon.OrbitAngle, angleForward); ok {
		t.Fatal("orbit angle ignored elapsed time")
	}
}

func TestPropagateHierarchy(t *testing.T) {
	sys := testSystem(t)
	sys.Propagate(0, J2000)
	earth, _, _ := sys.BodyByName("Earth")
	moon, _, _ := sys.BodyByName("Moon")
	// The Moon must stay within its (clamped) orbit radius of Earth while
	// both race around the Sun.
	for i := 0; i < 50; i++ {
		sys.Propagate(1, J2000+float64(i+1))
		d := norm(vecSub(moon.Position, earth.Position))
		if !floats.EqualWithinAbs(d, moon.OrbitRadius, moon.OrbitRadius*moon.OrbitEccentricity+1e-9) {
			t.Fatalf("day %d: Moon at %f from Earth, orbit radius %f", i, d, moon.OrbitRadius)
		}
	}
}

func TestTidalLockFacesParent(t *testing.T) {
	sys := testSystem(t)
	sys.Propagate(0, J2000)
	sys.Propagate(1, J2000+1)
	earth, _, _ := sys.BodyByName("Earth")
	moon, _, _ := sys.BodyByName("Moon")
	toParent := vecSub(earth.Position, moon.Position)
	expected := Rad2deg(math.Atan2(toParent[0], toParent[2]))
	if ok, err := anglesEqual(Deg2rad(expected), Deg2rad(moon.SpinDeg)); !ok {
		t.Fatalf("tidally locked moon not facing Earth: %s", err)
	}
}

func TestSpinAccumulates(t *testing.T) {
	sys := testSystem(t)
	sun, _, _ := sys.BodyByName("Sun")
	sys.Propagate(25.0/2, J2000) // half a solar rotation
	if !floats.EqualWithinAbs(sun.SpinDeg, 180, 1e-9) {
		t.Fatalf("Sun spun %f degrees over half a rotation period", sun.SpinDeg)
	}
}

func TestRetrogradeOrbit(t *testing.T) {
	sys := testSystem(t)
	triton, _, _ := sys.BodyByName("Triton")
	sys.Propagate(1, J2000+1)
	if triton.OrbitAngle >= 0 {
		t.Fatalf("Triton's negative period must wind the phase backwards, got %f", triton.OrbitAngle)
	}
}
