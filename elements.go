package solar

import (
	"fmt"
	"math"
)

// ElementSet holds six J2000 orbital elements and their secular rates per
// Julian century, as published in the NASA/JPL approximate ephemerides.
// Semi-major axis is in AU, angles in degrees.
type ElementSet struct {
	A, ADot float64 // semi-major axis (AU, AU/century)
	E, EDot float64 // eccentricity
	I, IDot float64 // inclination (deg)
	Ω, ΩDot float64 // longitude of the ascending node (deg)
	W, WDot float64 // argument of periapsis (deg)
	M, MDot float64 // mean anomaly at epoch (deg)
}

// Validate returns an error when the element set cannot be propagated.
// Rates are not checked: a secular drift across e=1 is outside the supported
// time range by construction.
func (s ElementSet) Validate() error {
	if s.E >= 1 || s.E < 0 {
		return fmt.Errorf("eccentricity %f out of supported range [0,1)", s.E)
	}
	if s.A <= 0 {
		return fmt.Errorf("non-positive semi-major axis %f", s.A)
	}
	return nil
}

// instantaneous describes the element set linearly extrapolated to a given
// instant, angles already in radians and the semi-major axis in world units.
type instantaneous struct {
	a, e, i, Ω, ω, M float64
}

// at extrapolates the secular terms to the provided Julian Date.
// auScale converts AU to world units.
func (s ElementSet) at(jd, auScale float64) instantaneous {
	T := CenturiesSinceJ2000(jd)
	return instantaneous{
		a: (s.A + s.ADot*T) * auScale,
		e: s.E + s.EDot*T,
		i: (s.I + s.IDot*T) * deg2rad,
		Ω: (s.Ω + s.ΩDot*T) * deg2rad,
		ω: (s.W + s.WDot*T) * deg2rad,
		M: math.Mod((s.M+s.MDot*T)*deg2rad, 2*math.Pi),
	}
}

// PositionAt returns the parent-centric world-frame position for this element
// set at the given Julian Date. The computation is stateless: identical
// inputs yield bit-identical outputs regardless of call history.
func (s ElementSet) PositionAt(jd, auScale float64) []float64 {
	inst := s.at(jd, auScale)
	E := EccentricAnomaly(inst.M, inst.e, ElementsKeplerIters)
	xp, yp := perifocalPosition(inst.a, inst.e, E)
	ecl := MxV33(PQW2Ecliptic(inst.i, inst.ω, inst.Ω), []float64{xp, yp, 0})
	return ecliptic2World(ecl)
}
