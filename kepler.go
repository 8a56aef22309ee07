package solar

import (
	"fmt"
	"math"
)

// Newton iteration budgets of the two propagation paths. Defaults match the
// reference behavior but may be raised through the configuration file; they
// are inputs to the solver, not convergence guarantees.
var (
	IncrementalKeplerIters = 5
	ElementsKeplerIters    = 6
)

// EccentricAnomaly solves Kepler's equation M = E - e·sin(E) for E via
// Newton-Raphson, starting from E₀ = M and running a fixed number of
// iterations with no convergence check. For the eccentricities in the body
// catalog (e ≤ 0.25) this reaches machine precision well within the budget;
// it does *not* hold as e approaches 1.
// Panics on e ≥ 1: parabolic and hyperbolic orbits are not supported.
func EccentricAnomaly(meanAnomaly, e float64, iterations int) float64 {
	if e >= 1 || e < 0 || math.IsNaN(e) {
		panic(fmt.Errorf("eccentricity %f out of supported range [0,1)", e))
	}
	E := meanAnomaly
	for it := 0; it < iterations; it++ {
		E -= (E - e*math.Sin(E) - meanAnomaly) / (1 - e*math.Cos(E))
	}
	return E
}

// perifocalPosition returns the in-plane coordinates of an orbit of semi-major
// axis a and eccentricity e at eccentric anomaly E.
func perifocalPosition(a, e, E float64) (x, y float64) {
	sinE, cosE := math.Sincos(E)
	x = a * (cosE - e)
	y = a * math.Sqrt(1-e*e) * sinE
	return
}
