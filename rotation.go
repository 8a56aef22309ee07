package solar

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// PQW2Ecliptic builds the perifocal to heliocentric-ecliptic rotation for the
// provided inclination, argument of periapsis and longitude of the ascending
// node (all in radians). This is the transpose of a 3-1-3 Euler rotation,
// cf. Schaub and Junkins.
func PQW2Ecliptic(i, ω, Ω float64) *mat64.Dense {
	sΩ, cΩ := math.Sincos(Ω)
	sω, cω := math.Sincos(ω)
	si, ci := math.Sincos(i)
	return mat64.NewDense(3, 3, []float64{
		cΩ*cω - sΩ*sω*ci, -cΩ*sω - sΩ*cω*ci, sΩ * si,
		sΩ*cω + cΩ*sω*ci, -sΩ*sω + cΩ*cω*ci, -cΩ * si,
		sω * si, cω * si, ci})
}

// ecliptic2World reorders a heliocentric-ecliptic vector into the world frame.
// The render frame is Y-up: the ecliptic plane maps to world XZ and the
// ecliptic normal to world Y.
func ecliptic2World(v []float64) []float64 {
	return []float64{v[0], v[2], v[1]}
}

// latLonNormal returns the Y-up world-frame unit normal at the provided
// geodetic latitude and longitude (radians) of a non-rotated body.
func latLonNormal(lat, lon float64) []float64 {
	sLat, cLat := math.Sincos(lat)
	sLon, cLon := math.Sincos(lon)
	return []float64{cLat * cLon, sLat, cLat * sLon}
}

// rotateAboutY rotates a world-frame vector by θ radians about the +Y spin
// axis. Used to carry a surface point along with a body's rotation.
func rotateAboutY(v []float64, θ float64) []float64 {
	s, c := math.Sincos(θ)
	return []float64{v[0]*c - v[2]*s, v[1], v[0]*s + v[2]*c}
}
