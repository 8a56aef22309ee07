package solar

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func flatImage(gray uint8, w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: gray})
		}
	}
	return img
}

func TestHeightmapSphereFlat(t *testing.T) {
	// A flat elevation image displaces every vertex by the same amount, so
	// all vertices lie on one sphere; with zero height scale that sphere is
	// exactly the base radius.
	radius := 2.5
	m := HeightmapSphere(flatImage(90, 16, 8), radius, 0, 12, 6)
	if m.IsEmpty() {
		t.Fatal("flat sphere came back empty")
	}
	for i, v := range m.Vertices {
		if r := norm(v); !floats.EqualWithinAbs(r, radius, 1e-12) {
			t.Fatalf("vertex %d at radius %f, expected %f", i, r, radius)
		}
	}
	// With a height scale, the radius is still constant across vertices.
	m = HeightmapSphere(flatImage(200, 16, 8), radius, 0.1, 12, 6)
	want := norm(m.Vertices[0])
	for i, v := range m.Vertices {
		if r := norm(v); !floats.EqualWithinAbs(r, want, 1e-12) {
			t.Fatalf("vertex %d at radius %f, expected %f", i, r, want)
		}
	}
}

func TestHeightmapSphereShape(t *testing.T) {
	lon, lat := 12, 6
	m := HeightmapSphere(flatImage(128, 16, 8), 1, 0.01, lon, lat)
	wantVerts := (lon + 1) * (lat + 1)
	if len(m.Vertices) != wantVerts {
		t.Fatalf("%d vertices, expected %d", len(m.Vertices), wantVerts)
	}
	if len(m.UVs) != wantVerts {
		t.Fatalf("%d UVs, expected %d", len(m.UVs), wantVerts)
	}
	if len(m.Triangles) != 6*lon*lat {
		t.Fatalf("%d triangle indices, expected %d", len(m.Triangles), 6*lon*lat)
	}
	for _, idx := range m.Triangles {
		if idx < 0 || idx >= wantVerts {
			t.Fatalf("triangle index %d out of range", idx)
		}
	}
	// UVs are the sampling fractions: corners at 0 and 1.
	if m.UVs[0][0] != 0 || m.UVs[0][1] != 0 {
		t.Fatalf("first UV is %+v", m.UVs[0])
	}
	last := m.UVs[len(m.UVs)-1]
	if last[0] != 1 || last[1] != 1 {
		t.Fatalf("last UV is %+v", last)
	}
	// The poles sit on the Y axis.
	if !floats.EqualWithinAbs(m.Vertices[0][0], 0, 1e-12) || !floats.EqualWithinAbs(m.Vertices[0][2], 0, 1e-12) {
		t.Fatalf("south pole off axis: %+v", m.Vertices[0])
	}
}

func TestHeightmapSphereDegenerate(t *testing.T) {
	if !HeightmapSphere(nil, 1, 0.1, 8, 8).IsEmpty() {
		t.Fatal("nil image produced geometry")
	}
	if !HeightmapSphere(flatImage(0, 4, 4), 0, 0.1, 8, 8).IsEmpty() {
		t.Fatal("zero radius produced geometry")
	}
	if !HeightmapSphere(flatImage(0, 4, 4), 1, 0.1, 0, 8).IsEmpty() {
		t.Fatal("zero segments produced geometry")
	}
}

func TestRingAnnulus(t *testing.T) {
	segments := 16
	inner, outer := 1.5, 2.5
	m := RingAnnulus(inner, outer, segments)
	if len(m.Vertices) != 4*segments {
		t.Fatalf("%d vertices, expected %d", len(m.Vertices), 4*segments)
	}
	if len(m.Triangles) != 6*segments {
		t.Fatalf("%d triangle indices, expected %d", len(m.Triangles), 6*segments)
	}
	for i, v := range m.Vertices {
		if v[1] != 0 {
			t.Fatalf("vertex %d off the ring plane: %+v", i, v)
		}
		r := math.Hypot(v[0], v[2])
		u := m.UVs[i][0]
		switch u {
		case 0:
			if !floats.EqualWithinAbs(r, inner, 1e-12) {
				t.Fatalf("inner vertex %d at radius %f", i, r)
			}
		case 1:
			if !floats.EqualWithinAbs(r, outer, 1e-12) {
				t.Fatalf("outer vertex %d at radius %f", i, r)
			}
		default:
			t.Fatalf("vertex %d has radial UV %f", i, u)
		}
	}
}

func TestRingAnnulusDegenerate(t *testing.T) {
	if !RingAnnulus(0, 2, 16).IsEmpty() {
		t.Fatal("zero inner radius produced geometry")
	}
	if !RingAnnulus(1, 2, 0).IsEmpty() {
		t.Fatal("zero segments produced geometry")
	}
	if !RingAnnulus(1, -2, 16).IsEmpty() {
		t.Fatal("negative outer radius produced geometry")
	}
}

func TestOrbitEllipse(t *testing.T) {
	segments := 64
	a, e := 3.0, 0.2
	m := OrbitEllipse(a, e, segments)
	if !m.Lines {
		t.Fatal("orbit path is not a polyline")
	}
	if len(m.Vertices) != segments+1 {
		t.Fatalf("%d vertices, expected %d", len(m.Vertices), segments+1)
	}
	if !vectorsEqual(m.Vertices[0], m.Vertices[segments]) {
		t.Fatal("ellipse is not closed")
	}
	// The path lies in the orbital plane; inclination is an entity
	// transform, not baked into vertices.
	for i, v := range m.Vertices {
		if v[1] != 0 {
			t.Fatalf("vertex %d out of plane: %+v", i, v)
		}
	}
	// The Sun sits at a focus: nearest approach is a(1-e).
	minR := math.Inf(1)
	for _, v := range m.Vertices {
		minR = math.Min(minR, norm(v))
	}
	if !floats.EqualWithinAbs(minR, a*(1-e), 1e-6) {
		t.Fatalf("periapsis %f, expected %f", minR, a*(1-e))
	}
}

func TestOrbitPathFromElements(t *testing.T) {
	els := earthElements()
	segments := 128
	m := OrbitPathFromElements(els, J2000, DefaultAUScale, segments)
	if len(m.Vertices) != segments+1 {
		t.Fatalf("%d vertices, expected %d", len(m.Vertices), segments+1)
	}
	if !vectorsEqual(m.Vertices[0], m.Vertices[segments]) {
		t.Fatal("element path is not closed")
	}
	// The propagated body position must lie on (or numerically near) the
	// path generated from the same elements at the same epoch.
	pos := els.PositionAt(J2000, DefaultAUScale)
	minD := math.Inf(1)
	for _, v := range m.Vertices {
		minD = math.Min(minD, norm(vecSub(v, pos)))
	}
	// Adjacent path samples are ~2π·a/segments apart; the body must be
	// closer to the path than one sample spacing.
	if spacing := 2 * math.Pi * els.A * DefaultAUScale / float64(segments); minD > spacing {
		t.Fatalf("body is %f from its own orbit path (sample spacing %f)", minD, spacing)
	}
}

func TestOrbitPathDegenerate(t *testing.T) {
	if !OrbitPathFromElements(ElementSet{A: 1, E: 1.2}, J2000, 1, 64).IsEmpty() {
		t.Fatal("invalid elements produced geometry")
	}
	if !OrbitPathFromElements(earthElements(), J2000, 1, 0).IsEmpty() {
		t.Fatal("zero segments produced geometry")
	}
	if !OrbitEllipse(-1, 0, 64).IsEmpty() {
		t.Fatal("negative semi-major axis produced geometry")
	}
}
