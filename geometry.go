package solar

import (
	"fmt"
	"image"
	_ "image/jpeg" // heightmaps ship as JPEG or PNG
	_ "image/png"
	"math"
	"os"
)

// Mesh holds procedurally generated vertex data ready for upload by the
// rendering layer. Triangles index into Vertices; line meshes leave
// Triangles empty and are drawn as a polyline.
type Mesh struct {
	Vertices  [][]float64 // 3 components each
	Triangles []int
	UVs       [][]float64 // 2 components each
	Lines     bool        // polyline instead of triangle list
}

// IsEmpty reports whether the mesh carries no geometry. Degenerate builder
// inputs yield an empty mesh rather than an error: geometry generation must
// never take down the frame loop.
func (m Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// LoadHeightmap reads a greyscale elevation image from disk. A missing or
// corrupt file is a normal condition (the caller substitutes a primitive
// sphere), hence an error return and not a panic.
func LoadHeightmap(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("missing heightmap: %s", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unreadable heightmap %s: %s", path, err)
	}
	return img, nil
}

// sampleGray returns the [0,1] luminance of the pixel at (x, y).
func sampleGray(img image.Image, x, y int) float64 {
	r, g, b, _ := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	// ITU-R 601 luma, matching a greyscale conversion of color inputs.
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 65535.0
}

// HeightmapSphere builds a UV sphere whose vertices are displaced radially by
// an elevation image. The grid is latitude-major and inclusive of both poles
// and the longitude seam; displacement is (sample - 0.5)·2·heightScale so a
// mid-grey image reproduces the base radius exactly.
func HeightmapSphere(img image.Image, radius, heightScale float64, lonSteps, latSteps int) Mesh {
	if img == nil || radius <= 0 || lonSteps <= 0 || latSteps <= 0 {
		return Mesh{}
	}
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	if width == 0 || height == 0 {
		return Mesh{}
	}

	var m Mesh
	for y := 0; y <= latSteps; y++ {
		v := float64(y) / float64(latSteps)
		lat := math.Pi * (v - 0.5)
		sinLat, cosLat := math.Sincos(lat)
		py := int((1 - v) * float64(height-1))
		for x := 0; x <= lonSteps; x++ {
			u := float64(x) / float64(lonSteps)
			lon := 2 * math.Pi * (u - 0.5)
			px := int(u * float64(width-1))
			displacement := (sampleGray(img, px, py) - 0.5) * 2 * heightScale
			r := radius + displacement
			sinLon, cosLon := math.Sincos(lon)
			m.Vertices = append(m.Vertices, []float64{
				r * cosLat * cosLon,
				r * sinLat,
				r * cosLat * sinLon,
			})
			m.UVs = append(m.UVs, []float64{u, v})
		}
	}
	for y := 0; y < latSteps; y++ {
		for x := 0; x < lonSteps; x++ {
			i := y*(lonSteps+1) + x
			i2 := i + lonSteps + 1
			m.Triangles = append(m.Triangles, i, i2, i+1, i+1, i2, i2+1)
		}
	}
	return m
}

// RingAnnulus builds a flat annulus in the XZ plane as one quad per segment.
// U runs 0→1 across the radial edge so radial ring textures map directly;
// V runs along the angular parameter.
func RingAnnulus(innerRadius, outerRadius float64, segments int) Mesh {
	if innerRadius <= 0 || outerRadius <= 0 || segments <= 0 {
		return Mesh{}
	}
	var m Mesh
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices,
			[]float64{c0 * innerRadius, 0, s0 * innerRadius},
			[]float64{c0 * outerRadius, 0, s0 * outerRadius},
			[]float64{c1 * outerRadius, 0, s1 * outerRadius},
			[]float64{c1 * innerRadius, 0, s1 * innerRadius})
		m.Triangles = append(m.Triangles, base, base+1, base+2, base, base+2, base+3)
		v0 := float64(i) / float64(segments)
		v1 := float64(i+1) / float64(segments)
		m.UVs = append(m.UVs, []float64{0, v0}, []float64{1, v0}, []float64{1, v1}, []float64{0, v1})
	}
	return m
}

// OrbitEllipse builds a closed polyline of a fixed-period orbit in its own
// orbital plane: the inclination rotation is applied to the holding entity's
// transform, not baked into the vertices.
func OrbitEllipse(semiMajor, eccentricity float64, segments int) Mesh {
	if semiMajor <= 0 || segments <= 0 || eccentricity < 0 || eccentricity >= 1 {
		return Mesh{}
	}
	b := semiMajor * math.Sqrt(1-eccentricity*eccentricity)
	var m Mesh
	m.Lines = true
	for i := 0; i <= segments; i++ {
		t := 2 * math.Pi * float64(i) / float64(segments)
		sinT, cosT := math.Sincos(t)
		m.Vertices = append(m.Vertices, []float64{
			semiMajor*cosT - semiMajor*eccentricity,
			0,
			b * sinT,
		})
	}
	return m
}

// OrbitPathFromElements traces one full revolution of an element-set orbit at
// the secular epoch jd, re-using the exact perifocal→world math of the
// propagator so path and body position never diverge. The path slowly
// deforms with the secular terms, so callers rebuild it every frame.
func OrbitPathFromElements(s ElementSet, jd, auScale float64, segments int) Mesh {
	if segments <= 0 || s.Validate() != nil {
		return Mesh{}
	}
	inst := s.at(jd, auScale)
	rot := PQW2Ecliptic(inst.i, inst.ω, inst.Ω)
	var m Mesh
	m.Lines = true
	for i := 0; i <= segments; i++ {
		M := 2 * math.Pi * float64(i) / float64(segments)
		E := EccentricAnomaly(M, inst.e, ElementsKeplerIters)
		xp, yp := perifocalPosition(inst.a, inst.e, E)
		m.Vertices = append(m.Vertices, ecliptic2World(MxV33(rot, []float64{xp, yp, 0})))
	}
	return m
}
