package solar

import (
	"math"
	"math/rand"
)

// AUKilometers is one astronomical unit in kilometers.
const AUKilometers = 1.49597870700e8

// DefaultAUScale is the default number of world units per astronomical unit.
const DefaultAUScale = 5.0

// beltSeed makes the asteroid belt reproducible across runs.
const beltSeed = 7

/* Body definitions. Orbital element sets and secular rates are the NASA/JPL
approximate ephemerides for the J2000 epoch; the simpler radius, period and
eccentricity fields back the fixed-period fallback and the minimum orbit
radius bookkeeping. */

// SunDef is the root body.
var SunDef = BodyDef{
	Name:               "Sun",
	Radius:             1.8,
	RotationPeriodDays: 25.0,
	Color:              [3]uint8{255, 200, 80},
	Texture:            "textures/2k_sun.jpg",
}

// PlanetDefs are the eight planets, all element-set driven.
var PlanetDefs = []BodyDef{
	{
		Name: "Mercury", Radius: 0.18, Parent: "Sun",
		OrbitRadiusAU: 0.387, OrbitEccentricity: 0.206,
		OrbitPeriodDays: 88.0, RotationPeriodDays: 58.65,
		Color: [3]uint8{180, 170, 160}, Texture: "textures/2k_mercury.jpg",
		Elements: &ElementSet{
			A: 0.38709927, ADot: 0.00000037,
			E: 0.20563593, EDot: 0.00001906,
			I: 7.00497902, IDot: -0.00594749,
			Ω: 48.33076593, ΩDot: -0.12534081,
			W: 29.124279, WDot: 0.010000,
			M: 168.6562, MDot: 149472.6741,
		},
	},
	{
		Name: "Venus", Radius: 0.28, Parent: "Sun",
		OrbitRadiusAU: 0.723, OrbitEccentricity: 0.007,
		OrbitPeriodDays: 224.7, RotationPeriodDays: -243.02,
		Color: [3]uint8{230, 200, 150}, Texture: "textures/2k_venus_surface.jpg",
		Elements: &ElementSet{
			A: 0.72333566, ADot: 0.00000390,
			E: 0.00677672, EDot: -0.00004107,
			I: 3.39467605, IDot: -0.00078890,
			Ω: 76.67984255, ΩDot: -0.27769418,
			W: 54.922624, WDot: 0.013000,
			M: 48.0052, MDot: 58517.8156,
		},
	},
	{
		Name: "Earth", Radius: 0.3, Parent: "Sun",
		OrbitRadiusAU: 1.000, OrbitEccentricity: 0.017,
		OrbitPeriodDays: 365.2, RotationPeriodDays: 0.996,
		Color: [3]uint8{90, 140, 240}, Texture: "textures/2k_earth_daymap.jpg",
		Elements: &ElementSet{
			A: 1.00000261, ADot: 0.00000562,
			E: 0.01671123, EDot: -0.00004392,
			I: -0.00001531, IDot: -0.01294668,
			Ω: 0.0, ΩDot: 0.0,
			W: 102.93768193, WDot: 0.32327364,
			M: 357.51716, MDot: 35999.37328,
		},
	},
	{
		Name: "Mars", Radius: 0.22, Parent: "Sun",
		OrbitRadiusAU: 1.524, OrbitEccentricity: 0.094,
		OrbitPeriodDays: 687.0, RotationPeriodDays: 1.025,
		Color: [3]uint8{210, 120, 90}, Texture: "textures/2k_mars.jpg",
		Elements: &ElementSet{
			A: 1.52371034, ADot: 0.00001847,
			E: 0.09339410, EDot: 0.00007882,
			I: 1.84969142, IDot: -0.00813131,
			Ω: 49.55953891, ΩDot: -0.29257343,
			W: 286.537, WDot: 0.007000,
			M: 19.41248, MDot: 19140.30268,
		},
	},
	{
		Name: "Jupiter", Radius: 0.7, Parent: "Sun",
		OrbitRadiusAU: 5.204, OrbitEccentricity: 0.049,
		OrbitPeriodDays: 4331, RotationPeriodDays: 0.4125,
		Color: [3]uint8{210, 160, 110}, Texture: "textures/2k_jupiter.jpg",
		Elements: &ElementSet{
			A: 5.20288700, ADot: -0.00011607,
			E: 0.04838624, EDot: -0.00013253,
			I: 1.30439695, IDot: -0.00183714,
			Ω: 100.47390909, ΩDot: 0.20469106,
			W: 273.867, WDot: 0.017000,
			M: 20.0202, MDot: 3034.903717,
		},
	},
	{
		Name: "Saturn", Radius: 0.6, Parent: "Sun",
		OrbitRadiusAU: 9.58, OrbitEccentricity: 0.052,
		OrbitPeriodDays: 10747, RotationPeriodDays: 0.4458,
		Color: [3]uint8{220, 200, 140}, Texture: "textures/2k_saturn.jpg",
		Elements: &ElementSet{
			A: 9.53667594, ADot: -0.00125060,
			E: 0.05386179, EDot: -0.00050991,
			I: 2.48599187, IDot: 0.00193609,
			Ω: 113.66242448, ΩDot: -0.28867794,
			W: 339.392, WDot: 0.002000,
			M: 317.0207, MDot: 1222.114947,
		},
	},
	{
		Name: "Uranus", Radius: 0.5, Parent: "Sun",
		OrbitRadiusAU: 19.16, OrbitEccentricity: 0.047,
		OrbitPeriodDays: 30589, RotationPeriodDays: -0.7167,
		Color: [3]uint8{170, 220, 220}, Texture: "textures/2k_uranus.jpg",
		Elements: &ElementSet{
			A: 19.18916464, ADot: -0.00196176,
			E: 0.04725744, EDot: -0.00004397,
			I: 0.77263783, IDot: -0.00242939,
			Ω: 74.01692503, ΩDot: 0.04240589,
			W: 96.998857, WDot: 0.002000,
			M: 142.2386, MDot: 428.495125,
		},
	},
	{
		Name: "Neptune", Radius: 0.5, Parent: "Sun",
		OrbitRadiusAU: 30.17, OrbitEccentricity: 0.010,
		OrbitPeriodDays: 59800, RotationPeriodDays: 0.6708,
		Color: [3]uint8{90, 120, 220}, Texture: "textures/2k_neptune.jpg",
		Elements: &ElementSet{
			A: 30.06992276, ADot: 0.00026291,
			E: 0.00859048, EDot: 0.00005105,
			I: 1.77004347, IDot: 0.00035372,
			Ω: 131.78422574, ΩDot: -0.00508664,
			W: 273.187, WDot: 0.000000,
			M: 256.228, MDot: 218.465153,
		},
	},
}

// MoonDef is Earth's Moon, the only moon with a non-trivial eccentricity and
// inclination in the catalog.
var MoonDef = BodyDef{
	Name: "Moon", Radius: 0.1, VisualScale: 0.6, Parent: "Earth",
	OrbitRadiusAU: 0.08, OrbitEccentricity: 0.0549, OrbitInclinationDeg: 5.145,
	OrbitPeriodDays: 27.3217,
	Color:           [3]uint8{200, 200, 210}, Texture: "textures/2k_moon.jpg",
	TidallyLocked: true, IsMoon: true,
}

// MinorMoonDefs are the smaller moons, all tidally locked fixed-period
// orbiters. Triton's negative period encodes its retrograde revolution.
var MinorMoonDefs = []BodyDef{
	{Name: "Phobos", Parent: "Mars", OrbitRadiusAU: 0.00006, OrbitPeriodDays: 0.32, Radius: 0.06, OrbitInclinationDeg: 1.093, Color: [3]uint8{160, 150, 140}},
	{Name: "Deimos", Parent: "Mars", OrbitRadiusAU: 0.00016, OrbitPeriodDays: 1.26, Radius: 0.05, OrbitInclinationDeg: 0.93, Color: [3]uint8{170, 160, 150}},
	{Name: "Io", Parent: "Jupiter", OrbitRadiusAU: 0.0028, OrbitPeriodDays: 1.76914, Radius: 0.09, OrbitInclinationDeg: 0.04, Color: [3]uint8{220, 200, 120}},
	{Name: "Europa", Parent: "Jupiter", OrbitRadiusAU: 0.0045, OrbitPeriodDays: 3.55118, Radius: 0.08, OrbitInclinationDeg: 0.47, Color: [3]uint8{200, 210, 230}},
	{Name: "Ganymede", Parent: "Jupiter", OrbitRadiusAU: 0.0071, OrbitPeriodDays: 7.15455, Radius: 0.11, OrbitInclinationDeg: 0.18, Color: [3]uint8{190, 180, 170}},
	{Name: "Callisto", Parent: "Jupiter", OrbitRadiusAU: 0.0126, OrbitPeriodDays: 16.68902, Radius: 0.1, OrbitInclinationDeg: 0.19, Color: [3]uint8{150, 140, 130}},
	{Name: "Titan", Parent: "Saturn", OrbitRadiusAU: 0.0082, OrbitPeriodDays: 15.94542, Radius: 0.11, OrbitInclinationDeg: 0.30, Color: [3]uint8{210, 170, 120}},
	{Name: "Enceladus", Parent: "Saturn", OrbitRadiusAU: 0.0016, OrbitPeriodDays: 1.37022, Radius: 0.05, OrbitInclinationDeg: 0.03, Color: [3]uint8{230, 230, 235}},
	{Name: "Rhea", Parent: "Saturn", OrbitRadiusAU: 0.0035, OrbitPeriodDays: 4.51750, Radius: 0.08, OrbitInclinationDeg: 0.35, Color: [3]uint8{200, 200, 205}},
	{Name: "Iapetus", Parent: "Saturn", OrbitRadiusAU: 0.0238, OrbitPeriodDays: 79.33018, Radius: 0.09, OrbitInclinationDeg: 18.5, Color: [3]uint8{170, 160, 150}},
	{Name: "Dione", Parent: "Saturn", OrbitRadiusAU: 0.0025, OrbitPeriodDays: 2.74, Radius: 0.07, OrbitInclinationDeg: 0.01, Color: [3]uint8{210, 210, 215}},
	{Name: "Tethys", Parent: "Saturn", OrbitRadiusAU: 0.0020, OrbitPeriodDays: 1.89, Radius: 0.06, OrbitInclinationDeg: 1.10, Color: [3]uint8{210, 210, 220}},
	{Name: "Titania", Parent: "Uranus", OrbitRadiusAU: 0.0029, OrbitPeriodDays: 8.71, Radius: 0.09, OrbitInclinationDeg: 0.08, Color: [3]uint8{180, 170, 160}},
	{Name: "Oberon", Parent: "Uranus", OrbitRadiusAU: 0.0039, OrbitPeriodDays: 13.46, Radius: 0.09, OrbitInclinationDeg: 0.07, Color: [3]uint8{170, 160, 150}},
	{Name: "Ariel", Parent: "Uranus", OrbitRadiusAU: 0.0013, OrbitPeriodDays: 2.52, Radius: 0.07, OrbitInclinationDeg: 0.04, Color: [3]uint8{200, 190, 180}},
	{Name: "Umbriel", Parent: "Uranus", OrbitRadiusAU: 0.0018, OrbitPeriodDays: 4.14, Radius: 0.07, OrbitInclinationDeg: 0.13, Color: [3]uint8{150, 140, 130}},
	{Name: "Miranda", Parent: "Uranus", OrbitRadiusAU: 0.0009, OrbitPeriodDays: 1.41, Radius: 0.05, OrbitInclinationDeg: 4.34, Color: [3]uint8{190, 180, 170}},
	{Name: "Triton", Parent: "Neptune", OrbitRadiusAU: 0.0024, OrbitPeriodDays: -5.87685, Radius: 0.1, OrbitInclinationDeg: 157.345, Color: [3]uint8{200, 210, 220}},
	{Name: "Proteus", Parent: "Neptune", OrbitRadiusAU: 0.0012, OrbitPeriodDays: 1.12, Radius: 0.06, OrbitInclinationDeg: 0.04, Color: [3]uint8{150, 140, 130}},
}

// RingDef describes a planetary ring annulus. Radii are multiples of the
// parent's visual radius; the tilt is applied to the ring entity transform.
type RingDef struct {
	Parent    string
	InnerMult float64
	OuterMult float64
	TiltDeg   float64
	Color     [4]uint8 // RGBA
	Texture   string
	Segments  int
}

// RingDefs are the four ring systems.
var RingDefs = []RingDef{
	{Parent: "Jupiter", InnerMult: 1.2, OuterMult: 1.5, TiltDeg: 3.13, Color: [4]uint8{200, 190, 170, 40}, Segments: 128},
	{Parent: "Saturn", InnerMult: 1.3, OuterMult: 2.6, TiltDeg: 26.73, Color: [4]uint8{255, 255, 255, 255}, Texture: "textures/2k_saturn_ring_alpha.png", Segments: 128},
	{Parent: "Uranus", InnerMult: 1.2, OuterMult: 1.7, TiltDeg: 97.77, Color: [4]uint8{190, 210, 210, 50}, Segments: 128},
	{Parent: "Neptune", InnerMult: 1.3, OuterMult: 1.8, TiltDeg: 28.32, Color: [4]uint8{170, 180, 200, 40}, Segments: 128},
}

// Asteroid is a static minor body in the main belt. Asteroids never
// propagate; they only participate in camera collision.
type Asteroid struct {
	Position []float64
	Size     float64
}

// GenerateBelt returns count asteroids scattered between 2.2 and 3.2 AU with
// a small vertical spread, deterministically seeded.
func GenerateBelt(count int, auScale float64) []Asteroid {
	rng := rand.New(rand.NewSource(beltSeed))
	belt := make([]Asteroid, 0, count)
	for i := 0; i < count; i++ {
		radiusAU := 2.2 + rng.Float64()*(3.2-2.2)
		angle := rng.Float64() * 2 * math.Pi
		height := -0.05 + rng.Float64()*0.1
		size := 0.015 + rng.Float64()*(0.04-0.015)
		sinA, cosA := math.Sincos(angle)
		belt = append(belt, Asteroid{
			Position: []float64{
				cosA * radiusAU * auScale,
				height * auScale,
				sinA * radiusAU * auScale,
			},
			Size: size,
		})
	}
	return belt
}

// AllDefs returns the complete static catalog in construction order (parents
// strictly before children).
func AllDefs() []BodyDef {
	defs := make([]BodyDef, 0, 2+len(PlanetDefs)+len(MinorMoonDefs))
	defs = append(defs, SunDef)
	defs = append(defs, PlanetDefs...)
	defs = append(defs, MoonDef)
	for _, d := range MinorMoonDefs {
		d.VisualScale = 0.6
		d.TidallyLocked = true
		d.IsMoon = true
		defs = append(defs, d)
	}
	return defs
}
