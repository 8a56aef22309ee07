package solar

import (
	"time"

	"github.com/soniakeys/meeus/julian"
)

const (
	// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00:00 TT).
	J2000 = 2451545.0
	// JulianCentury is the number of days per Julian century.
	JulianCentury = 36525.0
	// DisplayDateFormat is how HUD timestamps are rendered.
	DisplayDateFormat = "2006-01-02 15:04"
)

// TimeToJD converts a civil timestamp to a Julian Date. Non-UTC timestamps
// are normalized to UTC first, as all element tables are referenced to UTC.
func TimeToJD(dt time.Time) float64 {
	if dt.Location() != time.UTC {
		dt = dt.UTC()
	}
	return julian.TimeToJD(dt)
}

// JDToTime converts a Julian Date back to a civil UTC timestamp. This is the
// display-side inverse of TimeToJD: it truncates below whole seconds, so
// round trips are only exact to about 1e-5 days.
func JDToTime(jd float64) time.Time {
	return julian.JDToTime(jd).Truncate(time.Second).UTC()
}

// AdvanceJD returns the Julian Date moved forward by the given number of
// days. A paused simulation passes zero elapsed days.
func AdvanceJD(jd, elapsedDays float64) float64 {
	return jd + elapsedDays
}

// CenturiesSinceJ2000 returns the number of Julian centuries between the
// provided date and the J2000.0 epoch. Negative before the epoch.
func CenturiesSinceJ2000(jd float64) float64 {
	return (jd - J2000) / JulianCentury
}
