package solar

import "time"

const (
	// DefaultTimeScale is the default simulated days elapsing per real second.
	DefaultTimeScale = 12.0
	// TimeScaleStep is the multiplier applied on speed up/slow down requests.
	TimeScaleStep = 1.25
)

// SimClock is the process-wide simulation clock: a single real-valued Julian
// Date advanced by scaled wall-clock time. It is monotonic under a positive
// time scale and frozen while paused.
type SimClock struct {
	JD        float64 // current Julian Date
	TimeScale float64 // simulated days per real second
	Paused    bool
}

// NewSimClock starts a clock at the given civil timestamp with the default
// time scale.
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{JD: TimeToJD(start), TimeScale: DefaultTimeScale}
}

// Advance moves the clock forward by elapsedRealSeconds of wall time and
// returns the simulated days which elapsed. Pausing yields zero elapsed days
// rather than skipping the call, so dependent systems still re-evaluate
// against unchanged inputs.
func (c *SimClock) Advance(elapsedRealSeconds float64) (elapsedDays float64) {
	if c.Paused {
		return 0
	}
	elapsedDays = elapsedRealSeconds * c.TimeScale
	c.JD = AdvanceJD(c.JD, elapsedDays)
	return
}

// SpeedUp multiplies the time scale by TimeScaleStep.
func (c *SimClock) SpeedUp() {
	c.TimeScale *= TimeScaleStep
}

// SlowDown divides the time scale by TimeScaleStep.
func (c *SimClock) SlowDown() {
	c.TimeScale /= TimeScaleStep
}

// ResetScale restores the default time scale.
func (c *SimClock) ResetScale() {
	c.TimeScale = DefaultTimeScale
}

// TogglePause flips the paused state.
func (c *SimClock) TogglePause() {
	c.Paused = !c.Paused
}

// Now returns the current simulated instant as a civil UTC timestamp.
func (c *SimClock) Now() time.Time {
	return JDToTime(c.JD)
}
