// Package lunar converts points in time into a fractional lunar phase using a
// linear synodic-period model anchored at a fixed reference new moon.
//
// The model ignores the Moon's orbital eccentricity, so the result can drift
// from the true phase by up to about a day. That is enough to pick an image.
package lunar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// SynodicPeriod is the mean time between successive new moons, in days.
const SynodicPeriod = 29.530588861

// Epoch is the reference point of the phase model: phase 0 at UTC midnight, 2001-01-01.
var Epoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

var epochJD = julian.TimeToJD(Epoch)

var phaseNames = [8]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Third Quarter",
	"Waning Crescent",
}

// FractionalPhase returns the position of t within the synodic cycle in [0,1).
// 0 is new moon and 0.5 is full moon. Times before Epoch are handled with a
// floor-based modulo, so they land in the same range.
func FractionalPhase(t time.Time) float64 {
	days := julian.TimeToJD(t.UTC()) - epochJD
	raw := days / SynodicPeriod
	phase := raw - math.Floor(raw)
	// raw slightly below an integer can round up to exactly 1.
	if phase >= 1 {
		return 0
	}
	return phase
}

// Clamp clips phase into [0,1]. NaN is treated as new moon.
func Clamp(phase float64) float64 {
	if !(phase > 0) {
		return 0
	}
	if phase > 1 {
		return 1
	}
	return phase
}

// PhaseAngle maps a phase onto [0, 2π). A phase of 1 wraps to 0.
func PhaseAngle(phase float64) unit.Angle {
	p := Clamp(phase)
	if p >= 1 {
		p = 0
	}
	return unit.Angle(p * 2 * math.Pi)
}

// Illumination returns the illuminated fraction of the disk for phase,
// 0 at new moon and 1 at full moon.
func Illumination(phase float64) float64 {
	return (1 - PhaseAngle(phase).Cos()) / 2
}

// Age returns the days elapsed since the last new moon.
func Age(phase float64) float64 {
	return PhaseAngle(phase).Rad() / (2 * math.Pi) * SynodicPeriod
}

// IsWaxing reports whether the lit part of the disk is growing.
func IsWaxing(phase float64) bool {
	p := Clamp(phase)
	return p > 0 && p < 0.5
}

// Name returns the conventional eight-phase name nearest to phase.
func Name(phase float64) string {
	idx := int(math.Floor(Clamp(phase)*8+0.5)) % len(phaseNames)
	return phaseNames[idx]
}
