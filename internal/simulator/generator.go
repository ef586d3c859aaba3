// Package simulator produces plausible synthetic vitals for display and
// testing. It stands in for the hardware ingestion path behind the same
// reading contract; swapping in a live feed touches nothing outside
// internal/monitor.
package simulator

import (
	"math"
	"math/rand"
	"time"

	"github.com/vitalsync/vitalsync-api/internal/models"
)

// ECGWindowSize is the number of waveform samples attached to each reading.
const ECGWindowSize = 200

// Generator draws synthetic vital readings. It owns its PRNG and clock so a
// seeded instance is fully deterministic; the zero-configuration constructor
// seeds from the wall clock.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

type Option func(*Generator)

// WithSeed pins the PRNG for reproducible output.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Reading draws one synthetic snapshot. When biasAbnormal is set, roughly 30%
// of readings come from the abnormal distribution; the rest (and all unbiased
// draws) come from the normal one.
func (g *Generator) Reading(biasAbnormal bool) models.VitalReading {
	abnormal := biasAbnormal && g.rng.Float64() < 0.3

	var hr float64
	if abnormal {
		if g.rng.Float64() < 0.5 {
			hr = g.inRange(45, 55)
		} else {
			hr = g.inRange(110, 130)
		}
	} else {
		hr = g.inRange(62, 98)
	}

	var spo2, temp float64
	if abnormal {
		spo2 = g.inRange(88, 94)
		temp = g.inRange(37.8, 39.2)
	} else {
		spo2 = g.inRange(95, 100)
		temp = g.inRange(36.2, 37.4)
	}

	return models.VitalReading{
		HeartRate:   hr,
		SpO2:        spo2,
		Temperature: temp,
		Motion:      g.motion(abnormal),
		ECG:         g.Waveform(ECGWindowSize),
		Timestamp:   g.now(),
	}
}

func (g *Generator) motion(abnormal bool) models.MotionStatus {
	if abnormal && g.rng.Float64() < 0.1 {
		return models.MotionFallDetected
	}
	if g.rng.Float64() < 0.3 {
		return models.MotionActive
	}
	return models.MotionResting
}

// inRange draws uniformly from [min, max] rounded to one decimal place.
func (g *Generator) inRange(min, max float64) float64 {
	return math.Round((min+g.rng.Float64()*(max-min))*10) / 10
}
