// Package alerts turns classified patient readings into a prioritized alert
// list. Deriving is a pure transformation; persisting and dispatching alerts
// are separate concerns.
package alerts

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vitalsync/vitalsync-api/internal/models"
	"github.com/vitalsync/vitalsync-api/internal/vitals"
)

// PatientVitals pairs one patient's identity with their latest reading.
type PatientVitals struct {
	PatientID string
	Name      string
	Room      string
	Reading   models.VitalReading
}

const (
	criticalJitter = 10 * time.Minute
	warningJitter  = 20 * time.Minute
)

// Deriver scans patient readings and emits alert events for every non-normal
// classification.
type Deriver struct {
	thresholds vitals.Thresholds
	mu         sync.Mutex // guards rng
	rng        *rand.Rand
	now        func() time.Time
}

type Option func(*Deriver)

// WithSeed pins the jitter PRNG for reproducible output.
func WithSeed(seed int64) Option {
	return func(d *Deriver) {
		d.rng = rand.New(rand.NewSource(seed))
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Deriver) {
		d.now = now
	}
}

func NewDeriver(thresholds vitals.Thresholds, opts ...Option) *Deriver {
	d := &Deriver{
		thresholds: thresholds,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Derive classifies each patient's reading and returns alerts for warning and
// critical tiers, newest first. Alert timestamps are jittered into the recent
// past (10 minutes for critical, 20 for warning) to simulate staggered
// detection; the jitter is presentational, not a detection-latency record.
func (d *Deriver) Derive(patients []PatientVitals) []models.AlertEvent {
	now := d.now()
	var events []models.AlertEvent
	for _, p := range patients {
		severity := vitals.Classify(p.Reading, d.thresholds)
		if severity == models.SeverityNormal {
			continue
		}

		event := models.AlertEvent{
			ID:          uuid.New().String(),
			PatientID:   p.PatientID,
			PatientName: p.Name,
			Level:       severity,
		}
		switch severity {
		case models.SeverityCritical:
			event.Type = models.AlertTypeCritical
			if p.Reading.Motion == models.MotionFallDetected {
				event.Message = fmt.Sprintf("Fall detected for %s in Room %s", p.Name, p.Room)
			} else {
				event.Message = fmt.Sprintf("Critical vitals detected for %s — HR: %v, SpO₂: %v%%",
					p.Name, p.Reading.HeartRate, p.Reading.SpO2)
			}
			event.CreatedAt = d.jitter(now, criticalJitter)
		default:
			event.Type = models.AlertTypeWarning
			event.Message = fmt.Sprintf("Abnormal vitals for %s — HR: %v, SpO₂: %v%%",
				p.Name, p.Reading.HeartRate, p.Reading.SpO2)
			event.CreatedAt = d.jitter(now, warningJitter)
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events
}

func (d *Deriver) jitter(now time.Time, window time.Duration) time.Time {
	d.mu.Lock()
	offset := d.rng.Float64()
	d.mu.Unlock()
	return now.Add(-time.Duration(offset * float64(window)))
}
