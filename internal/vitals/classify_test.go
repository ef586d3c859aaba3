package vitals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitalsync/vitalsync-api/internal/models"
)

func reading(hr, spo2, temp float64, motion models.MotionStatus) models.VitalReading {
	return models.VitalReading{
		HeartRate:   hr,
		SpO2:        spo2,
		Temperature: temp,
		Motion:      motion,
	}
}

func TestClassifyNormal(t *testing.T) {
	th := DefaultThresholds()

	cases := []models.VitalReading{
		reading(80, 96, 36.8, models.MotionActive),
		reading(72, 98, 37.0, models.MotionResting),
		// Lower bounds are inclusive on the normal side.
		reading(60, 95, 36.1, models.MotionResting),
		// Upper bounds likewise.
		reading(100, 100, 37.5, models.MotionActive),
	}
	for _, r := range cases {
		assert.Equal(t, models.SeverityNormal, Classify(r, th), "reading %+v", r)
	}
}

func TestClassifyWarning(t *testing.T) {
	th := DefaultThresholds()

	cases := []models.VitalReading{
		reading(59.9, 98, 36.8, models.MotionResting),
		reading(100.1, 98, 36.8, models.MotionResting),
		reading(80, 94.9, 36.8, models.MotionResting),
		reading(80, 98, 36.0, models.MotionResting),
		reading(80, 98, 37.6, models.MotionResting),
		// criticalLow is exclusive-below: exactly 50 is still warning.
		reading(50, 98, 36.8, models.MotionResting),
	}
	for _, r := range cases {
		assert.Equal(t, models.SeverityWarning, Classify(r, th), "reading %+v", r)
	}
}

func TestClassifyCritical(t *testing.T) {
	th := DefaultThresholds()

	cases := []models.VitalReading{
		reading(49.9, 98, 36.8, models.MotionResting),
		reading(120.1, 98, 36.8, models.MotionResting),
		reading(80, 89.9, 36.8, models.MotionResting),
		reading(80, 98, 38.6, models.MotionResting),
		reading(45, 99, 37.0, models.MotionResting),
	}
	for _, r := range cases {
		assert.Equal(t, models.SeverityCritical, Classify(r, th), "reading %+v", r)
	}
}

func TestClassifyFallAlwaysCritical(t *testing.T) {
	th := DefaultThresholds()

	// Otherwise perfectly normal vitals.
	r := reading(80, 98, 36.8, models.MotionFallDetected)
	assert.Equal(t, models.SeverityCritical, Classify(r, th))

	// And with out-of-range values the answer does not change.
	r = reading(0, 0, 0, models.MotionFallDetected)
	assert.Equal(t, models.SeverityCritical, Classify(r, th))
}

func TestClassifyCriticalBeatsWarning(t *testing.T) {
	th := DefaultThresholds()

	// Critical heart rate alongside a merely-low temperature: critical wins.
	r := reading(45, 98, 35.5, models.MotionResting)
	assert.Equal(t, models.SeverityCritical, Classify(r, th))
}

func TestClassifyIsDeterministic(t *testing.T) {
	th := DefaultThresholds()
	r := reading(63.2, 95.5, 37.2, models.MotionActive)

	first := Classify(r, th)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(r, th))
	}
}

func TestSeverityOrdering(t *testing.T) {
	assert.Greater(t, models.SeverityCritical.Rank(), models.SeverityWarning.Rank())
	assert.Greater(t, models.SeverityWarning.Rank(), models.SeverityNormal.Rank())
	assert.Less(t, models.Severity("bogus").Rank(), models.SeverityNormal.Rank())
}
