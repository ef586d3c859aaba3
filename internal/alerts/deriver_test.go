package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalsync/vitalsync-api/internal/models"
	"github.com/vitalsync/vitalsync-api/internal/vitals"
)

func patientWith(id, name, room string, hr, spo2, temp float64, motion models.MotionStatus) PatientVitals {
	return PatientVitals{
		PatientID: id,
		Name:      name,
		Room:      room,
		Reading: models.VitalReading{
			HeartRate:   hr,
			SpO2:        spo2,
			Temperature: temp,
			Motion:      motion,
			Timestamp:   time.Now(),
		},
	}
}

func newTestDeriver() *Deriver {
	return NewDeriver(vitals.DefaultThresholds(), WithSeed(1))
}

func TestDeriveSkipsNormalPatients(t *testing.T) {
	d := newTestDeriver()

	events := d.Derive([]PatientVitals{
		patientWith("P-001", "Rajesh Kumar", "101", 80, 96, 36.8, models.MotionActive),
		patientWith("P-002", "Priya Sharma", "102", 72, 98, 37.0, models.MotionResting),
	})
	assert.Empty(t, events)
}

func TestDeriveCriticalVitalsMessage(t *testing.T) {
	d := newTestDeriver()

	events := d.Derive([]PatientVitals{
		patientWith("P-001", "Arun Patel", "103", 45, 91, 37.0, models.MotionResting),
	})
	require.Len(t, events, 1)
	assert.Equal(t, models.SeverityCritical, events[0].Level)
	assert.Equal(t, models.AlertTypeCritical, events[0].Type)
	assert.Equal(t, "Critical vitals detected for Arun Patel — HR: 45, SpO₂: 91%", events[0].Message)
	assert.Equal(t, "P-001", events[0].PatientID)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Resolved)
}

func TestDeriveFallMessage(t *testing.T) {
	d := newTestDeriver()

	events := d.Derive([]PatientVitals{
		patientWith("P-003", "Meena Devi", "104", 80, 98, 36.8, models.MotionFallDetected),
	})
	require.Len(t, events, 1)
	assert.Equal(t, models.SeverityCritical, events[0].Level)
	assert.Equal(t, "Fall detected for Meena Devi in Room 104", events[0].Message)
}

func TestDeriveWarningMessage(t *testing.T) {
	d := newTestDeriver()

	events := d.Derive([]PatientVitals{
		patientWith("P-004", "Vikram Singh", "105", 105, 96, 36.8, models.MotionActive),
	})
	require.Len(t, events, 1)
	assert.Equal(t, models.SeverityWarning, events[0].Level)
	assert.Equal(t, models.AlertTypeWarning, events[0].Type)
	assert.Equal(t, "Abnormal vitals for Vikram Singh — HR: 105, SpO₂: 96%", events[0].Message)
}

func TestDeriveSortsNewestFirst(t *testing.T) {
	d := newTestDeriver()

	var patients []PatientVitals
	for i := 0; i < 8; i++ {
		patients = append(patients,
			patientWith("P-A", "A", "101", 45, 98, 36.8, models.MotionResting),
			patientWith("P-B", "B", "102", 105, 96, 36.8, models.MotionResting),
		)
	}
	events := d.Derive(patients)
	require.Len(t, events, 16)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].CreatedAt.After(events[i-1].CreatedAt))
	}
}

func TestDeriveJitterWindows(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	d := NewDeriver(vitals.DefaultThresholds(), WithSeed(2), WithClock(func() time.Time { return now }))

	events := d.Derive([]PatientVitals{
		patientWith("P-001", "A", "101", 45, 98, 36.8, models.MotionResting),
		patientWith("P-002", "B", "102", 105, 96, 36.8, models.MotionResting),
	})
	require.Len(t, events, 2)
	for _, e := range events {
		window := warningJitter
		if e.Level == models.SeverityCritical {
			window = criticalJitter
		}
		assert.False(t, e.CreatedAt.After(now))
		assert.False(t, e.CreatedAt.Before(now.Add(-window)))
	}
}

func TestDeriveLevelMatchesClassification(t *testing.T) {
	d := newTestDeriver()
	th := vitals.DefaultThresholds()

	patients := []PatientVitals{
		patientWith("P-001", "A", "101", 49.9, 98, 36.8, models.MotionResting),
		patientWith("P-002", "B", "102", 59.9, 98, 36.8, models.MotionResting),
		patientWith("P-003", "C", "103", 80, 94, 36.8, models.MotionResting),
	}
	events := d.Derive(patients)
	require.Len(t, events, 3)

	byPatient := map[string]models.Severity{}
	for _, e := range events {
		byPatient[e.PatientID] = e.Level
	}
	for _, p := range patients {
		assert.Equal(t, vitals.Classify(p.Reading, th), byPatient[p.PatientID])
	}
}
