package monitor

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vitalsync/vitalsync-api/internal/models"
	"github.com/vitalsync/vitalsync-api/internal/simulator"
	"github.com/vitalsync/vitalsync-api/internal/vitals"
)

// PatientState is one patient's registry entry plus their latest classified
// reading. Severity is recomputed from the reading on every refresh, never
// cached across reads.
type PatientState struct {
	Patient models.Patient      `json:"patient"`
	Reading models.VitalReading `json:"vitals"`
	Status  models.Severity     `json:"status"`
}

// Monitor holds the live dashboard state for the simulated ward. A periodic
// loop refreshes every patient's vitals; every third patient is biased toward
// abnormal readings so the dashboard always has something to show.
type Monitor struct {
	thresholds vitals.Thresholds
	interval   time.Duration
	logger     zerolog.Logger

	mu       sync.RWMutex
	gen      *simulator.Generator
	patients []models.Patient
	readings map[string]models.VitalReading

	stop     chan struct{}
	stopOnce sync.Once
}

func New(gen *simulator.Generator, thresholds vitals.Thresholds, interval time.Duration, logger zerolog.Logger) *Monitor {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	m := &Monitor{
		thresholds: thresholds,
		interval:   interval,
		logger:     logger.With().Str("component", "monitor").Logger(),
		gen:        gen,
		readings:   make(map[string]models.VitalReading),
		stop:       make(chan struct{}),
	}
	m.patients = gen.Patients()
	m.refresh()
	return m
}

// Start runs the refresh loop until ctx is done or Stop is called.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			case <-ticker.C:
				m.refresh()
			}
		}
	}()
	m.logger.Info().Dur("interval", m.interval).Int("patients", len(m.patients)).Msg("monitor started")
}

// Stop halts the refresh loop. Safe to call more than once.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Monitor) refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.patients {
		m.readings[p.ID] = m.gen.Reading(i%3 == 0)
	}
}

// SetReading stores an externally produced reading for one patient,
// superseding whatever the refresh loop generated.
func (m *Monitor) SetReading(patientID string, reading models.VitalReading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readings[patientID] = reading
}

// AttachSource routes a vitals feed into one patient's slot. This is the
// hardware seam: attach an MQTT-backed source and that patient's readings
// come from real sensors while the rest of the ward stays simulated. The
// returned cancel handle detaches the feed.
func (m *Monitor) AttachSource(patientID string, src Source) (func(), error) {
	cancel, err := src.Subscribe(func(reading models.VitalReading) {
		m.SetReading(patientID, reading)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "attach source for patient %s", patientID)
	}
	m.logger.Info().Str("patient_id", patientID).Msg("external vitals source attached")
	return cancel, nil
}

// Snapshot returns every patient's current state, ordered by patient id.
func (m *Monitor) Snapshot() []PatientState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]PatientState, 0, len(m.patients))
	for _, p := range m.patients {
		reading := m.readings[p.ID]
		states = append(states, PatientState{
			Patient: p,
			Reading: reading,
			Status:  vitals.Classify(reading, m.thresholds),
		})
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Patient.ID < states[j].Patient.ID
	})
	return states
}

// PatientSnapshot returns one patient's current state.
func (m *Monitor) PatientSnapshot(patientID string) (PatientState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.patients {
		if p.ID == patientID {
			reading := m.readings[p.ID]
			return PatientState{
				Patient: p,
				Reading: reading,
				Status:  vitals.Classify(reading, m.thresholds),
			}, nil
		}
	}
	return PatientState{}, errors.Errorf("unknown patient %s", patientID)
}

// History returns a synthetic hourly trend for charting.
func (m *Monitor) History(hours int) []models.TrendPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen.History(hours)
}

// Waveform returns a fresh ECG window of the requested length.
func (m *Monitor) Waveform(points int) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen.Waveform(points)
}
