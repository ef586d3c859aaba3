package vitals

import "github.com/vitalsync/vitalsync-api/internal/models"

// Classify maps one reading to a severity tier against the given threshold
// table. Critical conditions are checked before warning conditions; any single
// critical condition wins outright. A detected fall is always critical
// regardless of the other vitals.
//
// Classify is pure and total: it only compares, it does not validate that the
// inputs are physiologically plausible.
func Classify(r models.VitalReading, t Thresholds) models.Severity {
	if r.Motion == models.MotionFallDetected ||
		r.HeartRate < t.HeartRate.CriticalLow || r.HeartRate > t.HeartRate.CriticalHigh ||
		r.SpO2 < t.SpO2.CriticalLow ||
		r.Temperature > t.Temperature.CriticalHigh {
		return models.SeverityCritical
	}
	if r.HeartRate < t.HeartRate.Low || r.HeartRate > t.HeartRate.High ||
		r.SpO2 < t.SpO2.Low ||
		r.Temperature < t.Temperature.Low || r.Temperature > t.Temperature.High {
		return models.SeverityWarning
	}
	return models.SeverityNormal
}
