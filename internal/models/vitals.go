package models

import "time"

type MotionStatus string

const (
	MotionResting      MotionStatus = "resting"
	MotionActive       MotionStatus = "active"
	MotionFallDetected MotionStatus = "fall_detected"
)

func IsValidMotionStatus(m MotionStatus) bool {
	switch m {
	case MotionResting, MotionActive, MotionFallDetected:
		return true
	}
	return false
}

type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityNormal:   0,
	SeverityWarning:  1,
	SeverityCritical: 2,
}

// Rank orders severities: critical > warning > normal. Unknown values rank
// below normal so they never outrank a real tier.
func (s Severity) Rank() int {
	if rank, ok := severityRank[s]; ok {
		return rank
	}
	return -1
}

func IsValidSeverity(s Severity) bool {
	_, ok := severityRank[s]
	return ok
}

// VitalReading is one immutable snapshot of a patient's monitored signals.
// Readings are never mutated after creation; a newer reading supersedes them.
type VitalReading struct {
	HeartRate   float64      `json:"heart_rate"`
	SpO2        float64      `json:"spo2"`
	Temperature float64      `json:"temperature"`
	Motion      MotionStatus `json:"motion_status"`
	ECG         []float64    `json:"ecg_data,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// TrendPoint is one hourly sample of a patient's retrospective vitals trend.
type TrendPoint struct {
	Time        time.Time `json:"time"`
	HeartRate   float64   `json:"heart_rate"`
	SpO2        float64   `json:"spo2"`
	Temperature float64   `json:"temperature"`
}
