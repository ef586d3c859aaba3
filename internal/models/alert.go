package models

import "time"

type AlertType string

const (
	AlertTypeCritical AlertType = "CRITICAL"
	AlertTypeWarning  AlertType = "WARNING"
)

// AlertEvent records one notable deviation requiring attention. Events are
// retained for audit; resolution only flips the Resolved flag.
type AlertEvent struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patient_id"`
	PatientName   string    `json:"patient_name,omitempty"`
	Type          AlertType `json:"type,omitempty"`
	Message       string    `json:"message"`
	Level         Severity  `json:"level"`
	Resolved      bool      `json:"resolved"`
	NotifiedEmail bool      `json:"notified_email"`
	NotifiedSMS   bool      `json:"notified_sms"`
	CreatedAt     time.Time `json:"created_at"`
}

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// NotificationOutcome captures a single delivery attempt on one channel.
// Written once per attempt; never mutated.
type NotificationOutcome struct {
	Channel   NotificationChannel `json:"channel"`
	Recipient string              `json:"recipient"`
	Success   bool                `json:"success"`
	Detail    string              `json:"detail,omitempty"`
}
