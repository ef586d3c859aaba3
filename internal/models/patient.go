package models

import "time"

type ProfileStatus string

const (
	ProfileStatusPending  ProfileStatus = "pending"
	ProfileStatusApproved ProfileStatus = "approved"
	ProfileStatusRejected ProfileStatus = "rejected"
)

func IsValidProfileStatus(s ProfileStatus) bool {
	switch s {
	case ProfileStatusPending, ProfileStatusApproved, ProfileStatusRejected:
		return true
	}
	return false
}

// Profile holds the notification-relevant slice of a patient's account record.
type Profile struct {
	ID          string        `json:"id"`
	FullName    string        `json:"full_name"`
	PhoneNumber string        `json:"phone_number,omitempty"`
	Status      ProfileStatus `json:"status"`
}

// Patient is one entry of the monitored registry.
type Patient struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
	Room       string    `json:"room"`
	AdmittedAt time.Time `json:"admitted_at"`
}
