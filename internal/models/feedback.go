package models

import "time"

// Feedback is a report submitted by the desktop app on behalf of a user
type Feedback struct {
	ID         string    `json:"id" db:"id"`
	Email      string    `json:"email,omitempty" db:"email"`
	Message    string    `json:"message" db:"message"`
	Category   string    `json:"category" db:"category"`
	AppVersion string    `json:"appVersion,omitempty" db:"app_version"`
	Platform   string    `json:"platform,omitempty" db:"platform"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Screenshot is a capture uploaded alongside a feedback report. Binary data
// lives in object storage; only the metadata and URL are recorded here.
type Screenshot struct {
	ID         string    `json:"id" db:"id"`
	FeedbackID string    `json:"feedbackId,omitempty" db:"feedback_id"`
	URL        string    `json:"url" db:"url"`
	Width      int       `json:"width" db:"width"`
	Height     int       `json:"height" db:"height"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
