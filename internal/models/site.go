package models

import "time"

// DownloadCount aggregates download counter totals per platform
type DownloadCount struct {
	Platform string `json:"platform" db:"platform"`
	Count    int64  `json:"count" db:"count"`
}

// FAQEntry is a question/answer pair rendered on the marketing site
type FAQEntry struct {
	ID        string    `json:"id" db:"id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	Position  int       `json:"position" db:"position"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
