package models

import "time"

// Feedback is a thumbs-up/down style rating of an answer.
type Feedback struct {
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	Feedback  string    `json:"feedback"`
}
