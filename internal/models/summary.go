package models

import "time"

// Summary aggregates the outcome of one conversion run.
type Summary struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Processed int       `json:"processed"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Failure records one conversation that could not be converted or
// written. Failures never abort the batch.
type Failure struct {
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	Err            string `json:"error"`
}
