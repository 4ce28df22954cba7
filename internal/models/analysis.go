package models

import "time"

// SavedAnalysis is the persisted form of a completed analysis. The raw chat
// is not retained; Stats is the self-contained statistics document.
type SavedAnalysis struct {
	ID           int64             `json:"id" db:"id"`
	Name         string            `json:"name" db:"name"`
	Sender       string            `json:"sender" db:"sender"`
	Receiver     string            `json:"receiver" db:"receiver"`
	MessageCount int               `json:"messageCount" db:"message_count"`
	Stats        *StatisticsResult `json:"stats" db:"stats"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at"`
}

// AnalysisSummary is the listing row for saved analyses; the stats document
// itself is fetched separately by ID.
type AnalysisSummary struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Sender       string    `json:"sender"`
	Receiver     string    `json:"receiver"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

const (
	// NonceSize is the AES-GCM nonce length used for stored analyses.
	NonceSize = 12
	// KeySize is the derived AES key length in bytes.
	KeySize = 32
	// Iterations is the PBKDF2 iteration count for key derivation.
	Iterations = 100000
)
