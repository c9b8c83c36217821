package models

import "time"

// Run records one completed categorization run for the history view.
type Run struct {
	ID            string    `json:"id"` // uuid
	FilePath      string    `json:"file_path"`
	Column        string    `json:"column"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model"`
	ItemCount     int       `json:"item_count"`     // unique items sent
	ChunkCount    int       `json:"chunk_count"`    // requests issued
	FallbackCount int       `json:"fallback_count"` // items degraded to fallback records
	CategoryCount int       `json:"category_count"` // distinct categories in the result
	CostUSD       float64   `json:"cost_usd"`
	CreatedAt     time.Time `json:"created_at"`
}
