package models

// ScanProgress is the payload of the "scan-progress" push event.
type ScanProgress struct {
	CurrentFile string `json:"current_file"`
	Processed   int    `json:"processed"`
	Total       int    `json:"total"`
	Status      string `json:"status"` // e.g. "scanning", "completed", "failed"
}
