package models

import "time"

// ExportJob tracks one bookings report generated by the export worker.
type ExportJob struct {
	ID          int64      `json:"id"`
	FromDate    time.Time  `json:"from_date"`
	ToDate      time.Time  `json:"to_date"`
	Status      string     `json:"status"`
	FilePath    string     `json:"file_path,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}
