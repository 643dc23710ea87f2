package model

import "time"

// BatchSummary captures metrics from a batch generation run.
type BatchSummary struct {
	FilePath         string
	BatchID          string
	RowsRead         int64
	Generated        int64
	Rejected         int64
	WarningsTotal    int64
	DocumentsWritten int64
	DurationRead     time.Duration
	DurationRender   time.Duration
	DurationTotal    time.Duration
}
