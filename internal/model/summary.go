package model

import "time"

// RunSummary captures the outcome of a single pipeline run for one
// (client, practice) scope. Counts are reported even for stages that
// produced zero rows so callers can tell "ran, produced nothing" from
// "did not run".
type RunSummary struct {
	Success bool
	Message string

	ClientName   string
	PracticeName string
	ClientID     int64
	PracticeID   int64

	SilverRows    int64
	SummaryRows   int64
	BreakdownRows int64

	DurationBootstrap    time.Duration
	DurationCanonicalize time.Duration
	DurationSummary      time.Duration
	DurationBreakdown    time.Duration
	DurationTotal        time.Duration
}

// LoadSummary captures metrics from a single bronze load.
type LoadSummary struct {
	LoadBatchID  string
	RowsRead     int64
	RowsLoaded   int64
	RowsRejected int64
	RowsReplaced int64
	Duration     time.Duration
}
