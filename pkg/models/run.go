package models

import "time"

// DatacenterHandle identifies a datacenter registered with an engine
type DatacenterHandle int

// Run is one engine run between Init and the end of Run
type Run struct {
	ID        string                 `json:"id"`
	Status    RunStatus              `json:"status"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time,omitempty"`
	Duration  time.Duration          `json:"duration"`
	Error     string                 `json:"error,omitempty"`
	Config    map[string]interface{} `json:"config,omitempty"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
	Stats     *RunStats              `json:"stats,omitempty"`
}

// RunStats are the counters of a finished engine run
type RunStats struct {
	EventsProcessed    int64   `json:"events_processed"`
	VMsCreated         int     `json:"vms_created"`
	VMsFailed          int     `json:"vms_failed"`
	Cloudlets          int     `json:"cloudlets"`
	CloudletsSucceeded int     `json:"cloudlets_succeeded"`
	FinalClock         float64 `json:"final_clock"`
}
