package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// RunManager manages the lifecycle of a simulation run
type RunManager struct {
	run    *models.Run
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRunManager creates a new run manager
func NewRunManager(runID string) *RunManager {
	ctx, cancel := context.WithCancel(context.Background())

	return &RunManager{
		run: &models.Run{
			ID:        runID,
			Status:    models.RunStatusPending,
			StartTime: time.Now(),
			Config:    make(map[string]interface{}),
			Metadata:  make(map[string]string),
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start marks the run as started
func (rm *RunManager) Start() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.run.Status = models.RunStatusRunning
	rm.run.StartTime = time.Now()
}

// Complete marks the run as completed with its final counters
func (rm *RunManager) Complete(stats models.RunStats) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.run.Status = models.RunStatusCompleted
	rm.run.EndTime = time.Now()
	rm.run.Duration = rm.run.EndTime.Sub(rm.run.StartTime)
	rm.run.Stats = &stats
}

// Fail marks the run as failed
func (rm *RunManager) Fail(err error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if err == nil {
		err = errors.New("unknown failure")
	}
	rm.run.Status = models.RunStatusFailed
	rm.run.EndTime = time.Now()
	rm.run.Duration = rm.run.EndTime.Sub(rm.run.StartTime)
	rm.run.Error = err.Error()
}

// Cancel cancels the run
func (rm *RunManager) Cancel() {
	rm.cancel()
}

// Context returns the run's context
func (rm *RunManager) Context() context.Context {
	return rm.ctx
}

// Status returns the current run status
func (rm *RunManager) Status() models.RunStatus {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.run.Status
}

// GetRun returns the current run state (thread-safe)
func (rm *RunManager) GetRun() *models.Run {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	// Create a copy to avoid race conditions
	runCopy := *rm.run
	return &runCopy
}

// SetConfig sets a configuration value
func (rm *RunManager) SetConfig(key string, value interface{}) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.run.Config[key] = value
}

// GetConfig gets a configuration value
func (rm *RunManager) GetConfig(key string) (interface{}, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	value, ok := rm.run.Config[key]
	return value, ok
}

// SetMetadata sets a metadata value
func (rm *RunManager) SetMetadata(key, value string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.run.Metadata[key] = value
}

// GetMetadata gets a metadata value
func (rm *RunManager) GetMetadata(key string) (string, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	value, ok := rm.run.Metadata[key]
	return value, ok
}
