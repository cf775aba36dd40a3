package engine

import (
	"container/heap"
	"sync"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// EventType represents the type of simulation event
type EventType string

const (
	// EventTypeVMCreate places a broker's submitted VMs on hosts
	EventTypeVMCreate EventType = "vm_create"

	// EventTypeCloudletSubmit dispatches a broker's workload to its VMs
	EventTypeCloudletSubmit EventType = "cloudlet_submit"

	// EventTypeCloudletProgress fires when the next cloudlet on a VM may finish
	EventTypeCloudletProgress EventType = "cloudlet_progress"

	// EventTypeVMDestroy releases a broker's VMs once its workload is done
	EventTypeVMDestroy EventType = "vm_destroy"
)

// Event represents a discrete event in the simulation. Time is in simulated
// seconds.
type Event struct {
	ID       string          `json:"id"`
	Type     EventType       `json:"type"`
	Time     float64         `json:"time"`
	Priority int             `json:"priority"` // Lower values = higher priority
	Broker   models.BrokerID `json:"broker,omitempty"`
	VMID     int             `json:"vm_id,omitempty"`
	// Version lets the VM ignore progress events scheduled before its
	// cloudlet set last changed
	Version int64 `json:"version,omitempty"`

	seq int64
}

// EventQueue is a priority queue of events ordered by time, priority and
// insertion order
type EventQueue struct {
	events  []*Event
	nextSeq int64
	mu      sync.RWMutex
}

// NewEventQueue creates a new event queue
func NewEventQueue() *EventQueue {
	eq := &EventQueue{
		events: make([]*Event, 0),
	}
	heap.Init(eq)
	return eq
}

// Len returns the number of events in the queue
func (eq *EventQueue) Len() int {
	return len(eq.events)
}

// Less compares two events by time, priority and sequence
func (eq *EventQueue) Less(i, j int) bool {
	a, b := eq.events[i], eq.events[j]
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq < b.seq
}

// Swap swaps two events in the queue
func (eq *EventQueue) Swap(i, j int) {
	eq.events[i], eq.events[j] = eq.events[j], eq.events[i]
}

// Push adds an event to the queue
func (eq *EventQueue) Push(x interface{}) {
	eq.events = append(eq.events, x.(*Event))
}

// Pop removes and returns the next event from the queue
func (eq *EventQueue) Pop() interface{} {
	old := eq.events
	n := len(old)
	event := old[n-1]
	old[n-1] = nil // avoid memory leak
	eq.events = old[0 : n-1]
	return event
}

// Schedule adds an event to the queue (thread-safe)
func (eq *EventQueue) Schedule(event *Event) {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	eq.nextSeq++
	event.seq = eq.nextSeq
	heap.Push(eq, event)
}

// Next removes and returns the next event (thread-safe)
func (eq *EventQueue) Next() *Event {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	if eq.Len() == 0 {
		return nil
	}
	return heap.Pop(eq).(*Event)
}

// Peek returns the next event without removing it (thread-safe)
func (eq *EventQueue) Peek() *Event {
	eq.mu.RLock()
	defer eq.mu.RUnlock()
	if eq.Len() == 0 {
		return nil
	}
	return eq.events[0]
}

// Clear removes all events from the queue (thread-safe)
func (eq *EventQueue) Clear() {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	eq.events = make([]*Event, 0)
	eq.nextSeq = 0
	heap.Init(eq)
}

// Size returns the current queue size (thread-safe)
func (eq *EventQueue) Size() int {
	eq.mu.RLock()
	defer eq.mu.RUnlock()
	return eq.Len()
}

// IsEmpty returns true if the queue is empty (thread-safe)
func (eq *EventQueue) IsEmpty() bool {
	return eq.Size() == 0
}
