// Package engine is a discrete-event cloudlet execution engine. Brokers
// submit VMs and workload units; VMs are placed on datacenter hosts and
// cloudlets run time-shared on their VM until all of them finish.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/campus-cloud-sim/internal/resource"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

const (
	// CloudletSubmitDelay is the simulated time between VM creation and
	// workload dispatch
	CloudletSubmitDelay = 0.1

	// finishTolerance is the remaining run time, in seconds, below which a
	// cloudlet counts as finished
	finishTolerance = 1e-6
)

var (
	// ErrNotInitialized is returned when the engine is used before Init
	ErrNotInitialized = errors.New("engine not initialized")
	// ErrAlreadyRun is returned when Run is called twice without Init
	ErrAlreadyRun = errors.New("engine already ran, call Init first")
	// ErrUnknownBroker is returned for broker ids the engine never issued
	ErrUnknownBroker = errors.New("unknown broker")
)

type engineState int

const (
	stateIdle engineState = iota
	stateReady
	stateRan
)

// EventHandler is a function that handles a specific event type
type EventHandler func(*Engine, *Event) error

// Engine is the discrete-event simulation engine. It is driven from a single
// goroutine.
type Engine struct {
	eventQueue   *EventQueue
	runManager   *RunManager
	resources    *resource.Manager
	handlers     map[EventType]EventHandler
	logger       *slog.Logger
	eventCounter int64

	clock     float64
	state     engineState
	userCount int
	trace     bool
	brokers   []*broker
	// allocation is the host usage after the latest VM creation
	allocation []resource.DatacenterUsage
}

type cloudlet struct {
	unit      models.WorkloadUnit
	remaining float64 // MI left across all of the cloudlet's PEs
	start     float64
}

type vmState struct {
	ref        resource.VMRef
	vm         models.VM
	mips       float64
	running    []*cloudlet
	lastUpdate float64
	version    int64
}

type broker struct {
	id        models.BrokerID
	name      string
	submitted []models.VM
	units     []models.WorkloadUnit
	vms       map[int]*vmState
	created   []*vmState
	failedVMs []int
	outcomes  []models.WorkloadOutcome
	pending   int
	next      int
}

// NewEngine creates an engine logging to log, or logger.Default
func NewEngine(log *slog.Logger) *Engine {
	e := &Engine{
		eventQueue: NewEventQueue(),
		runManager: NewRunManager(uuid.NewString()),
		resources:  resource.NewManager(),
		handlers:   make(map[EventType]EventHandler),
		logger:     logger.OrDefault(log),
	}
	e.RegisterHandler(EventTypeVMCreate, handleVMCreate)
	e.RegisterHandler(EventTypeCloudletSubmit, handleCloudletSubmit)
	e.RegisterHandler(EventTypeCloudletProgress, handleCloudletProgress)
	e.RegisterHandler(EventTypeVMDestroy, handleVMDestroy)
	return e
}

// RegisterHandler registers an event handler
func (e *Engine) RegisterHandler(eventType EventType, handler EventHandler) {
	e.handlers[eventType] = handler
}

// Init resets the clock, the queue and every registered entity
func (e *Engine) Init(userCount int, trace bool) error {
	if userCount < 0 {
		return fmt.Errorf("user count cannot be negative, got %d", userCount)
	}

	e.eventQueue.Clear()
	e.runManager.Cancel()
	e.runManager = NewRunManager(uuid.NewString())
	e.runManager.SetConfig("user_count", userCount)
	e.runManager.SetConfig("trace", trace)
	e.resources = resource.NewManager()
	atomic.StoreInt64(&e.eventCounter, 0)
	e.clock = 0
	e.userCount = userCount
	e.trace = trace
	e.brokers = nil
	e.allocation = nil
	e.state = stateReady

	e.logger.Debug("Engine initialized",
		"run_id", e.runManager.GetRun().ID,
		"user_count", userCount,
		"trace", trace)
	return nil
}

func (e *Engine) requireReady() error {
	switch e.state {
	case stateIdle:
		return ErrNotInitialized
	case stateRan:
		return ErrAlreadyRun
	}
	return nil
}

// RegisterDatacenter creates the datacenter's hosts
func (e *Engine) RegisterDatacenter(spec models.DatacenterSpec) (models.DatacenterHandle, error) {
	if err := e.requireReady(); err != nil {
		return 0, err
	}
	handle, err := e.resources.AddDatacenter(spec)
	if err != nil {
		return 0, fmt.Errorf("failed to register datacenter: %w", err)
	}
	e.logger.Debug("Datacenter registered",
		"datacenter", spec.Name,
		"handle", handle,
		"hosts", spec.HostCount)
	return handle, nil
}

// RegisterBroker creates a broker. Ids start at 1 in registration order.
func (e *Engine) RegisterBroker(name string) (models.BrokerID, error) {
	if err := e.requireReady(); err != nil {
		return models.NoBroker, err
	}
	b := &broker{
		id:   models.BrokerID(len(e.brokers) + 1),
		name: name,
		vms:  make(map[int]*vmState),
	}
	e.brokers = append(e.brokers, b)
	return b.id, nil
}

func (e *Engine) broker(id models.BrokerID) (*broker, error) {
	if id <= 0 || int(id) > len(e.brokers) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBroker, id)
	}
	return e.brokers[id-1], nil
}

// SubmitVMs queues VMs for creation when the run starts
func (e *Engine) SubmitVMs(id models.BrokerID, vms []models.VM) error {
	if err := e.requireReady(); err != nil {
		return err
	}
	b, err := e.broker(id)
	if err != nil {
		return err
	}
	b.submitted = append(b.submitted, vms...)
	return nil
}

// SubmitWorkload queues workload units for dispatch after VM creation
func (e *Engine) SubmitWorkload(id models.BrokerID, units []models.WorkloadUnit) error {
	if err := e.requireReady(); err != nil {
		return err
	}
	b, err := e.broker(id)
	if err != nil {
		return err
	}
	b.units = append(b.units, units...)
	return nil
}

// ScheduleEvent schedules an event
func (e *Engine) ScheduleEvent(event *Event) {
	counter := atomic.AddInt64(&e.eventCounter, 1)
	if event.ID == "" {
		event.ID = fmt.Sprintf("evt-%d", counter)
	}
	e.eventQueue.Schedule(event)
}

// ScheduleAt schedules an event at a specific simulation time
func (e *Engine) ScheduleAt(eventType EventType, at float64, broker models.BrokerID, vmID int) *Event {
	event := &Event{
		Type:   eventType,
		Time:   at,
		Broker: broker,
		VMID:   vmID,
	}
	e.ScheduleEvent(event)
	return event
}

// Run processes events until the queue drains and returns the final clock
func (e *Engine) Run() (float64, error) {
	if err := e.requireReady(); err != nil {
		return e.clock, err
	}
	e.state = stateRan

	e.logger.Info("Starting simulation",
		"run_id", e.runManager.GetRun().ID,
		"brokers", len(e.brokers),
		"datacenters", e.resources.DatacenterCount())
	e.runManager.Start()

	for _, b := range e.brokers {
		e.ScheduleAt(EventTypeVMCreate, 0, b.id, 0)
	}

	processed := int64(0)
	for {
		select {
		case <-e.runManager.Context().Done():
			err := errors.New("simulation cancelled")
			e.runManager.Fail(err)
			return e.clock, err
		default:
		}

		event := e.eventQueue.Next()
		if event == nil {
			break
		}
		if event.Time < e.clock {
			err := fmt.Errorf("event %s scheduled in the past (%.6f < %.6f)", event.ID, event.Time, e.clock)
			e.runManager.Fail(err)
			return e.clock, err
		}
		e.clock = event.Time
		processed++

		if e.trace {
			e.logger.Info("Processing event", "event_id", event.ID, "type", event.Type, "sim_time", event.Time, "broker", event.Broker, "vm", event.VMID)
		} else {
			e.logger.Debug("Processing event", "event_id", event.ID, "type", event.Type, "sim_time", event.Time)
		}

		handler, ok := e.handlers[event.Type]
		if !ok {
			e.logger.Warn("No handler for event type",
				"event_type", event.Type,
				"event_id", event.ID)
			continue
		}
		if err := handler(e, event); err != nil {
			e.runManager.Fail(err)
			return e.clock, fmt.Errorf("event %s (%s) at %.2f: %w", event.ID, event.Type, event.Time, err)
		}
	}

	stats := e.stats(processed)
	e.runManager.Complete(stats)
	e.logger.Info("Simulation completed",
		"run_id", e.runManager.GetRun().ID,
		"final_clock", e.clock,
		"events_processed", processed,
		"cloudlets", stats.Cloudlets,
		"succeeded", stats.CloudletsSucceeded)
	return e.clock, nil
}

func (e *Engine) stats(processed int64) models.RunStats {
	stats := models.RunStats{EventsProcessed: processed, FinalClock: e.clock}
	for _, b := range e.brokers {
		stats.VMsCreated += len(b.created)
		stats.VMsFailed += len(b.failedVMs)
		stats.Cloudlets += len(b.units)
		for _, o := range b.outcomes {
			if o.Succeeded() {
				stats.CloudletsSucceeded++
			}
		}
	}
	return stats
}

// CompletedWorkload returns the broker's outcomes in completion order
func (e *Engine) CompletedWorkload(id models.BrokerID) []models.WorkloadOutcome {
	b, err := e.broker(id)
	if err != nil {
		return nil
	}
	outcomes := make([]models.WorkloadOutcome, len(b.outcomes))
	copy(outcomes, b.outcomes)
	return outcomes
}

// FailedVMs returns the ids of the broker's VMs that could not be placed
func (e *Engine) FailedVMs(id models.BrokerID) []int {
	b, err := e.broker(id)
	if err != nil {
		return nil
	}
	return append([]int(nil), b.failedVMs...)
}

// Clock returns the current simulation time in seconds
func (e *Engine) Clock() float64 {
	return e.clock
}

// GetRunManager returns the run manager
func (e *Engine) GetRunManager() *RunManager {
	return e.runManager
}

// DatacenterUsage reports host allocation per datacenter as it stood once
// the brokers' VMs were created. It is empty until Run placed any VM.
func (e *Engine) DatacenterUsage() []resource.DatacenterUsage {
	return append([]resource.DatacenterUsage(nil), e.allocation...)
}

// Stop cancels a running simulation
func (e *Engine) Stop() {
	e.runManager.Cancel()
	e.eventQueue.Clear()
	e.logger.Info("Simulation stopped")
}

func handleVMCreate(e *Engine, event *Event) error {
	b, err := e.broker(event.Broker)
	if err != nil {
		return err
	}

	for _, vm := range b.submitted {
		if _, dup := b.vms[vm.ID]; dup {
			b.failedVMs = append(b.failedVMs, vm.ID)
			e.logger.Warn("Duplicate VM id", "broker", b.name, "vm", vm.ID)
			continue
		}
		ref := resource.VMRef{Broker: b.id, ID: vm.ID}
		placement, err := e.resources.Place(ref, vm)
		if err != nil {
			b.failedVMs = append(b.failedVMs, vm.ID)
			e.logger.Warn("VM creation failed", "broker", b.name, "vm", vm.ID, "error", err)
			continue
		}
		state := &vmState{
			ref:        ref,
			vm:         vm,
			mips:       float64(placement.MIPS),
			lastUpdate: e.clock,
		}
		b.vms[vm.ID] = state
		b.created = append(b.created, state)
	}

	e.allocation = e.resources.Usage()

	e.logger.Debug("VMs created",
		"broker", b.name,
		"created", len(b.created),
		"failed", len(b.failedVMs))

	e.ScheduleAt(EventTypeCloudletSubmit, e.clock+CloudletSubmitDelay, b.id, 0)
	return nil
}

func handleCloudletSubmit(e *Engine, event *Event) error {
	b, err := e.broker(event.Broker)
	if err != nil {
		return err
	}

	touched := make([]*vmState, 0)
	seen := make(map[int]bool)
	for _, unit := range b.units {
		var target *vmState
		vmID := -1
		if bound, err := unit.VMID.Get(); err == nil {
			vmID = bound
			target = b.vms[bound]
		} else if len(b.created) > 0 {
			target = b.created[b.next%len(b.created)]
			b.next++
		}

		if target == nil {
			b.outcomes = append(b.outcomes, models.WorkloadOutcome{
				WorkloadID: unit.ID,
				BrokerID:   b.id,
				VMID:       vmID,
				Status:     models.OutcomeOther,
				StartTime:  e.clock,
				FinishTime: e.clock,
			})
			continue
		}

		target.advance(e.clock)
		target.running = append(target.running, &cloudlet{
			unit:      unit,
			remaining: float64(unit.Length) * float64(max(unit.PEs, 1)),
			start:     e.clock,
		})
		b.pending++
		if !seen[target.vm.ID] {
			seen[target.vm.ID] = true
			touched = append(touched, target)
		}
	}

	for _, vm := range touched {
		e.reschedule(b, vm)
	}
	if b.pending == 0 {
		e.scheduleDestroy(b)
	}
	return nil
}

func handleCloudletProgress(e *Engine, event *Event) error {
	b, err := e.broker(event.Broker)
	if err != nil {
		return err
	}
	vm, ok := b.vms[event.VMID]
	if !ok {
		return fmt.Errorf("progress for unknown vm %d of broker %s", event.VMID, b.name)
	}
	if event.Version != vm.version {
		return nil
	}

	vm.advance(e.clock)
	rates := vm.rates()
	still := vm.running[:0]
	for i, c := range vm.running {
		if c.remaining/rates[i] > finishTolerance {
			still = append(still, c)
			continue
		}
		b.outcomes = append(b.outcomes, models.WorkloadOutcome{
			WorkloadID: c.unit.ID,
			BrokerID:   b.id,
			VMID:       vm.vm.ID,
			Status:     models.OutcomeSuccess,
			CPUTime:    e.clock - c.start,
			StartTime:  c.start,
			FinishTime: e.clock,
		})
		b.pending--
	}
	for i := len(still); i < len(vm.running); i++ {
		vm.running[i] = nil
	}
	vm.running = still

	e.reschedule(b, vm)
	if b.pending == 0 {
		e.scheduleDestroy(b)
	}
	return nil
}

func handleVMDestroy(e *Engine, event *Event) error {
	b, err := e.broker(event.Broker)
	if err != nil {
		return err
	}
	for _, vm := range b.created {
		e.resources.Release(vm.ref)
	}
	e.logger.Debug("VMs destroyed", "broker", b.name, "count", len(b.created))
	return nil
}

// scheduleDestroy releases the broker's VMs after every other event at the
// current time
func (e *Engine) scheduleDestroy(b *broker) {
	e.ScheduleEvent(&Event{
		Type:     EventTypeVMDestroy,
		Time:     e.clock,
		Priority: 1,
		Broker:   b.id,
	})
}

// reschedule invalidates pending progress events of the VM and schedules
// the next finish
func (e *Engine) reschedule(b *broker, vm *vmState) {
	vm.version++
	if len(vm.running) == 0 {
		return
	}

	rates := vm.rates()
	next := math.Inf(1)
	for i, c := range vm.running {
		next = math.Min(next, math.Max(c.remaining, 0)/rates[i])
	}
	e.ScheduleEvent(&Event{
		Type:    EventTypeCloudletProgress,
		Time:    e.clock + next,
		Broker:  b.id,
		VMID:    vm.vm.ID,
		Version: vm.version,
	})
}

// rates returns the MIPS each running cloudlet gets. PEs are shared
// proportionally once demand exceeds the VM's PEs.
func (vm *vmState) rates() []float64 {
	demand := 0
	for _, c := range vm.running {
		demand += max(c.unit.PEs, 1)
	}
	share := 1.0
	if demand > vm.vm.PEs {
		share = float64(vm.vm.PEs) / float64(demand)
	}

	rates := make([]float64, len(vm.running))
	for i, c := range vm.running {
		rates[i] = vm.mips * float64(max(c.unit.PEs, 1)) * share
	}
	return rates
}

// advance applies the work done since the last update
func (vm *vmState) advance(now float64) {
	dt := now - vm.lastUpdate
	if dt > 0 && len(vm.running) > 0 {
		for i, rate := range vm.rates() {
			vm.running[i].remaining -= rate * dt
		}
	}
	vm.lastUpdate = now
}
