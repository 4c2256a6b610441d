package runs

import (
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Run Types
// ---------------------------------------------------------------------------

// RunStatus represents the overall status of one sync run
type RunStatus string

const (
	RunStatusRunning RunStatus = "RUNNING"
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusPartial RunStatus = "PARTIAL"
	RunStatusFailed  RunStatus = "FAILED"
)

// IsValid returns true if the status is valid
func (s RunStatus) IsValid() bool {
	switch s {
	case RunStatusRunning, RunStatusSuccess, RunStatusPartial, RunStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of RunStatus
func (s RunStatus) String() string {
	return string(s)
}

// OrderStatus represents the outcome of one order within a run
type OrderStatus string

const (
	// OrderStatusSuccess means the order was transformed and persisted
	OrderStatusSuccess OrderStatus = "success"
	// OrderStatusSkipped means a local order already existed for the source
	// order identifier and nothing was written
	OrderStatusSkipped OrderStatus = "skipped"
	// OrderStatusFailed means transform or persist failed after all attempts
	OrderStatusFailed OrderStatus = "failed"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// LogSuffix returns the per-order log file suffix for this outcome. The log
// layout knows only success and error files; skipped orders land in success
// files with their status recorded inside.
func (s OrderStatus) LogSuffix() string {
	if s == OrderStatusFailed {
		return "error"
	}
	return "success"
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

// Run is one execution of the sync cycle spanning N orders
type Run struct {
	ID          uuid.UUID
	StartedAt   time.Time
	CompletedAt *time.Time
	Status      RunStatus

	TotalOrders  int
	SuccessCount int
	FailedCount  int
	SkippedCount int
}

// NewRun creates a new running sync run
func NewRun() *Run {
	return &Run{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		Status:    RunStatusRunning,
	}
}

// Record tallies one order outcome into the run
func (r *Run) Record(status OrderStatus) {
	switch status {
	case OrderStatusSuccess:
		r.SuccessCount++
	case OrderStatusSkipped:
		r.SkippedCount++
	case OrderStatusFailed:
		r.FailedCount++
	}
}

// Complete marks the run finished and derives its final status
func (r *Run) Complete() {
	now := time.Now()
	r.CompletedAt = &now

	switch {
	case r.FailedCount == 0:
		r.Status = RunStatusSuccess
	case r.SuccessCount > 0 || r.SkippedCount > 0:
		r.Status = RunStatusPartial
	default:
		r.Status = RunStatusFailed
	}
}

// Fail marks the run finished as failed regardless of per-order tallies.
// Used when the cycle aborts before any order could be processed.
func (r *Run) Fail() {
	now := time.Now()
	r.CompletedAt = &now
	r.Status = RunStatusFailed
}

// Duration returns how long the run has been going, or took
func (r *Run) Duration() time.Duration {
	if r.CompletedAt != nil {
		return r.CompletedAt.Sub(r.StartedAt)
	}
	return time.Since(r.StartedAt)
}

// ---------------------------------------------------------------------------
// Per-Order Outcome
// ---------------------------------------------------------------------------

// OrderSnapshot captures the key fields of a source order at sync time
type OrderSnapshot struct {
	SourceOrderID string `json:"source_order_id"`
	OrderNumber   string `json:"order_number"`
	Email         string `json:"email"`
	CreatedAt     string `json:"created_at"`
	TotalPrice    string `json:"total_price"`
	ItemCount     int    `json:"item_count"`
}

// OrderOutcome is the durable record of what happened to one order in a run
type OrderOutcome struct {
	RunID         uuid.UUID     `json:"run_id"`
	SourceOrderID string        `json:"source_order_id"`
	Status        OrderStatus   `json:"status"`
	Error         string        `json:"error,omitempty"`
	Attempts      int           `json:"attempts"`
	LocalOrderID  *uuid.UUID    `json:"local_order_id,omitempty"`
	Snapshot      OrderSnapshot `json:"snapshot"`
	RecordedAt    time.Time     `json:"recorded_at"`
}

// RunLog is the interface for the durable per-run audit trail
type RunLog interface {
	// WriteManifest writes the run's fetched-order manifest
	WriteManifest(run *Run, orders []OrderSnapshot) error

	// WriteOutcome writes one order's outcome file
	WriteOutcome(outcome *OrderOutcome) error
}
