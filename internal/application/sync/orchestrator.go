package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gematelier/ordersync/internal/domain/commerce"
	"github.com/gematelier/ordersync/internal/domain/runs"
	"github.com/gematelier/ordersync/internal/infrastructure/telemetry"
)

// Options configures the orchestrator's sync cycle
type Options struct {
	// ImportTag selects the platform orders to import
	ImportTag string
	// ProcessedTag replaces ImportTag after a successful import
	ProcessedTag string
	// RetagEnabled turns the best-effort retag step on or off
	RetagEnabled bool
	// Since restricts the listing to orders created at or after this
	// ISO-8601 timestamp; empty means no lower bound
	Since string
	// Concurrency bounds the number of orders processed in parallel
	Concurrency int
	// Retry is the per-order retry policy
	Retry RetryPolicy
}

// Orchestrator runs the sync cycle: fetch tagged orders, write the run
// manifest, process every order through a bounded worker pool, retag imported
// orders best-effort and tally the run.
type Orchestrator struct {
	platform    commerce.CommercePlatform
	transformer *Transformer
	persister   *Persister
	runLog      runs.RunLog
	opts        Options
	logger      *zap.Logger
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(
	platform commerce.CommercePlatform,
	transformer *Transformer,
	persister *Persister,
	runLog runs.RunLog,
	opts Options,
	logger *zap.Logger,
) *Orchestrator {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Orchestrator{
		platform:    platform,
		transformer: transformer,
		persister:   persister,
		runLog:      runLog,
		opts:        opts,
		logger:      logger,
	}
}

// RunOnce executes one full sync cycle and returns the completed run. The
// returned error is non-nil only when the cycle could not run at all (fetch
// or manifest failure); per-order failures are tallied into the run instead.
func (o *Orchestrator) RunOnce(ctx context.Context) (*runs.Run, error) {
	run := runs.NewRun()

	ctx, span := telemetry.StartSpan(ctx, "sync.run",
		telemetry.Attr(telemetry.SpanAttrRunID, run.ID.String()))
	defer span.End()

	o.logger.Info("Sync run started",
		zap.String("run_id", run.ID.String()),
		zap.String("import_tag", o.opts.ImportTag),
	)

	sourceOrders, err := o.platform.ListOrdersByTag(ctx, commerce.ListOptions{
		Tag:   o.opts.ImportTag,
		Since: o.opts.Since,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		run.Fail()
		return run, fmt.Errorf("fetching tagged orders: %w", err)
	}

	run.TotalOrders = len(sourceOrders)
	telemetry.SetAttribute(span, telemetry.SpanAttrOrderCount, len(sourceOrders))

	snapshots := make([]runs.OrderSnapshot, len(sourceOrders))
	for i := range sourceOrders {
		snapshots[i] = snapshotOf(&sourceOrders[i])
	}
	if err := o.runLog.WriteManifest(run, snapshots); err != nil {
		telemetry.RecordError(span, err)
		run.Fail()
		return run, fmt.Errorf("writing run manifest: %w", err)
	}

	if len(sourceOrders) == 0 {
		run.Complete()
		o.logger.Info("Sync run complete, nothing to import",
			zap.String("run_id", run.ID.String()))
		return run, nil
	}

	o.processAll(ctx, run, sourceOrders)

	run.Complete()
	o.logger.Info("Sync run complete",
		zap.String("run_id", run.ID.String()),
		zap.String("status", run.Status.String()),
		zap.Int("total", run.TotalOrders),
		zap.Int("succeeded", run.SuccessCount),
		zap.Int("skipped", run.SkippedCount),
		zap.Int("failed", run.FailedCount),
		zap.Duration("duration", run.Duration()),
	)
	return run, nil
}

// processAll pushes every order through a bounded worker pool and tallies the
// outcomes into the run
func (o *Orchestrator) processAll(ctx context.Context, run *runs.Run, sourceOrders []commerce.SourceOrder) {
	jobs := make(chan *commerce.SourceOrder)
	outcomes := make(chan *runs.OrderOutcome, len(sourceOrders))

	var wg sync.WaitGroup
	for w := 0; w < o.opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for source := range jobs {
				outcomes <- o.processOrder(ctx, run, source)
			}
		}()
	}

	for i := range sourceOrders {
		jobs <- &sourceOrders[i]
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	for outcome := range outcomes {
		run.Record(outcome.Status)
		if err := o.runLog.WriteOutcome(outcome); err != nil {
			o.logger.Error("Failed to write order outcome",
				zap.String("run_id", run.ID.String()),
				zap.String("source_order_id", outcome.SourceOrderID),
				zap.Error(err),
			)
		}
	}
}

// processOrder imports one order under the retry policy and builds its
// outcome record. Successful and already-imported orders are retagged
// best-effort so the next cycle does not fetch them again.
func (o *Orchestrator) processOrder(ctx context.Context, run *runs.Run, source *commerce.SourceOrder) *runs.OrderOutcome {
	outcome := &runs.OrderOutcome{
		RunID:         run.ID,
		SourceOrderID: source.IDString(),
		Snapshot:      snapshotOf(source),
		RecordedAt:    time.Now(),
	}

	var result *PersistResult
	attempts, err := o.opts.Retry.Do(ctx, func(ctx context.Context) error {
		payloads, err := o.transformer.Transform(source)
		if err != nil {
			return err
		}
		result, err = o.persister.Persist(ctx, payloads)
		if errors.Is(err, ErrAlreadyImported) {
			// more attempts cannot change an existing order
			return Terminal(err)
		}
		return err
	})
	outcome.Attempts = attempts
	outcome.RecordedAt = time.Now()

	switch {
	case err == nil:
		outcome.Status = runs.OrderStatusSuccess
		outcome.LocalOrderID = &result.OrderID
		o.retag(ctx, source)
	case errors.Is(err, ErrAlreadyImported):
		outcome.Status = runs.OrderStatusSkipped
		o.retag(ctx, source)
		o.logger.Info("Order already imported, skipped",
			zap.String("source_order_id", outcome.SourceOrderID))
	default:
		outcome.Status = runs.OrderStatusFailed
		outcome.Error = err.Error()
		o.logger.Error("Order import failed",
			zap.String("source_order_id", outcome.SourceOrderID),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
	}

	return outcome
}

// retag swaps the import tag for the processed tag on the platform. The local
// write already happened, so a retag failure is logged and swallowed; the
// dedupe check catches the refetch next cycle.
func (o *Orchestrator) retag(ctx context.Context, source *commerce.SourceOrder) {
	if !o.opts.RetagEnabled {
		return
	}

	tags := source.Tags
	if current, err := o.platform.GetOrder(ctx, source.IDString()); err == nil {
		tags = current.Tags
	}

	newTags := commerce.ReplaceTag(tags, o.opts.ImportTag, o.opts.ProcessedTag)
	if err := o.platform.UpdateTags(ctx, source.IDString(), newTags); err != nil {
		o.logger.Warn("Failed to retag order",
			zap.String("source_order_id", source.IDString()),
			zap.Error(err),
		)
	}
}

// snapshotOf captures the manifest fields of one source order
func snapshotOf(source *commerce.SourceOrder) runs.OrderSnapshot {
	return runs.OrderSnapshot{
		SourceOrderID: source.IDString(),
		OrderNumber:   source.Name,
		Email:         source.Email,
		CreatedAt:     source.CreatedAt,
		TotalPrice:    source.TotalPrice,
		ItemCount:     len(source.LineItems),
	}
}
