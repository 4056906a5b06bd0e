package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	interrors "github.com/jzx17/wakeworker/internal/errors"
	"github.com/jzx17/wakeworker/pkg/queue"
	"github.com/jzx17/wakeworker/pkg/types"
)

// WorkerState defines the state of a Worker
type WorkerState int32

const (
	// WorkerStateAsleep represents a worker waiting for a wake-up
	WorkerStateAsleep WorkerState = iota
	// WorkerStateAwake represents a worker that has been woken and drains its input
	WorkerStateAwake
	// WorkerStateStopped represents a stopped worker (terminal)
	WorkerStateStopped
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case WorkerStateAsleep:
		return "asleep"
	case WorkerStateAwake:
		return "awake"
	case WorkerStateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Worker owns an input and an output queue and one goroutine that moves
// items from the first to the second through a transform whenever it is woken.
type Worker struct {
	id     string
	input  *queue.SafeQueue[string]
	output *queue.SafeQueue[string]

	// mu guards the flags and the transform; cond waits on awake || stopped.
	// Lock order is mu before any queue guard.
	mu        sync.Mutex
	cond      *sync.Cond
	awake     bool
	stopped   bool
	draining  bool
	transform types.Transform
	err       error

	done chan struct{}

	// error handling
	failureHandler interrors.ErrorHandler
	errorHandler   types.ErrorHandler

	joinTimeout    time.Duration
	settleInterval time.Duration
	clock          types.Clock
	logger         *slog.Logger
	metrics        *Metrics

	// statistics
	totalAdded        int64
	totalProcessed    int64
	totalDropped      int64
	totalFailed       int64
	lastProcessedTime int64 // Unix nanosecond timestamp
}

// NewWorker creates a Worker and starts its goroutine. The worker starts asleep.
// Callers must Close (or Stop and Join) the worker when done with it.
func NewWorker(config *WorkerConfig) (*Worker, error) {
	if config == nil {
		config = DefaultWorkerConfig()
	}

	cfg := *config
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	w := &Worker{
		id:             cfg.ID,
		input:          queue.New[string](),
		output:         queue.New[string](),
		transform:      cfg.Transform,
		done:           make(chan struct{}),
		errorHandler:   cfg.ErrorHandler,
		joinTimeout:    cfg.JoinTimeout,
		settleInterval: cfg.SettleInterval,
		clock:          cfg.Clock,
		logger:         cfg.Logger.With("worker_id", cfg.ID),
	}
	w.cond = sync.NewCond(&w.mu)
	w.failureHandler = interrors.HandlerFor(cfg.FailurePolicy, cfg.Logger)

	if cfg.MetricsRegisterer != nil {
		metrics, err := newMetrics(cfg.MetricsRegisterer, cfg.MetricsPrefix, cfg.ID)
		if err != nil {
			return nil, err
		}
		w.metrics = metrics
	}

	go w.run()

	return w, nil
}

// ID returns the Worker ID
func (w *Worker) ID() string {
	return w.id
}

// SetTransform installs the transform applied to each item. A nil transform
// makes the worker discard items instead of forwarding them.
func (w *Worker) SetTransform(f types.Transform) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.transform = f
}

// WakeUp asks the worker to drain its input. It is a no-op once stopped.
func (w *Worker) WakeUp() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.awake = true
	w.metrics.recordWakeUp()
	w.mu.Unlock()

	w.cond.Signal()
	w.logger.Debug("wake up requested")
}

// PutToSleep clears the awake flag. A drain already in progress runs to completion.
func (w *Worker) PutToSleep() {
	w.mu.Lock()
	w.awake = false
	w.metrics.recordAwake(false)
	w.mu.Unlock()

	w.cond.Signal()
}

// Stop asks the goroutine to exit once the current drain has emptied the input.
// It clears the awake flag, is idempotent and does not wait; see Join.
func (w *Worker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.awake = false
	w.metrics.recordAwake(false)
	w.mu.Unlock()

	w.cond.Broadcast()
	w.logger.Info("worker stop requested")
}

// Join blocks until the goroutine has exited
func (w *Worker) Join() {
	<-w.done
}

// JoinTimeout is Join bounded by d on the worker clock; d <= 0 waits forever
func (w *Worker) JoinTimeout(d time.Duration) error {
	if d <= 0 {
		w.Join()
		return nil
	}

	timer := w.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-w.done:
		return nil
	case <-timer.C():
		return fmt.Errorf("worker %s join: %w", w.id, types.ErrTimeout)
	}
}

// Close stops the worker and waits for its goroutine, bounded by the configured join timeout
func (w *Worker) Close() error {
	w.Stop()
	return w.JoinTimeout(w.joinTimeout)
}

// Done returns a channel closed when the goroutine exits
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// AddData enqueues item on the input queue. It does not wake the worker.
func (w *Worker) AddData(item string) {
	w.input.Push(item)
	atomic.AddInt64(&w.totalAdded, 1)
	w.metrics.recordAdded(w.input.Size())
}

// TryAddData enqueues item only if the input guard is free
func (w *Worker) TryAddData(item string) bool {
	if !w.input.TryPush(item) {
		return false
	}
	atomic.AddInt64(&w.totalAdded, 1)
	w.metrics.recordAdded(w.input.Size())
	return true
}

// GetData removes up to max results from the output queue in FIFO order.
// It never waits; max below 1 is treated as 1.
func (w *Worker) GetData(max int) []string {
	if max < 1 {
		max = 1
	}
	results := w.output.PopN(max)
	w.metrics.recordDepths(w.input.Size(), w.output.Size())
	return results
}

// IsAwake reports whether the worker is awake
func (w *Worker) IsAwake() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.awake
}

// IsStopped reports whether Stop was called or the worker failed
func (w *Worker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// IsIdle reports whether the worker is asleep with both queues empty
func (w *Worker) IsIdle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.awake && w.input.IsEmpty() && w.output.IsEmpty()
}

// State returns the current Worker state
func (w *Worker) State() WorkerState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Worker) stateLocked() WorkerState {
	switch {
	case w.stopped:
		return WorkerStateStopped
	case w.awake:
		return WorkerStateAwake
	default:
		return WorkerStateAsleep
	}
}

// Err returns the transform failure that stopped the worker, if any
func (w *Worker) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// InputLen returns the number of items waiting to be transformed
func (w *Worker) InputLen() int {
	return w.input.Size()
}

// OutputLen returns the number of results waiting to be collected
func (w *Worker) OutputLen() int {
	return w.output.Size()
}

// WaitSettled blocks until the worker is stopped, or asleep with no drain in
// progress. Items added without a WakeUp do not keep it from settling.
func (w *Worker) WaitSettled(ctx context.Context) error {
	if w.settled() {
		return nil
	}

	ticker := w.clock.NewTicker(w.settleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C():
			if w.settled() {
				return nil
			}
		}
	}
}

func (w *Worker) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped || (!w.awake && !w.draining)
}

// run is the worker goroutine
func (w *Worker) run() {
	defer close(w.done)

	ctx := context.Background()
	w.logger.Info("worker started")

	for {
		w.mu.Lock()
		for !w.awake && !w.stopped {
			w.cond.Wait()
		}
		if w.stopped {
			w.mu.Unlock()
			break
		}
		w.draining = true
		w.mu.Unlock()

		for {
			if err := w.drain(ctx); err != nil {
				w.fail(err)
				return
			}

			// items pushed after the last Pop are drained before going back to sleep,
			// even when a stop arrived mid-drain
			w.mu.Lock()
			if !w.input.IsEmpty() {
				w.mu.Unlock()
				continue
			}
			w.awake = false
			w.draining = false
			w.metrics.recordAwake(false)
			w.mu.Unlock()
			break
		}

		w.metrics.recordDepths(w.input.Size(), w.output.Size())
		w.logger.Debug("drain complete, going back to sleep")
	}

	w.logger.Info("worker stopped")
}

// drain transforms items until the input is empty. Stop does not cut it short.
func (w *Worker) drain(ctx context.Context) error {
	for {
		w.mu.Lock()
		f := w.transform
		w.mu.Unlock()

		item, err := w.input.Pop()
		if errors.Is(err, types.ErrEmptyQueue) {
			return nil
		}

		if f == nil {
			atomic.AddInt64(&w.totalDropped, 1)
			w.metrics.recordDropped()
			continue
		}

		start := w.clock.Now()
		result, err := w.apply(f, item)
		w.metrics.recordTransform(w.clock.Since(start), err != nil)

		if err != nil {
			atomic.AddInt64(&w.totalFailed, 1)
			if handledErr := w.handleError(ctx, item, err); handledErr != nil {
				return handledErr
			}
			continue
		}

		w.output.Push(result)
		atomic.AddInt64(&w.totalProcessed, 1)
		atomic.StoreInt64(&w.lastProcessedTime, w.clock.Now().UnixNano())
	}
}

// apply runs the transform with panic recovery support
func (w *Worker) apply(f types.Transform, item string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)

			var cause error
			switch v := r.(type) {
			case error:
				cause = fmt.Errorf("panic: %w", v)
			default:
				cause = fmt.Errorf("panic: %v", v)
			}

			err = types.NewTransformError("transform", item, cause).
				WithContext("worker_id", w.id).
				WithContext("stack_trace", string(buf[:n]))
		}
	}()

	return f(item), nil
}

// handleError passes err through the ErrorHandler, then applies the failure
// policy to whatever the handler returned. A non-nil return stops the worker.
func (w *Worker) handleError(ctx context.Context, item string, err error) error {
	if w.errorHandler != nil {
		if err = w.errorHandler(err); err == nil {
			w.logger.Debug("transform failure handled", "input", item)
			return nil
		}
	}

	errCtx := interrors.NewErrorContext(err, "transform", item, w.clock.Now())
	errCtx.WorkerID = w.id
	return w.failureHandler.HandleError(ctx, errCtx)
}

// fail moves the worker to the stopped state after a fatal transform failure
func (w *Worker) fail(err error) {
	w.mu.Lock()
	w.err = err
	w.stopped = true
	w.awake = false
	w.draining = false
	w.metrics.recordAwake(false)
	w.mu.Unlock()

	w.cond.Broadcast()
	w.logger.Error("worker stopped after transform failure", "error", err)
}

// Stats gets Worker statistics
func (w *Worker) Stats() WorkerStats {
	var last time.Time
	if ns := atomic.LoadInt64(&w.lastProcessedTime); ns != 0 {
		last = time.Unix(0, ns)
	}

	return WorkerStats{
		ID:                w.id,
		State:             w.State(),
		TotalAdded:        atomic.LoadInt64(&w.totalAdded),
		TotalProcessed:    atomic.LoadInt64(&w.totalProcessed),
		TotalDropped:      atomic.LoadInt64(&w.totalDropped),
		TotalFailed:       atomic.LoadInt64(&w.totalFailed),
		InputDepth:        w.input.Size(),
		OutputDepth:       w.output.Size(),
		LastProcessedTime: last,
	}
}

// WorkerStats defines Worker statistics
type WorkerStats struct {
	ID                string
	State             WorkerState
	TotalAdded        int64
	TotalProcessed    int64
	TotalDropped      int64
	TotalFailed       int64
	InputDepth        int
	OutputDepth       int
	LastProcessedTime time.Time
}

// IsActive checks if the worker was awake when the stats were taken
func (ws WorkerStats) IsActive() bool {
	return ws.State == WorkerStateAwake
}

// GetSuccessRate gets the success rate of attempted transforms
func (ws WorkerStats) GetSuccessRate() float64 {
	total := ws.TotalProcessed + ws.TotalFailed
	if total == 0 {
		return 0
	}
	return float64(ws.TotalProcessed) / float64(total)
}

// GetErrorRate gets the error rate of attempted transforms
func (ws WorkerStats) GetErrorRate() float64 {
	total := ws.TotalProcessed + ws.TotalFailed
	if total == 0 {
		return 0
	}
	return float64(ws.TotalFailed) / float64(total)
}
