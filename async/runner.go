package async

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
	"github.com/YuminosukeSato/lalg/pkg/log"
)

// job is one invocation of a Task.
type job struct {
	id       string
	task     Task
	mode     string
	state    State
	done     Callback
	err      error
	worker   int
	duration time.Duration
}

// Runner executes tasks on a bounded worker pool. Completions of
// asynchronous tasks are delivered one at a time on a single completion
// loop, so callbacks never run concurrently with each other.
//
// Callbacks may start further tasks. Callbacks must not call Close.
type Runner struct {
	opts options

	mu     sync.RWMutex
	closed bool

	queue       chan *job
	completions chan *job
	workers     sync.WaitGroup
	loopDone    chan struct{}
	closeOnce   sync.Once

	// inCallback is set while the completion loop delivers a result.
	inCallback atomic.Bool
	// overflow counts enqueues handed off because the queue was full
	// during a callback.
	overflow sync.WaitGroup
}

// NewRunner starts a runner's workers and completion loop.
func NewRunner(opts ...Option) *Runner {
	o := newOptions(opts)
	r := &Runner{
		opts:        o,
		queue:       make(chan *job, o.queueSize),
		completions: make(chan *job, o.workers),
		loopDone:    make(chan struct{}),
	}
	r.workers.Add(o.workers)
	for i := 0; i < o.workers; i++ {
		go r.work(i)
	}
	go r.completionLoop()
	return r
}

// Workers returns the size of the worker pool.
func (r *Runner) Workers() int { return r.opts.workers }

func (r *Runner) newJob(task Task, mode string, done Callback) *job {
	return &job{id: uuid.NewString(), task: task, mode: mode, done: done, worker: -1}
}

func (r *Runner) logger(j *job) log.Logger {
	return r.opts.logger.With(
		log.TaskIDKey, j.id,
		log.TaskNameKey, j.task.Name(),
		log.TaskModeKey, j.mode,
	)
}

func (r *Runner) prepare(j *job) error {
	if err := errors.SafeExecute(j.task.Name(), j.task.Prepare); err != nil {
		r.logger(j).Debug("task rejected", err)
		return err
	}
	j.state = StatePrepared
	r.logger(j).Debug("task prepared", log.TaskStateKey, j.state.String())
	return nil
}

func (r *Runner) execute(j *job) {
	j.state = StateRunning
	start := time.Now()
	j.err = errors.SafeExecute(j.task.Name(), j.task.Execute)
	j.duration = time.Since(start)
}

// complete delivers the outcome of j to its sink exactly once and clears it.
func (r *Runner) complete(j *job) {
	j.state = StateCompleted
	var result *matrix.Matrix
	if j.err == nil {
		result = j.task.Result()
	}

	logger := r.logger(j).With(
		log.TaskStateKey, j.state.String(),
		log.WorkerIDKey, j.worker,
		log.DurationMsKey, float64(j.duration.Microseconds())/1000,
	)
	if j.err != nil {
		logger.Warn("task failed", j.err)
	} else {
		logger.Debug("task completed")
	}

	done := j.done
	j.done = nil
	if done == nil {
		return
	}
	if err := errors.SafeExecute("callback", func() error {
		done(j.err, result)
		return nil
	}); err != nil {
		logger.Error("callback panicked", err)
	}
}

// Run prepares and executes task on the calling goroutine and returns its
// result or error.
func (r *Runner) Run(task Task) (*matrix.Matrix, error) {
	var (
		out    *matrix.Matrix
		outErr error
	)
	j := r.newJob(task, log.ModeSync, func(err error, result *matrix.Matrix) {
		out, outErr = result, err
	})
	if err := r.prepare(j); err != nil {
		j.err = err
	} else {
		r.execute(j)
	}
	r.complete(j)
	return out, outErr
}

// Start prepares task on the calling goroutine and dispatches it to the
// worker pool. A preparation failure yields an already rejected future and
// nothing is dispatched.
func (r *Runner) Start(task Task) *Future {
	j := r.newJob(task, log.ModeAsync, nil)
	f := NewFuture(j.id)
	j.done = func(err error, result *matrix.Matrix) { f.Resolve(err, result) }
	r.submit(j)
	return f
}

// StartWithCallback is Start with cb as the sink. cb is invoked exactly once:
// on the calling goroutine for preparation errors or a closed runner, and on
// the completion loop otherwise.
func (r *Runner) StartWithCallback(task Task, cb Callback) {
	r.submit(r.newJob(task, log.ModeAsync, cb))
}

func (r *Runner) submit(j *job) {
	if err := r.prepare(j); err != nil {
		r.reject(j, err)
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.reject(j, errors.WithStack(errors.ErrRunnerClosed))
		return
	}
	select {
	case r.queue <- j:
		return
	default:
	}
	if r.inCallback.Load() {
		// A blocked completion loop would stall the workers feeding it.
		r.overflow.Add(1)
		go func() {
			defer r.overflow.Done()
			r.queue <- j
		}()
		return
	}
	r.queue <- j
}

// reject completes j with err without executing it.
func (r *Runner) reject(j *job, err error) {
	j.err = err
	r.complete(j)
}

func (r *Runner) work(id int) {
	defer r.workers.Done()
	for j := range r.queue {
		j.worker = id
		r.logger(j).Debug("task running", log.TaskStateKey, StateRunning.String(), log.WorkerIDKey, id)
		r.execute(j)
		r.completions <- j
	}
}

func (r *Runner) completionLoop() {
	defer close(r.loopDone)
	for j := range r.completions {
		r.inCallback.Store(true)
		r.complete(j)
		r.inCallback.Store(false)
	}
}

// Close stops accepting tasks, lets queued and running tasks complete, and
// waits for the workers and the completion loop to exit. Tasks started
// after Close are rejected with ErrRunnerClosed.
func (r *Runner) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()

		r.overflow.Wait()
		close(r.queue)
		r.workers.Wait()
		close(r.completions)
		<-r.loopDone
	})
	return nil
}
