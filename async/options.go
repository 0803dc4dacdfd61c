package async

import (
	"runtime"

	"github.com/YuminosukeSato/lalg/pkg/log"
)

// DefaultQueueSize is the number of prepared tasks that may wait for a worker.
const DefaultQueueSize = 64

type options struct {
	workers   int
	queueSize int
	logger    log.Logger
}

// Option configures a Runner.
type Option func(*options)

// WithWorkers sets the number of worker goroutines. Values below 1 select
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithQueueSize bounds the number of tasks waiting for a worker. Start and
// StartWithCallback block while the queue is full.
func WithQueueSize(n int) Option {
	return func(o *options) {
		o.queueSize = n
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{queueSize: DefaultQueueSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.NumCPU()
	}
	if o.queueSize < 0 {
		o.queueSize = 0
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName("async")
	}
	return o
}
