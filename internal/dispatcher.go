package internal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// ErrDispatcherStopped is returned when dispatching to a dispatcher
	// that was never started or has been stopped
	ErrDispatcherStopped = errors.New("dispatcher is not active")
)

// Pool runs tasks on behalf of a caller
type Pool interface {
	Dispatch(ctx context.Context, task Task) (string, error)
}

// Dispatcher maintains a pool for available workers
// and a task queue that workers will process
type Dispatcher struct {
	sync.RWMutex

	maxWorkers int
	maxQueue   int
	taskTTL    time.Duration
	workers    []*Worker
	workerPool chan chan Task
	taskQueue  chan Task
	tasks      *cache.Cache
	quit       chan struct{}
	active     bool
}

// NewDispatcher creates a new dispatcher with the given
// number of workers and buffers the task queue based on maxQueue.
// Finished tasks can be looked up for DefaultTaskTTL.
func NewDispatcher(maxWorkers int, maxQueue int) *Dispatcher {
	return &Dispatcher{
		maxWorkers: maxWorkers,
		maxQueue:   maxQueue,
		taskTTL:    DefaultTaskTTL,
	}
}

// SetTaskTTL sets how long tasks remain available to Lookup, it must be
// called before Start
func (d *Dispatcher) SetTaskTTL(ttl time.Duration) {
	d.taskTTL = ttl
}

// Start creates and starts workers, adding them to the worker pool.
// Then, it starts a select loop to wait for tasks to be dispatched
// to available workers
func (d *Dispatcher) Start() {
	d.Lock()
	defer d.Unlock()

	if d.active {
		return
	}

	d.workers = []*Worker{}
	d.workerPool = make(chan chan Task, d.maxWorkers)
	d.taskQueue = make(chan Task, d.maxQueue)
	d.tasks = cache.New(d.taskTTL, d.taskTTL*2)
	d.quit = make(chan struct{})

	for i := 0; i < d.maxWorkers; i++ {
		worker := NewWorker(d.workerPool, d.quit)
		worker.Start()
		d.workers = append(d.workers, worker)
	}

	d.active = true

	go func(pool chan chan Task, queue chan Task, quit chan struct{}) {
		for {
			select {
			case task := <-queue:
				go assign(task, pool, quit)
			case <-quit:
				drain(queue)
				return
			}
		}
	}(d.workerPool, d.taskQueue, d.quit)
}

// assign hands the task to the next free worker, or cancels it if the
// dispatcher stops first
func assign(task Task, pool chan chan Task, quit chan struct{}) {
	select {
	case taskChannel := <-pool:
		select {
		case taskChannel <- task:
		case <-quit:
			task.Cancel(ErrDispatcherStopped)
		}
	case <-quit:
		task.Cancel(ErrDispatcherStopped)
	}
}

func drain(queue chan Task) {
	for {
		select {
		case task := <-queue:
			task.Cancel(ErrDispatcherStopped)
		default:
			return
		}
	}
}

// Stop ends execution for all workers and removes all workers. Tasks that
// were queued but not yet picked up by a worker are cancelled.
func (d *Dispatcher) Stop() {
	d.Lock()
	defer d.Unlock()

	if !d.active {
		return
	}

	d.active = false
	d.workers = []*Worker{}
	close(d.quit)
}

// Workers returns the number of running workers
func (d *Dispatcher) Workers() int {
	d.RLock()
	defer d.RUnlock()
	return len(d.workers)
}

// Lookup returns the matching `Task` given its id
func (d *Dispatcher) Lookup(id string) (Task, bool) {
	d.RLock()
	tasks := d.tasks
	d.RUnlock()

	if tasks == nil {
		return nil, false
	}

	v, ok := tasks.Get(id)
	if !ok {
		return nil, false
	}
	return v.(Task), true
}

// Dispatch pushes the given task into the task queue.
// The first available worker will perform the task. Dispatch blocks while
// the queue is full until ctx is done or the dispatcher stops.
func (d *Dispatcher) Dispatch(ctx context.Context, task Task) (string, error) {
	d.RLock()
	active, quit, queue, tasks := d.active, d.quit, d.taskQueue, d.tasks
	d.RUnlock()

	if !active {
		return "", ErrDispatcherStopped
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tasks.SetDefault(task.ID(), task)

	select {
	case queue <- task:
		// The dispatch loop may already have drained the queue for the last time
		select {
		case <-quit:
			drain(queue)
		default:
		}
		return task.ID(), nil
	case <-ctx.Done():
		tasks.Delete(task.ID())
		return "", ctx.Err()
	case <-quit:
		tasks.Delete(task.ID())
		return "", ErrDispatcherStopped
	}
}

// InlineDispatcher runs every task to completion on the calling goroutine,
// in the order they are dispatched
type InlineDispatcher struct{}

// Dispatch runs the task immediately and returns once it has finished
func (InlineDispatcher) Dispatch(ctx context.Context, task Task) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	runTask(task)
	return task.ID(), nil
}
