package internal

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Worker attaches to a provided worker pool, and
// looks for tasks on its task channel
type Worker struct {
	workerPool  chan chan Task
	taskChannel chan Task
	quit        chan struct{}
}

// NewWorker creates a new worker using the given id and
// attaches to the provided worker pool. It also initializes
// the task/quit channels
func NewWorker(workerPool chan chan Task, quit chan struct{}) *Worker {
	return &Worker{
		workerPool:  workerPool,
		taskChannel: make(chan Task),
		quit:        quit,
	}
}

// Start initializes a select loop to listen for tasks to execute
func (w *Worker) Start() {
	go func() {
		for {
			select {
			case w.workerPool <- w.taskChannel:
			case <-w.quit:
				return
			}

			select {
			case task := <-w.taskChannel:
				runTask(task)
			case <-w.quit:
				return
			}
		}
	}()
}

func runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			log.WithError(err).Errorf("task %s panicked", task)
			task.Cancel(err)
		}
	}()

	if err := task.Run(); err != nil {
		log.WithError(err).Errorf("error running task %s", task)
	}
}
