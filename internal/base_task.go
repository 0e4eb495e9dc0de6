package internal

import (
	"fmt"
	"sync"

	"github.com/renstrom/shortuuid"
)

type BaseTask struct {
	sync.RWMutex

	state TaskState
	data  TaskData
	err   error
	id    string

	done     chan struct{}
	doneOnce sync.Once
}

func NewBaseTask() *BaseTask {
	return &BaseTask{
		data: make(TaskData),
		id:   shortuuid.New(),
		done: make(chan struct{}),
	}
}

func (t *BaseTask) SetState(state TaskState) {
	t.Lock()
	defer t.Unlock()
	t.state = state
}

func (t *BaseTask) SetData(key, val string) {
	t.Lock()
	defer t.Unlock()
	if t.data == nil {
		t.data = make(TaskData)
	}
	t.data[key] = val
}

// Done marks the task complete, or failed if an error was recorded, and
// releases any waiters
func (t *BaseTask) Done() {
	t.Lock()
	if t.err != nil {
		t.state = TaskStateFailed
	} else {
		t.state = TaskStateComplete
	}
	t.Unlock()

	t.doneOnce.Do(func() { close(t.done) })
}

func (t *BaseTask) Fail(err error) error {
	t.Lock()
	defer t.Unlock()
	t.err = err
	return err
}

func (t *BaseTask) Cancel(err error) {
	t.Fail(err)
	t.Done()
}

func (t *BaseTask) Wait() {
	<-t.done
}

func (t *BaseTask) Result() TaskResult {
	t.RLock()
	defer t.RUnlock()

	stateStr := t.state.String()
	errStr := ""
	if t.err != nil {
		errStr = t.err.Error()
	}

	data := make(TaskData, len(t.data))
	for k, v := range t.data {
		data[k] = v
	}

	return TaskResult{
		State: stateStr,
		Error: errStr,
		Data:  data,
	}
}

func (t *BaseTask) String() string { return fmt.Sprintf("%T: %s", t, t.ID()) }
func (t *BaseTask) ID() string     { return t.id }

func (t *BaseTask) State() TaskState {
	t.RLock()
	defer t.RUnlock()
	return t.state
}

func (t *BaseTask) Error() error {
	t.RLock()
	defer t.RUnlock()
	return t.err
}
