package internal

import "fmt"

type FuncTask struct {
	*BaseTask

	f func() error
}

func NewFuncTask(f func() error) *FuncTask {
	return &FuncTask{
		BaseTask: NewBaseTask(),

		f: f,
	}
}

func (t *FuncTask) String() string { return fmt.Sprintf("%T: %s", t, t.ID()) }
func (t *FuncTask) Run() (err error) {
	defer t.Done()
	defer func() {
		if r := recover(); r != nil {
			err = t.Fail(fmt.Errorf("panic: %v", r))
		}
	}()
	t.SetState(TaskStateRunning)

	if err := t.f(); err != nil {
		return t.Fail(err)
	}
	return nil
}
