package internal

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Branch names one of the independent lookups of an aggregation
type Branch string

const (
	BranchProfile      Branch = "profile"
	BranchFollowers    Branch = "followers"
	BranchRepositories Branch = "repositories"
)

// Branches lists every branch in the order results are reported
var Branches = []Branch{BranchProfile, BranchFollowers, BranchRepositories}

// BranchTask runs a single lookup of an aggregation. A failed lookup is
// replaced by its fallback value, so Run never returns an error and a
// BranchTask that ran is always settled.
type BranchTask struct {
	*FuncTask

	branch Branch
	login  string
	logger log.FieldLogger

	lookup   func() error
	fallback func()
	settle   func(degraded bool)

	settled bool
}

// NewBranchTask creates a task for the given branch. lookup performs the
// call and stores its value, fallback stores the degraded value instead and
// settle is called exactly once after either has happened.
func NewBranchTask(branch Branch, login string, logger log.FieldLogger, lookup func() error, fallback func(), settle func(degraded bool)) *BranchTask {
	t := &BranchTask{
		branch:   branch,
		login:    login,
		logger:   logger,
		lookup:   lookup,
		fallback: fallback,
		settle:   settle,
	}
	t.FuncTask = NewFuncTask(t.run)
	t.SetData("branch", string(branch))
	t.SetData("login", login)
	return t
}

func (t *BranchTask) String() string {
	return fmt.Sprintf("%T: %s (%s %s)", t, t.ID(), t.branch, t.login)
}

func (t *BranchTask) Branch() Branch { return t.branch }

// Settled returns `true` once the branch holds either its real or its
// fallback value
func (t *BranchTask) Settled() bool {
	t.RLock()
	defer t.RUnlock()
	return t.settled
}

// run never fails, a lookup error is recorded on the task and the fallback
// value is used instead
func (t *BranchTask) run() error {
	degraded := false
	if err := t.safeLookup(); err != nil {
		t.Fail(err)
		t.fallback()
		t.SetData("fallback", "true")
		countFallback(string(t.branch))
		t.logFallback(err)
		degraded = true
	}

	t.Lock()
	t.settled = true
	t.Unlock()

	t.settle(degraded)

	// Finished tasks stay registered for a while, drop the references to
	// the aggregation so its results are not retained with them
	t.lookup, t.fallback, t.settle = nil, nil, nil

	return nil
}

func (t *BranchTask) safeLookup() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.lookup()
}

func (t *BranchTask) logFallback(err error) {
	entry := t.logger.WithError(err).WithField("branch", t.branch).WithField("login", t.login)
	switch t.branch {
	case BranchProfile:
		entry.Warnf("error retrieving user %s", t.login)
	default:
		entry.Warnf("error retrieving %s %s", t.login, t.branch)
	}
}
