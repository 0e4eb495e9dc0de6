package internal

import (
	"context"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/jointwt/ghuser/types"
)

// Fetcher performs the blocking lookups an aggregation is composed of.
// Implementations must be safe for concurrent use.
type Fetcher interface {
	Profile(ctx context.Context, login string) (types.Profile, error)
	Followers(ctx context.Context, login string) (types.Followers, error)
	Repositories(ctx context.Context, login string) (types.Repositories, error)
}

// AggregationState ...
type AggregationState int32

const (
	AggregationPending AggregationState = iota
	AggregationPartiallySettled
	AggregationSettled
)

func (s AggregationState) String() string {
	switch s {
	case AggregationPending:
		return "pending"
	case AggregationPartiallySettled:
		return "partially settled"
	case AggregationSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Result is a CompositeUser along with the branches that hold fallback
// values and the id of the task each branch ran as
type Result struct {
	User     types.CompositeUser
	Degraded []string
	Tasks    map[string]string
}

// Aggregator combines a user's profile, followers and repositories into a
// single CompositeUser, running each lookup on a shared Pool
type Aggregator struct {
	fetcher Fetcher
	pool    Pool
	logger  log.FieldLogger
}

// AggregatorOption ...
type AggregatorOption func(*Aggregator)

// WithLogger sets the logger fallback events are reported to
func WithLogger(logger log.FieldLogger) AggregatorOption {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// NewAggregator ...
func NewAggregator(fetcher Fetcher, pool Pool, options ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		pool:    pool,
		logger:  log.StandardLogger(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// aggregation holds the slots each branch of a single call writes to
type aggregation struct {
	login string

	profile      types.Profile
	followers    types.Followers
	repositories types.Repositories

	mu       sync.Mutex
	degraded map[Branch]bool
	settled  int32
}

func (agg *aggregation) State() AggregationState {
	switch n := atomic.LoadInt32(&agg.settled); {
	case n == 0:
		return AggregationPending
	case n < int32(len(Branches)):
		return AggregationPartiallySettled
	default:
		return AggregationSettled
	}
}

func (a *Aggregator) settler(agg *aggregation, branch Branch) func(bool) {
	return func(degraded bool) {
		if degraded {
			agg.mu.Lock()
			agg.degraded[branch] = true
			agg.mu.Unlock()
		}
		atomic.AddInt32(&agg.settled, 1)
		a.logger.WithField("login", agg.login).WithField("branch", branch).Debugf("branch settled, aggregation %s", agg.State())
	}
}

func (a *Aggregator) tasks(ctx context.Context, agg *aggregation) []*BranchTask {
	login := agg.login
	return []*BranchTask{
		NewBranchTask(BranchProfile, login, a.logger,
			func() (err error) {
				agg.profile, err = a.fetcher.Profile(ctx, login)
				return
			},
			func() { agg.profile = types.UnknownProfile() },
			a.settler(agg, BranchProfile),
		),
		NewBranchTask(BranchFollowers, login, a.logger,
			func() (err error) {
				agg.followers, err = a.fetcher.Followers(ctx, login)
				return
			},
			func() { agg.followers = types.Followers{} },
			a.settler(agg, BranchFollowers),
		),
		NewBranchTask(BranchRepositories, login, a.logger,
			func() (err error) {
				agg.repositories, err = a.fetcher.Repositories(ctx, login)
				return
			},
			func() { agg.repositories = types.Repositories{} },
			a.settler(agg, BranchRepositories),
		),
	}
}

// Aggregate runs the three lookups for login concurrently and waits for all
// of them to settle. A failed lookup never fails the call, its branch holds
// a fallback value and is listed in Result.Degraded. Only an
// *OrchestrationError is returned, when the branches could not be scheduled
// or ctx was cancelled.
func (a *Aggregator) Aggregate(ctx context.Context, login string) (Result, error) {
	if login == "" {
		return Result{}, ErrEmptyLogin
	}

	stats.Add("aggregations", 1)
	stats.Add("inflight", 1)
	defer stats.Add("inflight", -1)

	agg := &aggregation{login: login, degraded: make(map[Branch]bool)}

	var (
		err        error
		dispatched []*BranchTask
	)

	for _, task := range a.tasks(ctx, agg) {
		if _, err = a.pool.Dispatch(ctx, task); err != nil {
			a.logger.WithError(err).WithField("login", login).Errorf("error dispatching %s branch", task.Branch())
			break
		}
		dispatched = append(dispatched, task)
	}

	// Branches already running still write to agg so wait for them either way
	for _, task := range dispatched {
		task.Wait()
	}

	if err == nil {
		for _, task := range dispatched {
			if !task.Settled() {
				err = task.Error()
				break
			}
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		stats.Add("orchestration_errors", 1)
		return Result{}, &OrchestrationError{Login: login, Err: err}
	}

	var degraded []string
	for _, branch := range Branches {
		if agg.degraded[branch] {
			degraded = append(degraded, string(branch))
		}
	}

	tasks := make(map[string]string, len(dispatched))
	for _, task := range dispatched {
		tasks[string(task.Branch())] = task.ID()
	}

	return Result{
		User:     types.NewCompositeUser(agg.profile, agg.followers, agg.repositories),
		Degraded: degraded,
		Tasks:    tasks,
	}, nil
}

// GetComposite returns the CompositeUser for login, see Aggregate
func (a *Aggregator) GetComposite(ctx context.Context, login string) (types.CompositeUser, error) {
	res, err := a.Aggregate(ctx, login)
	if err != nil {
		return types.CompositeUser{}, err
	}
	return res.User, nil
}
