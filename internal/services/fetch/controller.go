package fetch

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"clientdesk/internal/domain"
)

// ErrorMessage is published in FetchState.Error when a fetch fails.
const ErrorMessage = "Não foi possível carregar os clientes."

var (
	// ErrInvalidPagination is returned by Configure for page < 1 or limit < 1.
	ErrInvalidPagination = errors.New("page and limit must be positive")
	// ErrNotConfigured is returned by Refetch before the first Configure.
	ErrNotConfigured = errors.New("pagination not configured")
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for fetch failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

// Controller fetches one page of clients at a time and publishes the
// resulting FetchState to subscribers.
type Controller struct {
	lister domain.ClientLister
	log    logrus.FieldLogger

	mu         sync.Mutex
	state      domain.FetchState
	page       int
	limit      int
	configured bool
	seq        uint64
	cancel     context.CancelFunc
	subs       map[int]func(domain.FetchState)
	nextSub    int

	// pub serialises notifications so subscribers see states in the order
	// they were applied. Lock order is pub, then mu.
	pub sync.Mutex
	wg  sync.WaitGroup
}

// New returns an unconfigured Controller reading pages from lister.
func New(lister domain.ClientLister, opts ...Option) *Controller {
	c := &Controller{
		lister: lister,
		log:    logrus.StandardLogger(),
		state:  domain.FetchState{Clients: []domain.Client{}, CurrentPage: 1},
		subs:   make(map[int]func(domain.FetchState)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "fetch")
	return c
}

// Configure applies the (page, limit) pair. When it equals the last applied
// pair the current state is returned and nothing is fetched; otherwise a
// fetch starts and the loading state is returned.
func (c *Controller) Configure(ctx context.Context, page, limit int) (domain.FetchState, error) {
	if page < 1 || limit < 1 {
		return domain.FetchState{}, ErrInvalidPagination
	}

	c.pub.Lock()
	c.mu.Lock()
	if c.configured && c.page == page && c.limit == limit {
		st := c.state.Clone()
		c.mu.Unlock()
		c.pub.Unlock()
		return st, nil
	}
	c.page, c.limit, c.configured = page, limit, true
	return c.start(ctx), nil
}

// Refetch re-issues the fetch for the current pair.
func (c *Controller) Refetch(ctx context.Context) error {
	c.pub.Lock()
	c.mu.Lock()
	if !c.configured {
		c.mu.Unlock()
		c.pub.Unlock()
		return ErrNotConfigured
	}
	c.start(ctx)
	return nil
}

// start marks the state as loading and launches the read. It is called with
// c.pub and c.mu held and releases both.
func (c *Controller) start(ctx context.Context) domain.FetchState {
	c.seq++
	token := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.state.IsLoading = true
	c.state.Error = ""

	page, limit := c.page, c.limit
	c.wg.Add(1)
	go c.run(fctx, token, page, limit)

	return c.publish()
}

func (c *Controller) run(ctx context.Context, token uint64, page, limit int) {
	defer c.wg.Done()

	res, err := c.lister.ListClients(ctx, page, limit)

	c.pub.Lock()
	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		c.pub.Unlock()
		c.log.WithFields(logrus.Fields{"page": page, "limit": limit}).Debug("dropping stale page")
		return
	}
	c.cancel()
	c.cancel = nil

	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"page": page, "limit": limit}).Warn("list clients failed")
		c.state = domain.FetchState{
			Clients:     []domain.Client{},
			Error:       ErrorMessage,
			TotalPages:  1,
			CurrentPage: 1,
		}
	} else {
		clients := slices.Clone(res.Clients)
		if clients == nil {
			clients = []domain.Client{}
		}
		c.state = domain.FetchState{
			Clients:     clients,
			TotalPages:  res.TotalPages,
			CurrentPage: res.CurrentPage,
		}
	}
	c.publish()
}

// publish snapshots the state and releases c.mu, then notifies subscribers
// and releases c.pub. It is called with both held; c.pub is always taken
// before c.mu, so subscribers may read the controller while they run.
func (c *Controller) publish() domain.FetchState {
	st := c.state.Clone()
	subs := make([]func(domain.FetchState), 0, len(c.subs))
	for _, id := range slices.Sorted(maps.Keys(c.subs)) {
		subs = append(subs, c.subs[id])
	}
	c.mu.Unlock()
	defer c.pub.Unlock()

	for _, fn := range subs {
		fn(st.Clone())
	}
	return st
}

// State returns a copy of the current state.
func (c *Controller) State() domain.FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Params returns the last applied pair, or (1, 0) before Configure.
func (c *Controller) Params() (page, limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.configured {
		return 1, 0
	}
	return c.page, c.limit
}

// Subscribe registers fn to receive every published state. fn runs on the
// publishing goroutine; it may call State, Params and Subscribe but must not
// call Configure, Refetch or Close directly.
func (c *Controller) Subscribe(fn func(domain.FetchState)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Wait blocks until every started fetch has settled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels the in-flight fetch, if any, and waits for it to settle.
// The cancelled fetch publishes nothing; a pending loading state is cleared
// and published once.
func (c *Controller) Close() {
	c.pub.Lock()
	c.mu.Lock()
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.state.IsLoading {
		c.state.IsLoading = false
		c.publish()
	} else {
		c.mu.Unlock()
		c.pub.Unlock()
	}
	c.Wait()
}
