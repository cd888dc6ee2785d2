// Package dispatch serializes calls to the text generation provider and
// spaces them by a minimum interval derived from a requests-per-minute budget.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/utils/logging"
)

const DefaultRequestsPerMinute = 2

var (
	ErrEmptyPrompt = goerr.New("prompt is empty")
)

// Provider generates text for a prompt
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(ctx context.Context, prompt string) (string, error)

func (f ProviderFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Observer receives queue events, e.g. for metrics. All methods are called
// from the draining goroutine except Enqueued.
type Observer interface {
	Enqueued(depth int)
	Issued(wait time.Duration, depth int)
	Settled(elapsed time.Duration, err error)
}

type result struct {
	text string
	err  error
}

// Pending is the handle of one queued call. It is settled exactly once.
type Pending struct {
	ctx    context.Context
	prompt string
	done   chan struct{}
	res    result
}

// Done is closed once the call has been settled
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call is settled or ctx ends. Giving up on the
// result does not stop the call; it still runs and consumes the interval.
func (p *Pending) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return p.res.text, p.res.err
	case <-ctx.Done():
		return "", goerr.Wrap(ctx.Err(), "stopped waiting for queued call")
	}
}

func (p *Pending) settle(text string, err error) {
	p.res = result{text: text, err: err}
	close(p.done)
}

// Stats is a snapshot of the queue counters
type Stats struct {
	Pending      int
	Issued       int64
	Failed       int64
	LastIssuedAt time.Time
}

// Queue issues provider calls one at a time in submission order.
type Queue struct {
	provider    Provider
	clock       Clock
	observer    Observer
	minInterval time.Duration

	mu           sync.Mutex
	pending      []*Pending
	draining     bool
	lastIssuedAt time.Time
	issued       int64
	failed       int64
}

// Option is a functional option for Queue
type Option func(*Queue)

// WithRequestsPerMinute sets the call budget. Non-positive values keep the default.
func WithRequestsPerMinute(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.minInterval = time.Minute / time.Duration(n)
		}
	}
}

// WithClock replaces the wall clock
func WithClock(clock Clock) Option {
	return func(q *Queue) {
		q.clock = clock
	}
}

// WithObserver registers an observer of queue events
func WithObserver(o Observer) Option {
	return func(q *Queue) {
		q.observer = o
	}
}

// New creates an idle queue in front of provider
func New(provider Provider, opts ...Option) *Queue {
	q := &Queue{
		provider:    provider,
		clock:       realClock{},
		minInterval: time.Minute / DefaultRequestsPerMinute,
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

// MinInterval returns the minimum spacing between two issued calls
func (q *Queue) MinInterval() time.Duration {
	return q.minInterval
}

// Submit enqueues prompt and waits for its result.
func (q *Queue) Submit(ctx context.Context, prompt string) (string, error) {
	p, err := q.Enqueue(ctx, prompt)
	if err != nil {
		return "", err
	}
	return p.Wait(ctx)
}

// Enqueue appends prompt to the tail of the queue and starts draining if the
// queue was idle. The call runs with ctx values but without its cancellation.
func (q *Queue) Enqueue(ctx context.Context, prompt string) (*Pending, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	p := &Pending{
		ctx:    context.WithoutCancel(ctx),
		prompt: prompt,
		done:   make(chan struct{}),
	}

	q.mu.Lock()
	q.pending = append(q.pending, p)
	depth := len(q.pending)
	start := !q.draining
	q.draining = true
	q.mu.Unlock()

	if q.observer != nil {
		q.observer.Enqueued(depth)
	}
	if start {
		go q.drain()
	}

	return p, nil
}

// Len returns the number of calls waiting to be issued
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Stats returns a snapshot of the queue counters
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Pending:      len(q.pending),
		Issued:       q.issued,
		Failed:       q.failed,
		LastIssuedAt: q.lastIssuedAt,
	}
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		p := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		last := q.lastIssuedAt
		q.mu.Unlock()

		q.process(p, last)
	}
}

func (q *Queue) process(p *Pending, last time.Time) {
	logger := logging.From(p.ctx)

	var wait time.Duration
	if !last.IsZero() {
		if elapsed := q.clock.Now().Sub(last); elapsed < q.minInterval {
			wait = q.minInterval - elapsed
			q.clock.Sleep(wait)
		}
	}

	issuedAt := q.clock.Now()
	q.mu.Lock()
	q.lastIssuedAt = issuedAt
	q.issued++
	depth := len(q.pending)
	q.mu.Unlock()

	if q.observer != nil {
		q.observer.Issued(wait, depth)
	}
	logger.Debug("issuing provider call", "wait", wait, "pending", depth)

	text, err := q.call(p)
	if err != nil {
		q.mu.Lock()
		q.failed++
		q.mu.Unlock()
		logger.Warn("provider call failed", "error", err)
	}

	if q.observer != nil {
		q.observer.Settled(q.clock.Now().Sub(issuedAt), err)
	}
	p.settle(text, err)
}

func (q *Queue) call(p *Pending) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerr.New("provider panicked", goerr.V("panic", fmt.Sprint(r)))
		}
	}()

	return q.provider.Generate(p.ctx, p.prompt)
}
