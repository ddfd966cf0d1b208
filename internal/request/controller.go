// Package request tracks the lifecycle of one user-triggered asynchronous
// operation (idle, pending, success, failure) for a rendering layer.
//
// A Controller is owned by a single Bubble Tea update loop: Run transitions
// to pending and returns a command that executes off the loop, and Handle
// applies the resulting message back on it. Nothing here locks.
package request

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

const DefaultFailureMessage = "Something went wrong. Please try again later."

// Executor performs the operation. It runs outside the update loop.
type Executor[T any] func(ctx context.Context) (T, error)

// Result is the message produced by the command Run returns.
type Result[T any] struct {
	ID    string
	Token uint64
	Data  T
	Err   error
}

// Overlap controls what Run does while a previous run is still pending.
type Overlap int

const (
	// OverlapAllow starts another run; whichever result arrives last wins
	// unless stale results are discarded.
	OverlapAllow Overlap = iota
	// OverlapReject ignores Run while pending.
	OverlapReject
)

type options struct {
	ctx          context.Context
	overlap      Overlap
	discardStale bool
	normalize    func(error) string
}

type Option func(*options)

// WithContext sets the context handed to every executor.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

func WithOverlap(overlap Overlap) Option {
	return func(o *options) { o.overlap = overlap }
}

// WithDiscardStale drops results whose token is not the latest Run. Off by
// default, so late responses overwrite newer ones.
func WithDiscardStale(discard bool) Option {
	return func(o *options) { o.discardStale = discard }
}

// WithFailureMessage maps every failure to msg.
func WithFailureMessage(msg string) Option {
	return func(o *options) {
		o.normalize = func(error) string { return msg }
	}
}

func WithNormalizer(fn func(error) string) Option {
	return func(o *options) {
		if fn != nil {
			o.normalize = fn
		}
	}
}

type Controller[T any] struct {
	id        string
	opts      options
	state     State[T]
	seq       uint64
	latest    uint64
	inflight  int
	observers []func(State[T])
}

// New returns an idle controller. The id routes Result messages, so it must
// be unique among controllers sharing a program.
func New[T any](id string, opts ...Option) *Controller[T] {
	o := options{
		ctx:       context.Background(),
		overlap:   OverlapAllow,
		normalize: func(error) string { return DefaultFailureMessage },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[T]{id: id, opts: o}
}

func (c *Controller[T]) ID() string      { return c.id }
func (c *Controller[T]) State() State[T] { return c.state }
func (c *Controller[T]) Status() Status  { return c.state.Status }
func (c *Controller[T]) Pending() bool   { return c.state.Status == Pending }

// InFlight reports how many started runs have not been handled yet.
func (c *Controller[T]) InFlight() int { return c.inflight }

// Subscribe registers fn to be called synchronously after every transition.
func (c *Controller[T]) Subscribe(fn func(State[T])) {
	if fn == nil {
		return
	}
	c.observers = append(c.observers, fn)
}

// Run moves to pending, clearing data and error, and returns the command that
// executes exec. It returns nil when exec is nil or the overlap policy rejects
// the run.
func (c *Controller[T]) Run(exec Executor[T]) tea.Cmd {
	if exec == nil {
		return nil
	}
	if c.state.Status == Pending && c.opts.overlap == OverlapReject {
		log.Debug().Str("controller", c.id).Msg("run rejected while pending")
		return nil
	}
	c.seq++
	token := c.seq
	c.latest = token
	c.inflight++
	c.set(State[T]{Status: Pending, Token: token})

	ctx, id := c.opts.ctx, c.id
	return func() tea.Msg {
		data, err := exec(ctx)
		return Result[T]{ID: id, Token: token, Data: data, Err: err}
	}
}

// Handle applies msg if it is a Result addressed to this controller and
// reports whether it was consumed.
func (c *Controller[T]) Handle(msg tea.Msg) bool {
	res, ok := msg.(Result[T])
	if !ok || res.ID != c.id {
		return false
	}
	if c.inflight > 0 {
		c.inflight--
	}
	if c.opts.discardStale && res.Token != c.latest {
		log.Debug().
			Str("controller", c.id).
			Uint64("token", res.Token).
			Uint64("latest", c.latest).
			Msg("discarding stale result")
		return true
	}
	if res.Err != nil {
		log.Error().
			Err(res.Err).
			Str("controller", c.id).
			Uint64("token", res.Token).
			Msg("request failed")
		c.set(State[T]{Status: Failure, Err: c.message(res.Err), Cause: res.Err, Token: res.Token})
		return true
	}
	c.set(State[T]{Status: Success, Data: res.Data, Token: res.Token})
	return true
}

// Reset returns to idle. With stale discarding on, results of runs started
// before the reset are dropped; otherwise they still land.
func (c *Controller[T]) Reset() {
	if c.opts.discardStale {
		c.latest = 0
	}
	c.set(State[T]{Status: Idle})
}

// Do runs exec inline and returns the settled state. The transitions are the
// same ones Run and Handle perform.
func (c *Controller[T]) Do(ctx context.Context, exec Executor[T]) State[T] {
	if exec == nil {
		return c.state
	}
	cmd := c.Run(func(context.Context) (T, error) { return exec(ctx) })
	if cmd == nil {
		return c.state
	}
	c.Handle(cmd())
	return c.state
}

func (c *Controller[T]) message(err error) string {
	msg := strings.TrimSpace(c.opts.normalize(err))
	if msg == "" {
		return DefaultFailureMessage
	}
	return msg
}

func (c *Controller[T]) set(s State[T]) {
	c.state = s
	log.Debug().
		Str("controller", c.id).
		Stringer("status", s.Status).
		Uint64("token", s.Token).
		Msg("state transition")
	for _, fn := range c.observers {
		fn(s)
	}
}
