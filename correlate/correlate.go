// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package correlate matches responses to outstanding requests by id.
//
// Each request registers a Handler under a unique id before it is sent.
// The handler is invoked exactly once: when a response with the same id is
// resolved, when the request is rejected, or when the optional timeout fires.
// A Correlator is safe for concurrent use and never runs handlers while
// holding its lock, so handlers may issue new requests.
package correlate // import "mellium.im/pubsubgw/correlate"

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"mellium.im/pubsubgw/element"
)

// Errors passed to handlers or returned by Register.
var (
	ErrTimeout        = errors.New("correlate: request timed out")
	ErrDuplicateID    = errors.New("correlate: duplicate request id")
	ErrTooManyPending = errors.New("correlate: too many pending requests")
)

// Handler is called with the response to a request, or with a nil element
// and an error if the request was rejected or timed out.
type Handler func(resp element.Element, err error)

type entry struct {
	h     Handler
	timer *time.Timer
}

// Correlator tracks pending requests.
// The zero value is not usable; use New.
type Correlator struct {
	mu      sync.Mutex
	pending map[string]*entry
	timeout time.Duration
	max     int
	newID   func() string
	log     *log.Logger
}

// Option configures a Correlator.
type Option func(*Correlator)

// Timeout causes pending requests to be rejected with ErrTimeout if they are
// not resolved within d.
// A zero or negative duration disables the timeout (the default).
func Timeout(d time.Duration) Option {
	return func(c *Correlator) {
		c.timeout = d
	}
}

// MaxPending limits the number of requests that may be outstanding at once.
// Zero (the default) means no limit.
func MaxPending(n int) Option {
	return func(c *Correlator) {
		c.max = n
	}
}

// IDFunc replaces the default id generator (random UUIDs).
func IDFunc(f func() string) Option {
	return func(c *Correlator) {
		c.newID = f
	}
}

// Logger sets the logger used for debug messages.
// By default nothing is logged.
func Logger(l *log.Logger) Option {
	return func(c *Correlator) {
		c.log = l
	}
}

// New returns a Correlator with no pending requests.
func New(opts ...Option) *Correlator {
	c := &Correlator{
		pending: make(map[string]*entry),
	}
	for _, o := range opts {
		o(c)
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.log == nil {
		c.log = log.New(io.Discard, "", log.LstdFlags)
	}
	return c
}

// maxIDAttempts bounds the search for an unused id when the generator keeps
// returning ids that are already pending.
const maxIDAttempts = 10

// NextID returns an id that is not currently pending.
// If the generator cannot produce an unused id the last candidate is
// returned and Register will report ErrDuplicateID.
func (c *Correlator) NextID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var id string
	for i := 0; i < maxIDAttempts; i++ {
		id = c.newID()
		if _, ok := c.pending[id]; !ok {
			break
		}
	}
	return id
}

// Register adds a pending request under id.
func (c *Correlator) Register(id string, h Handler) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pending[id]; ok {
		c.log.Printf("correlate: refusing duplicate id %q", id)
		return ErrDuplicateID
	}
	if c.max > 0 && len(c.pending) >= c.max {
		return ErrTooManyPending
	}
	e := &entry{h: h}
	if c.timeout > 0 {
		e.timer = time.AfterFunc(c.timeout, func() {
			if c.remove(id, e) {
				c.log.Printf("correlate: request %q timed out after %v", id, c.timeout)
				e.h(element.Element{}, ErrTimeout)
			}
		})
	}
	c.pending[id] = e
	return nil
}

// Resolve passes resp to the handler registered under id and removes it.
// It reports whether a pending request was found.
func (c *Correlator) Resolve(id string, resp element.Element) bool {
	e := c.take(id)
	if e == nil {
		return false
	}
	e.h(resp, nil)
	return true
}

// Reject passes err to the handler registered under id and removes it.
// It reports whether a pending request was found.
func (c *Correlator) Reject(id string, err error) bool {
	e := c.take(id)
	if e == nil {
		return false
	}
	e.h(element.Element{}, err)
	return true
}

// Len returns the number of pending requests.
func (c *Correlator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Correlator) take(id string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.pending[id]
	if !ok {
		return nil
	}
	delete(c.pending, id)
	if e.timer != nil {
		e.timer.Stop()
	}
	return e
}

// remove deletes id only if it is still mapped to e.
func (c *Correlator) remove(id string, e *entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[id] != e {
		return false
	}
	delete(c.pending, id)
	return true
}
