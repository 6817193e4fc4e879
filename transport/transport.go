// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package transport defines the stanza transport used by the pubsub client
// and middleware that can be wrapped around it.
//
// Establishing and maintaining the underlying XMPP session is left to the
// caller; any type with a Send method matching that of an XMPP session can be
// used.
package transport // import "mellium.im/pubsubgw/transport"

import (
	"context"
	"encoding/xml"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Transport sends a single stanza read from r.
type Transport interface {
	Send(ctx context.Context, r xml.TokenReader) error
}

// Func is an adapter to allow the use of ordinary functions as a Transport.
type Func func(ctx context.Context, r xml.TokenReader) error

// Send calls f(ctx, r).
func (f Func) Send(ctx context.Context, r xml.TokenReader) error {
	return f(ctx, r)
}

type breaker struct {
	t  Transport
	cb *gobreaker.CircuitBreaker
}

// Breaker wraps t in a circuit breaker.
// Once the breaker trips, Send fails immediately with gobreaker.ErrOpenState
// until the breaker's timeout elapses.
func Breaker(t Transport, st gobreaker.Settings) Transport {
	if st.Name == "" {
		st.Name = "transport"
	}
	return breaker{t: t, cb: gobreaker.NewCircuitBreaker(st)}
}

func (b breaker) Send(ctx context.Context, r xml.TokenReader) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.t.Send(ctx, r)
	})
	return err
}

type limit struct {
	t Transport
	l *rate.Limiter
}

// Limit wraps t so that stanzas are sent no faster than l allows.
// Send blocks until the limiter permits the stanza or ctx is done.
func Limit(t Transport, l *rate.Limiter) Transport {
	return limit{t: t, l: l}
}

func (l limit) Send(ctx context.Context, r xml.TokenReader) error {
	if err := l.l.Wait(ctx); err != nil {
		return errors.Wrap(err, "transport: rate limit")
	}
	return l.t.Send(ctx, r)
}
