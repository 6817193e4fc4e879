// Copyright 2017 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package xmpptest provides utilities for XMPP testing.
package xmpptest // import "mellium.im/pubsubgw/internal/xmpptest"

import (
	"context"
	"encoding/xml"
	"sync"

	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/stanza"
)

// Recorder is a transport that decodes and records every stanza sent over
// it.
type Recorder struct {
	// OnSend, if set, is called with each stanza after it has been recorded.
	// It may be used to reply to requests synchronously.
	OnSend func(el element.Element)

	mu   sync.Mutex
	sent []element.Element
	err  error
}

// Send decodes a single element from r and records it.
// If an error was configured with Fail, it is returned and nothing is
// recorded.
func (r *Recorder) Send(ctx context.Context, tr xml.TokenReader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	if r.err != nil {
		err := r.err
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	el, err := element.Read(tr, nil)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.sent = append(r.sent, el)
	onSend := r.OnSend
	r.mu.Unlock()
	if onSend != nil {
		onSend(el)
	}
	return nil
}

// Fail causes all future calls to Send to return err.
// Passing nil restores normal operation.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Sent returns a copy of the recorded stanzas in the order they were sent.
func (r *Recorder) Sent() []element.Element {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]element.Element, len(r.sent))
	copy(out, r.sent)
	return out
}

// Len returns the number of recorded stanzas.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

// Last returns the most recently recorded stanza or the zero element.
func (r *Recorder) Last() element.Element {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return element.Element{}
	}
	return r.sent[len(r.sent)-1]
}

// Result returns a result IQ answering req with the given payloads.
func Result(req element.Element, payload ...element.Element) element.Element {
	iq, _ := stanza.ParseIQ(req)
	return iq.Result().Element(payload...)
}

// ErrorResult returns an error IQ answering req.
func ErrorResult(req element.Element, se stanza.Error, app ...element.Element) element.Element {
	iq, _ := stanza.ParseIQ(req)
	resp := iq.Result()
	resp.Type = stanza.ErrorIQ
	return resp.Element(se.Element(app...))
}
