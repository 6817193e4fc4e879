// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"context"
	"encoding/xml"
	"io"
	"log"
	"time"

	"github.com/pkg/errors"
	"mellium.im/xmlstream"

	"mellium.im/pubsubgw/correlate"
	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/paging"
	"mellium.im/pubsubgw/stanza"
	"mellium.im/pubsubgw/transport"
)

var errSend = errors.New("pubsub: send failed")

// Callback receives the result of a request.
// Exactly one of result and err is non-nil.
// If the result is paged, page describes the returned set.
type Callback func(result interface{}, page *paging.Set, err error)

// PushHandler receives event notifications.
type PushHandler func(Event)

// Client sends pubsub requests over a transport and dispatches the responses
// and notifications that are passed to HandleElement or HandleXMPP.
// It is safe for concurrent use.
type Client struct {
	t          transport.Transport
	corr       *correlate.Correlator
	env        env
	timeout    time.Duration
	maxPending int
	newID      func() string
	onError    func(*Error)
	push       PushHandler
	auth       AuthorizationHandler
}

// NewClient returns a client that sends stanzas over t.
func NewClient(t transport.Transport, opts ...Option) *Client {
	c := &Client{
		t: t,
		env: env{
			items: BodyCodec{},
			log:   log.New(io.Discard, "", log.LstdFlags),
		},
	}
	for _, o := range opts {
		o(c)
	}
	copts := []correlate.Option{
		correlate.Timeout(c.timeout),
		correlate.MaxPending(c.maxPending),
		correlate.Logger(c.env.log),
	}
	if c.newID != nil {
		copts = append(copts, correlate.IDFunc(c.newID))
	}
	c.corr = correlate.New(copts...)
	return c
}

// Do validates req, sends it, and arranges for cb to be called exactly once
// with the result.
//
// Validation and build failures are reported to cb before Do returns and
// nothing is sent.
// If cb is nil nothing is sent and a "Missing callback" error is reported to
// the ClientErrors handler.
func (c *Client) Do(ctx context.Context, req Request, cb Callback) {
	if cb == nil {
		c.clientError(clientErr(descMissingCallback, nil))
		return
	}
	if isNil(req) {
		cb(nil, nil, clientErr(descMissingRequest, nil))
		return
	}
	if desc := validate(c.env, req); desc != "" {
		cb(nil, nil, clientErr(desc, req))
		return
	}
	payload, err := req.payload(c.env)
	if err != nil {
		c.env.log.Printf("pubsub: building %s request: %v", req.Op(), err)
		cb(nil, nil, clientErr(descBadContent, req))
		return
	}

	id := c.corr.NextID()
	err = c.corr.Register(id, func(resp element.Element, err error) {
		c.complete(req, cb, resp, err)
	})
	switch {
	case errors.Is(err, correlate.ErrTooManyPending):
		cb(nil, nil, &Error{
			Type:        stanza.Wait,
			Condition:   string(stanza.ResourceConstraint),
			Description: descTooMany,
			Request:     req,
		})
		return
	case err != nil:
		c.env.log.Printf("pubsub: registering %s request %q: %v", req.Op(), id, err)
		cb(nil, nil, &Error{
			Type:        stanza.Cancel,
			Condition:   ClientError,
			Description: descSendFailed,
			Request:     req,
		})
		return
	}

	iq := stanza.IQ{ID: id, To: req.target(), Type: req.iqType()}
	if err := c.t.Send(ctx, iq.Element(payload).TokenReader()); err != nil {
		c.env.log.Printf("pubsub: sending %s request %q: %v", req.Op(), id, err)
		c.corr.Reject(id, errSend)
	}
}

// Pending returns the number of requests awaiting a response.
func (c *Client) Pending() int {
	return c.corr.Len()
}

func (c *Client) complete(req Request, cb Callback, resp element.Element, err error) {
	switch {
	case errors.Is(err, correlate.ErrTimeout):
		cb(nil, nil, &Error{
			Type:        stanza.Wait,
			Condition:   string(stanza.RemoteServerTimeout),
			Description: descTimeout,
			Request:     req,
		})
		return
	case err != nil:
		cb(nil, nil, &Error{
			Type:        stanza.Cancel,
			Condition:   ClientError,
			Description: descSendFailed,
			Request:     req,
		})
		return
	}
	if iq, _ := stanza.ParseIQ(resp); iq.Type == stanza.ErrorIQ {
		cb(nil, nil, remoteErr(resp))
		return
	}
	result, page := req.parse(c.env, resp)
	cb(result, page, nil)
}

// HandleElement processes an incoming stanza.
// Responses to pending requests are matched by id and passed to the request
// callback, then event notifications and authorization requests are pushed
// to their handlers.
// It reports whether the stanza was handled; all other stanzas are dropped.
func (c *Client) HandleElement(el element.Element) bool {
	if iq, ok := stanza.ParseIQ(el); ok && iq.IsResponse() && iq.ID != "" {
		if c.corr.Resolve(iq.ID, el) {
			return true
		}
	}
	if !Handles(el) {
		c.env.log.Printf("pubsub: dropping unhandled <%s/> from %q", el.Name.Local, el.AttrValue("from"))
		return false
	}
	msg, _ := stanza.ParseMessage(el)
	if x, ok := authForm(el); ok {
		c.authorize(msg, x)
		return true
	}
	for _, ev := range parseEvents(c.env, el) {
		if c.push != nil {
			c.push(ev)
		}
	}
	return true
}

// HandleXMPP decodes the stanza starting with start and passes it to
// HandleElement.
// It lets the client be used as a stanza handler on an XMPP session.
func (c *Client) HandleXMPP(t xmlstream.TokenReadEncoder, start *xml.StartElement) error {
	el, err := element.Read(xmlstream.MultiReader(xmlstream.Inner(t), xmlstream.Token(start.End())), start)
	if err != nil {
		return errors.Wrap(err, "pubsub: decoding stanza")
	}
	c.HandleElement(el)
	return nil
}

func (c *Client) clientError(e *Error) {
	if c.onError == nil {
		c.env.log.Printf("pubsub: %v", e)
		return
	}
	c.onError(e)
}
