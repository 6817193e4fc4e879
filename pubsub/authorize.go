// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"context"
	"sync"

	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/form"
	"mellium.im/pubsubgw/stanza"
)

// AuthorizationRequest is sent by a service when an entity asks to subscribe
// to a node that requires approval from the owner.
type AuthorizationRequest struct {
	ID   string     `json:"id"`
	From string     `json:"from"`
	Form *form.Data `json:"form"`
}

// Reply answers an AuthorizationRequest with the submitted fields, usually
// "pubsub#allow".
// If fields is not a valid field list nothing is sent and a client error is
// reported instead.
// Only the first call has any effect.
type Reply func(fields []form.Field)

// AuthorizationHandler is called for each subscription authorization
// request.
// The handler may call reply after returning.
type AuthorizationHandler func(req AuthorizationRequest, reply Reply)

func (c *Client) authorize(msg stanza.Message, x element.Element) {
	// authForm matches forms in any namespace.
	x.Name.Space = form.NS
	data, err := form.Parse(x)
	if err != nil {
		c.env.log.Printf("pubsub: bad authorization form from %q: %v", msg.From, err)
		data = &form.Data{Fields: []form.Field{}}
	}
	if c.auth == nil {
		c.env.log.Printf("pubsub: no handler for authorization request %q from %q", msg.ID, msg.From)
		return
	}
	req := AuthorizationRequest{
		ID:   msg.ID,
		From: msg.From,
		Form: data,
	}
	var once sync.Once
	c.auth(req, func(fields []form.Field) {
		replied := true
		once.Do(func() {
			replied = false
			c.replyAuthorization(msg, fields)
		})
		if replied {
			c.env.log.Printf("pubsub: ignoring repeated reply to authorization request %q", msg.ID)
		}
	})
}

func (c *Client) replyAuthorization(msg stanza.Message, fields []form.Field) {
	if form.Validate(fields) != nil {
		c.clientError(clientErr(descBadForm, nil))
		return
	}
	reply := stanza.Message{ID: msg.ID, To: msg.From}.Element(form.Submit(NSSubAuth, fields))
	if err := c.t.Send(context.Background(), reply.TokenReader()); err != nil {
		c.env.log.Printf("pubsub: sending authorization reply %q to %q: %v", msg.ID, msg.From, err)
		c.clientError(&Error{
			Type:        stanza.Cancel,
			Condition:   ClientError,
			Description: descSendFailed,
		})
	}
}
