// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"log"
	"time"

	"mellium.im/pubsubgw/jid"
)

// Option configures a Client.
type Option func(*Client)

// OwnJID sets the address of the client.
// Its bare form is the default subscriber for Subscribe and Unsubscribe, and
// its full form is the default for subscription options.
func OwnJID(j *jid.JID) Option {
	return func(c *Client) {
		c.env.own = j
	}
}

// Timeout causes requests that receive no response within d to fail with a
// remote-server-timeout error.
// By default requests wait forever.
func Timeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// MaxPending limits the number of requests awaiting a response.
// Requests over the limit fail with a resource-constraint error without being
// sent.
// Zero (the default) means no limit.
func MaxPending(n int) Option {
	return func(c *Client) {
		c.maxPending = n
	}
}

// Logger sets the logger used for debug messages such as dropped stanzas and
// failed sends.
// By default nothing is logged.
func Logger(l *log.Logger) Option {
	return func(c *Client) {
		c.env.log = l
	}
}

// Items sets the codec used for item payloads.
// The default is BodyCodec.
func Items(codec ItemCodec) Option {
	return func(c *Client) {
		c.env.items = codec
	}
}

// IDGenerator replaces the generator used for request ids.
func IDGenerator(f func() string) Option {
	return func(c *Client) {
		c.newID = f
	}
}

// ClientErrors sets a handler for local errors that cannot be delivered to a
// request callback, such as a missing callback or an invalid authorization
// reply.
func ClientErrors(f func(*Error)) Option {
	return func(c *Client) {
		c.onError = f
	}
}

// Push sets the handler for event notifications.
func Push(h PushHandler) Option {
	return func(c *Client) {
		c.push = h
	}
}

// Authorization sets the handler for subscription authorization requests.
func Authorization(h AuthorizationHandler) Option {
	return func(c *Client) {
		c.auth = h
	}
}
