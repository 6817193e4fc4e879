// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package pubsub implements the client side of XEP-0060: Publish-Subscribe.
//
// A Client translates typed requests into IQ stanzas, sends them over a
// transport, and matches the responses back to the request by id.
// Each request receives exactly one callback: with the parsed result, or with
// an *Error describing a local validation failure, a remote error response,
// a send failure, or a timeout.
// Incoming event notifications and subscription authorization requests that
// are not responses to a pending request are delivered to push handlers.
package pubsub // import "mellium.im/pubsubgw/pubsub"

// Various namespaces used by this package, provided as a convenience.
const (
	NS               = `http://jabber.org/protocol/pubsub`
	NSErrors         = `http://jabber.org/protocol/pubsub#errors`
	NSEvent          = `http://jabber.org/protocol/pubsub#event`
	NSOwner          = `http://jabber.org/protocol/pubsub#owner`
	NSNodeConfig     = `http://jabber.org/protocol/pubsub#node_config`
	NSPublishOptions = `http://jabber.org/protocol/pubsub#publish-options`
	NSSubOptions     = `http://jabber.org/protocol/pubsub#subscribe_options`
	NSSubAuth        = `http://jabber.org/protocol/pubsub#subscribe_authorization`
)
