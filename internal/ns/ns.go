// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package ns provides namespace constants that are used by the pubsub gateway
// and its internal packages.
package ns // import "mellium.im/pubsubgw/internal/ns"

// List of commonly used namespaces.
const (
	Client  = "jabber:client"
	Server  = "jabber:server"
	Stanza  = "urn:ietf:params:xml:ns:xmpp-stanzas"
	XML     = "http://www.w3.org/XML/1998/namespace"
	Delay   = "urn:xmpp:delay"
	Headers = "http://jabber.org/protocol/shim"
)
