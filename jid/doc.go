// Copyright 2014 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package jid implements XMPP addresses (historically called "Jabber ID's" or
// "JID's") as described in RFC 7622.
//
// Two representations are provided.
// JID is the canonical, PRECIS enforced address used when comparing or
// routing, and Address is the plain structured value handed to applications
// in events and responses.
package jid // import "mellium.im/pubsubgw/jid"
