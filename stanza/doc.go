// Copyright 2017 Sam Whited.
// Use of this source code is governed by the BSD 2-clause license that can be
// found in the LICENSE file.

// Package stanza contains functionality for dealing with XMPP stanzas and
// stanza level errors.
//
// Only the envelopes needed by the publish-subscribe adapter are provided:
// IQ is the request response mechanism used for commands, and Message carries
// event notifications and authorization requests.
// Envelopes are built as element trees and stanza errors are decoded from
// them leniently; a malformed error never causes a decoding failure.
package stanza // import "mellium.im/pubsubgw/stanza"
