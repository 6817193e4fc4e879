// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza

import (
	"encoding/xml"

	"mellium.im/pubsubgw/internal/ns"
)

// Is tests whether name is a valid stanza based on name and space.
// Names without a namespace are accepted as well since the stream namespace
// is often left off of stanzas built locally.
func Is(name xml.Name) bool {
	return (name.Local == "iq" || name.Local == "message" || name.Local == "presence") &&
		(name.Space == ns.Client || name.Space == ns.Server || name.Space == "")
}
