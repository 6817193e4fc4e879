// Copyright 2017 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package attr contains unexported functionality related to XML attributes.
package attr // import "mellium.im/pubsubgw/internal/attr"

import (
	"encoding/xml"
)

// Get returns the index and value of the first attribute with the provided
// local name from a list of attributes or -1 and an empty string if no such
// attribute exists.
func Get(attr []xml.Attr, local string) (int, string) {
	for i, a := range attr {
		if a.Name.Local == local {
			return i, a.Value
		}
	}
	return -1, ""
}

// Set returns a copy of attr with the first attribute named local replaced by
// value, or with a new attribute appended if none exists.
// The original slice is never modified.
func Set(attr []xml.Attr, local, value string) []xml.Attr {
	out := make([]xml.Attr, len(attr), len(attr)+1)
	copy(out, attr)
	if idx, _ := Get(out, local); idx != -1 {
		out[idx].Value = value
		return out
	}
	return append(out, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}

// IsNamespace reports whether a is an XML namespace declaration.
func IsNamespace(a xml.Attr) bool {
	return (a.Name.Space == "" && a.Name.Local == "xmlns") || a.Name.Space == "xmlns"
}
