// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jid

// Address is the structured form of a JID as it is delivered to callers.
// Event and result payloads carry Address values instead of *JID so that they
// can be compared and encoded without further parsing.
type Address struct {
	User     string `json:"user" yaml:"user"`
	Domain   string `json:"domain" yaml:"domain"`
	Resource string `json:"resource,omitempty" yaml:"resource,omitempty"`
}

// ParseAddress parses s and returns its structured form.
func ParseAddress(s string) (Address, error) {
	j, err := Parse(s)
	if err != nil {
		return Address{}, err
	}
	return j.Address(), nil
}

// Bare returns a copy of a without the resource.
func (a Address) Bare() Address {
	a.Resource = ""
	return a
}

// IsZero reports whether a has no domain.
func (a Address) IsZero() bool {
	return a.Domain == ""
}

// String returns the string form of a.
func (a Address) String() string {
	s := a.Domain
	if a.User != "" {
		s = a.User + "@" + s
	}
	if a.Resource != "" {
		s += "/" + a.Resource
	}
	return s
}
