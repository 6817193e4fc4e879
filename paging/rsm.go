// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package paging implements result set management.
//
// Cursor values are opaque tokens: they are copied between requests and
// responses but never interpreted.
package paging // import "mellium.im/pubsubgw/paging"

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"mellium.im/pubsubgw/element"
)

// Namespaces used by this package.
const (
	NS = "http://jabber.org/protocol/rsm"
)

// Request is a set of paging parameters that can be added to a query.
// Only non-empty values are sent.
type Request struct {
	Max    string `json:"max,omitempty" yaml:"max,omitempty"`
	After  string `json:"after,omitempty" yaml:"after,omitempty"`
	Before string `json:"before,omitempty" yaml:"before,omitempty"`
	Index  string `json:"index,omitempty" yaml:"index,omitempty"`
}

// Empty reports whether no paging parameters are set.
func (r Request) Empty() bool {
	return r == Request{}
}

// Element returns the <set/> element for the request with children in the
// order max, after, before, index.
func (r Request) Element() element.Element {
	set := element.NewNS(NS, "set")
	for _, c := range [...]struct{ name, val string }{
		{"max", r.Max},
		{"after", r.After},
		{"before", r.Before},
		{"index", r.Index},
	} {
		if c.val != "" {
			set = set.WithChild(element.New(c.name).WithText(c.val))
		}
	}
	return set
}

// Set describes a page from a returned result set.
type Set struct {
	First string `json:"first,omitempty" yaml:"first,omitempty"`
	Last  string `json:"last,omitempty" yaml:"last,omitempty"`
	Count int    `json:"count" yaml:"count"`
}

// ParseSet decodes a <set/> element.
// A missing count decodes as zero.
func ParseSet(el element.Element) (*Set, error) {
	if el.Name.Local != "set" || el.Name.Space != NS {
		return nil, errors.Errorf("paging: expected {%s}set, got {%s}%s", NS, el.Name.Space, el.Name.Local)
	}
	s := &Set{
		First: el.ChildText("first"),
		Last:  el.ChildText("last"),
	}
	if c, ok := el.Child("count"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(c.Text))
		if err != nil {
			return nil, errors.Wrap(err, "paging: bad count")
		}
		s.Count = n
	}
	return s, nil
}

// Find returns the first result set child of parent or nil if there is none
// or it cannot be decoded.
func Find(parent element.Element) *Set {
	el, ok := parent.ChildNS(NS, "set")
	if !ok {
		return nil
	}
	s, err := ParseSet(el)
	if err != nil {
		return nil
	}
	return s
}

// Element returns the <set/> element describing s.
func (s *Set) Element() element.Element {
	set := element.NewNS(NS, "set")
	if s.First != "" {
		set = set.WithChild(element.New("first").WithText(s.First))
	}
	if s.Last != "" {
		set = set.WithChild(element.New("last").WithText(s.Last))
	}
	return set.WithChild(element.New("count").WithText(strconv.Itoa(s.Count)))
}

// Next returns a request for the page after s or nil if s has no last item.
func (s *Set) Next(max string) *Request {
	if s == nil || s.Last == "" {
		return nil
	}
	return &Request{Max: max, After: s.Last}
}

// Prev returns a request for the page before s or nil if s has no first item.
func (s *Set) Prev(max string) *Request {
	if s == nil || s.First == "" {
		return nil
	}
	return &Request{Max: max, Before: s.First}
}
