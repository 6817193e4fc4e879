// Copyright 2016 Sam Whited.
// Use of this source code is governed by the BSD 2-clause license that can be
// found in the LICENSE file.

package stanza

import (
	"mellium.im/pubsubgw/element"
)

// IQType is the type of an IQ stanza.
// It should normally be one of the constants defined in this package.
type IQType string

const (
	// GetIQ is used to query another entity for information.
	GetIQ IQType = "get"

	// SetIQ is used to provide data to another entity, set new values, and
	// replace existing values.
	SetIQ IQType = "set"

	// ResultIQ is sent in response to a successful get or set IQ.
	ResultIQ IQType = "result"

	// ErrorIQ is sent to report that an error occurred during the delivery or
	// processing of a get or set IQ.
	ErrorIQ IQType = "error"
)

// IQ ("Information Query") is used as a general request response mechanism.
// IQ's are one-to-one, provide get and set semantics, and always require a
// response in the form of a result or an error.
type IQ struct {
	ID   string
	To   string
	From string
	Type IQType
}

// ParseIQ reads the envelope attributes of an <iq/> element.
// The boolean is false if el is not an IQ.
func ParseIQ(el element.Element) (IQ, bool) {
	if el.Name.Local != "iq" || !Is(el.Name) {
		return IQ{}, false
	}
	return IQ{
		ID:   el.AttrValue("id"),
		To:   el.AttrValue("to"),
		From: el.AttrValue("from"),
		Type: IQType(el.AttrValue("type")),
	}, true
}

// IsResponse reports whether the IQ is a result or error.
func (iq IQ) IsResponse() bool {
	return iq.Type == ResultIQ || iq.Type == ErrorIQ
}

// Result returns a result IQ addressed back to the sender of iq.
func (iq IQ) Result() IQ {
	return IQ{ID: iq.ID, To: iq.From, From: iq.To, Type: ResultIQ}
}

// Element returns the IQ wrapped around the provided payloads.
func (iq IQ) Element(payload ...element.Element) element.Element {
	return element.New("iq").
		WithAttr("type", string(iq.Type)).
		WithAttr("id", iq.ID).
		WithAttr("to", iq.To).
		WithAttr("from", iq.From).
		WithChild(payload...)
}
