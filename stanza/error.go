// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza

import (
	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/internal/ns"
)

// ErrorType is the type of an stanza error payloads.
// It should normally be one of the constants defined in this package.
type ErrorType string

const (
	// Cancel indicates that the error cannot be remedied and the operation should
	// not be retried.
	Cancel ErrorType = "cancel"

	// Auth indicates that an operation should be retried after providing
	// credentials.
	Auth ErrorType = "auth"

	// Continue indicates that the operation can proceed (the condition was only a
	// warning).
	Continue ErrorType = "continue"

	// Modify indicates that the operation can be retried after changing the data
	// sent.
	Modify ErrorType = "modify"

	// Wait is indicates that an error is temporary and may be retried.
	Wait ErrorType = "wait"
)

// Condition represents a more specific stanza error condition that can be
// encapsulated by an <error/> element.
type Condition string

// A list of stanza error conditions defined in RFC 6120 §8.3.3
const (
	BadRequest            Condition = "bad-request"
	Conflict              Condition = "conflict"
	FeatureNotImplemented Condition = "feature-not-implemented"
	Forbidden             Condition = "forbidden"
	Gone                  Condition = "gone"
	InternalServerError   Condition = "internal-server-error"
	ItemNotFound          Condition = "item-not-found"
	JIDMalformed          Condition = "jid-malformed"
	NotAcceptable         Condition = "not-acceptable"
	NotAllowed            Condition = "not-allowed"
	NotAuthorized         Condition = "not-authorized"
	PolicyViolation       Condition = "policy-violation"
	RecipientUnavailable  Condition = "recipient-unavailable"
	Redirect              Condition = "redirect"
	RegistrationRequired  Condition = "registration-required"
	RemoteServerNotFound  Condition = "remote-server-not-found"
	RemoteServerTimeout   Condition = "remote-server-timeout"
	ResourceConstraint    Condition = "resource-constraint"
	ServiceUnavailable    Condition = "service-unavailable"
	SubscriptionRequired  Condition = "subscription-required"
	UndefinedCondition    Condition = "undefined-condition"
	UnexpectedRequest     Condition = "unexpected-request"
)

// Error is an error returned in response to a stanza.
// Raw holds the decoded <error/> element so that application specific
// conditions can be looked up by the caller.
type Error struct {
	By        string
	Type      ErrorType
	Condition Condition
	Text      string
	Raw       element.Element
}

// Error satisfies the error interface by returning the text if set, or the
// condition otherwise.
func (se Error) Error() string {
	if se.Text != "" {
		return se.Text
	}
	return string(se.Condition)
}

// ParseError decodes the stanza error from an error response or from an
// <error/> element directly.
//
// The condition is taken from the first child in the stanza errors namespace,
// falling back to the first child of any namespace that is not a <text/>
// element, and finally to undefined-condition.
// A missing type is reported as Cancel.
func ParseError(el element.Element) Error {
	if el.Name.Local != "error" {
		el, _ = el.Child("error")
	}
	se := Error{
		By:   el.AttrValue("by"),
		Type: ErrorType(el.AttrValue("type")),
		Raw:  el,
	}
	if se.Type == "" {
		se.Type = Cancel
	}

	var fallback Condition
	for _, c := range el.Children {
		if c.Name.Local == "text" {
			if c.Name.Space == ns.Stanza && se.Text == "" {
				se.Text = c.Text
			}
			continue
		}
		if c.Name.Space == ns.Stanza && se.Condition == "" {
			se.Condition = Condition(c.Name.Local)
		}
		if fallback == "" {
			fallback = Condition(c.Name.Local)
		}
	}
	switch {
	case se.Condition != "":
	case fallback != "":
		se.Condition = fallback
	default:
		se.Condition = UndefinedCondition
	}
	return se
}

// Element returns the <error/> element for se followed by any extra
// application specific conditions.
func (se Error) Element(app ...element.Element) element.Element {
	el := element.New("error").
		WithAttr("type", string(se.Type)).
		WithAttr("by", se.By).
		WithChild(element.NewNS(ns.Stanza, string(se.Condition)))
	if se.Text != "" {
		el = el.WithChild(element.NewNS(ns.Stanza, "text").WithText(se.Text))
	}
	return el.WithChild(app...)
}
