// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/stanza"
)

// ClientError is the condition used for errors detected locally before a
// request is sent.
const ClientError = "client-error"

// Descriptions used for local errors.
const (
	descMissingCallback = "Missing callback"
	descMissingRequest  = "Missing request"
	descOwnerNode       = "Can only do 'owner' for a node"
	descBadForm         = "Badly formatted data form"
	descBadContent      = "Could not parse content to stanza"
	descMissingContent  = "Missing message content"
	descBadID           = "ID should be string or array of strings"
	descSendFailed      = "Could not send stanza"
	descTimeout         = "Request timed out"
	descTooMany         = "Too many pending requests"
)

// Error describes a failed request.
//
// Errors detected locally have the type modify (or wait and cancel for
// resource and transport failures), the condition client-error, a
// description, and the request that caused them.
// Errors returned by the remote entity carry the type and condition of the
// stanza error and any application specific condition in the pubsub errors
// namespace.
type Error struct {
	Type        stanza.ErrorType `json:"type"`
	Condition   string           `json:"condition"`
	Description string           `json:"description,omitempty"`
	Request     Request          `json:"request,omitempty"`
	Application *AppError        `json:"application,omitempty"`
}

// AppError is an application specific error condition.
type AppError struct {
	Condition string `json:"condition"`
	NS        string `json:"xmlns"`
	Feature   string `json:"feature,omitempty"`
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	s := string(e.Type) + " " + e.Condition
	if e.Description != "" {
		s += ": " + e.Description
	}
	if e.Application != nil {
		s += " (" + e.Application.Condition + ")"
	}
	return "pubsub: " + s
}

func clientErr(desc string, req Request) *Error {
	return &Error{
		Type:        stanza.Modify,
		Condition:   ClientError,
		Description: desc,
		Request:     req,
	}
}

// remoteErr converts an error response into an *Error.
func remoteErr(iq element.Element) *Error {
	se := stanza.ParseError(iq)
	e := &Error{
		Type:        se.Type,
		Condition:   string(se.Condition),
		Description: se.Text,
	}
	for _, c := range se.Raw.Children {
		if c.Name.Space == NSErrors {
			e.Application = &AppError{
				Condition: c.Name.Local,
				NS:        NSErrors,
				Feature:   c.AttrValue("feature"),
			}
			break
		}
	}
	return e
}
