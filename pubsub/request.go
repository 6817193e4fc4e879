// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"log"

	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/form"
	"mellium.im/pubsubgw/jid"
	"mellium.im/pubsubgw/paging"
	"mellium.im/pubsubgw/stanza"
)

// Request is a pubsub operation that can be sent with Client.Do.
// The set of requests is closed; each request type in this package documents
// the fields it requires and the result passed to the callback on success.
type Request interface {
	// Op returns the name of the operation, eg. "items.retrieve".
	Op() string

	target() string
	iqType() stanza.IQType
	rules(e env) []rule
	payload(e env) (element.Element, error)
	parse(e env, iq element.Element) (interface{}, *paging.Set)
}

// env is the client state that builders and parsers may depend on.
type env struct {
	own   *jid.JID
	items ItemCodec
	log   *log.Logger
}

// isNil reports whether req is nil or a nil pointer to one of the request
// types.
func isNil(req Request) bool {
	switch v := req.(type) {
	case nil:
		return true
	case *ListAffiliations:
		return v == nil
	case *SetAffiliation:
		return v == nil
	case *Publish:
		return v == nil
	case *RetrieveItems:
		return v == nil
	case *DeleteItem:
		return v == nil
	case *CreateNode:
		return v == nil
	case *DeleteNode:
		return v == nil
	case *Purge:
		return v == nil
	case *GetConfig:
		return v == nil
	case *GetDefaultConfig:
		return v == nil
	case *SetConfig:
		return v == nil
	case *Subscribe:
		return v == nil
	case *Unsubscribe:
		return v == nil
	case *ListSubscriptions:
		return v == nil
	case *GetSubscriptionOptions:
		return v == nil
	case *GetDefaultSubscriptionOptions:
		return v == nil
	case *SetSubscriptionOptions:
		return v == nil
	case *SetSubscription:
		return v == nil
	}
	return false
}

// rule checks a single precondition of a request and returns a description
// of the problem or the empty string.
type rule func() string

// validate runs the rules of req in order and returns the first failure.
func validate(e env, req Request) string {
	for _, r := range req.rules(e) {
		if desc := r(); desc != "" {
			return desc
		}
	}
	return ""
}

func required(key, val string) rule {
	return func() string {
		if val == "" {
			return "Missing '" + key + "' key"
		}
		return ""
	}
}

func check(ok bool, desc string) rule {
	return func() string {
		if !ok {
			return desc
		}
		return ""
	}
}

func requiredForm(fields []form.Field) rule {
	return check(fields != nil, "Missing 'form' key")
}

func wellFormed(fields []form.Field) rule {
	return func() string {
		if fields == nil {
			return ""
		}
		if form.Validate(fields) != nil {
			return descBadForm
		}
		return ""
	}
}

func wrap(space string, payload ...element.Element) element.Element {
	return element.NewNS(space, "pubsub").WithChild(payload...)
}

func withRSM(ps element.Element, rsm paging.Request) element.Element {
	if rsm.Empty() {
		return ps
	}
	return ps.WithChild(rsm.Element())
}

// pubsubChild returns the <pubsub/> payload of a response in either the pubsub
// or owner namespace.
func pubsubChild(iq element.Element) element.Element {
	if ps, ok := iq.ChildNS(NS, "pubsub"); ok {
		return ps
	}
	ps, _ := iq.ChildNS(NSOwner, "pubsub")
	return ps
}

// parseAddress returns nil for empty or invalid addresses.
func parseAddress(s string) *jid.Address {
	if s == "" {
		return nil
	}
	addr, err := jid.ParseAddress(s)
	if err != nil {
		return nil
	}
	return &addr
}

// formResult parses the data form in the named child of the pubsub payload.
// Missing or malformed forms result in an empty form.
func formResult(e env, iq element.Element, name string) *form.Data {
	child, _ := pubsubChild(iq).Child(name)
	x, ok := child.ChildNS(form.NS, "x")
	if !ok {
		return &form.Data{Fields: []form.Field{}}
	}
	data, err := form.Parse(x)
	if err != nil {
		e.log.Printf("pubsub: bad form in <%s/> response: %v", name, err)
		return &form.Data{Fields: []form.Field{}}
	}
	return data
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
