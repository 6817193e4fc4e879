// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/form"
	"mellium.im/pubsubgw/internal/ns"
	"mellium.im/pubsubgw/jid"
	"mellium.im/pubsubgw/stanza"
)

// Header contains the fields common to every event.
type Header struct {
	From string `json:"from"`
	Node string `json:"node"`
}

// EventHeader satisfies Event.
func (h Header) EventHeader() Header {
	return h
}

// Event is a notification pushed by a pubsub service.
// It is one of ItemEvent, RetractEvent, SubscriptionEvent, AffiliationEvent,
// ConfigurationEvent, DeleteEvent, or PurgeEvent.
type Event interface {
	EventHeader() Header
}

// SHIMHeader is a stanza header (XEP-0131) attached to a notification.
type SHIMHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ItemEvent is sent when an item is published to a node.
// Entry is only set if the service includes the payload.
type ItemEvent struct {
	Header
	ID        string        `json:"id"`
	Entry     interface{}   `json:"entry,omitempty"`
	Delay     *stanza.Delay `json:"delay,omitempty"`
	Headers   []SHIMHeader  `json:"headers,omitempty"`
	Publisher *jid.Address  `json:"publisher,omitempty"`
}

// RetractEvent is sent when an item is deleted from a node.
type RetractEvent struct {
	Header
	ID      string       `json:"id"`
	Headers []SHIMHeader `json:"headers,omitempty"`
}

// SubscriptionEvent is sent when the state of a subscription changes.
type SubscriptionEvent struct {
	Header
	JID          *jid.Address `json:"jid,omitempty"`
	Subscription string       `json:"subscription"`
	ID           string       `json:"id,omitempty"`
}

// AffiliationEvent is sent when an affiliation with a node changes.
type AffiliationEvent struct {
	Header
	JID         *jid.Address `json:"jid,omitempty"`
	Affiliation string       `json:"affiliation"`
}

// ConfigurationEvent is sent when the configuration of a node changes.
type ConfigurationEvent struct {
	Header
	Form *form.Data `json:"configuration"`
}

// DeleteEvent is sent when a node is deleted.
type DeleteEvent struct {
	Header
	Redirect string `json:"redirect,omitempty"`
}

// PurgeEvent is sent when every item is removed from a node.
type PurgeEvent struct {
	Header
}

// Handles reports whether el is a notification that the client would push to
// the application: a message with a pubsub event payload or a subscription
// authorization form.
// All other stanzas, including IQs and presence, are not handled.
func Handles(el element.Element) bool {
	if _, ok := stanza.ParseMessage(el); !ok {
		return false
	}
	if _, ok := el.ChildNS(NSEvent, "event"); ok {
		return true
	}
	_, ok := authForm(el)
	return ok
}

// authForm returns the first data form child of msg with the subscription
// authorization form type.
func authForm(msg element.Element) (element.Element, bool) {
	for _, x := range msg.ChildrenNamed("x") {
		if form.FormType(x) == NSSubAuth {
			return x, true
		}
	}
	return element.Element{}, false
}

// parseEvents converts an event notification into one Event per item,
// retraction, or affiliation, or a single Event for other notifications.
func parseEvents(e env, msg element.Element) []Event {
	event, ok := msg.ChildNS(NSEvent, "event")
	if !ok {
		return nil
	}
	from := msg.AttrValue("from")
	var events []Event
	for _, c := range event.Children {
		h := Header{From: from, Node: c.AttrValue("node")}
		switch c.Name.Local {
		case "items":
			headers := shimHeaders(msg)
			for _, item := range c.Children {
				switch item.Name.Local {
				case "item":
					events = append(events, ItemEvent{
						Header:    h,
						ID:        item.AttrValue("id"),
						Entry:     decodeItem(e, item),
						Delay:     stanza.FindDelay(msg),
						Headers:   headers,
						Publisher: parseAddress(item.AttrValue("publisher")),
					})
				case "retract":
					events = append(events, RetractEvent{
						Header:  h,
						ID:      item.AttrValue("id"),
						Headers: headers,
					})
				}
			}
		case "subscription":
			events = append(events, SubscriptionEvent{
				Header:       h,
				JID:          parseAddress(c.AttrValue("jid")),
				Subscription: c.AttrValue("subscription"),
				ID:           c.AttrValue("subid"),
			})
		case "affiliations":
			for _, a := range c.ChildrenNamed("affiliation") {
				events = append(events, AffiliationEvent{
					Header:      Header{From: from, Node: orDefault(a.AttrValue("node"), h.Node)},
					JID:         parseAddress(a.AttrValue("jid")),
					Affiliation: a.AttrValue("affiliation"),
				})
			}
		case "configuration":
			data := &form.Data{Fields: []form.Field{}}
			if x, ok := c.ChildNS(form.NS, "x"); ok {
				parsed, err := form.Parse(x)
				if err != nil {
					e.log.Printf("pubsub: bad form in configuration event from %q: %v", from, err)
				} else {
					data = parsed
				}
			}
			events = append(events, ConfigurationEvent{Header: h, Form: data})
		case "delete":
			redirect, _ := c.Child("redirect")
			events = append(events, DeleteEvent{Header: h, Redirect: redirect.AttrValue("uri")})
		case "purge":
			events = append(events, PurgeEvent{Header: h})
		default:
			e.log.Printf("pubsub: unknown event <%s/> from %q", c.Name.Local, from)
		}
	}
	return events
}

func shimHeaders(msg element.Element) []SHIMHeader {
	hdrs, ok := msg.ChildNS(ns.Headers, "headers")
	if !ok {
		return nil
	}
	var out []SHIMHeader
	for _, h := range hdrs.ChildrenNamed("header") {
		out = append(out, SHIMHeader{Name: h.AttrValue("name"), Value: h.Text})
	}
	return out
}
