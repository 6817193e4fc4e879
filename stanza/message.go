// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza

import (
	"mellium.im/pubsubgw/element"
)

// MessageType is the type of a message stanza.
// It should normally be one of the constants defined in this package.
type MessageType string

const (
	// NormalMessage is a standalone message that is sent outside the context of a
	// one-to-one conversation or groupchat, and to which it is expected that the
	// recipient will reply.
	NormalMessage MessageType = "normal"

	// ChatMessage represents a message sent in the context of a one-to-one chat
	// session.
	ChatMessage MessageType = "chat"

	// HeadlineMessage provides an alert, a notification, or other transient
	// information to which no reply is expected.
	HeadlineMessage MessageType = "headline"

	// ErrorMessage is generated by an entity that experiences an error when
	// processing a message received from another entity.
	ErrorMessage MessageType = "error"
)

// Message is an XMPP stanza that contains a payload for direct one-to-one
// communication with another network entity.
// Event notifications from a pubsub service are delivered as messages.
type Message struct {
	ID   string
	To   string
	From string
	Type MessageType
}

// ParseMessage reads the envelope attributes of a <message/> element.
// The boolean is false if el is not a message.
func ParseMessage(el element.Element) (Message, bool) {
	if el.Name.Local != "message" || !Is(el.Name) {
		return Message{}, false
	}
	return Message{
		ID:   el.AttrValue("id"),
		To:   el.AttrValue("to"),
		From: el.AttrValue("from"),
		Type: MessageType(el.AttrValue("type")),
	}, true
}

// Element returns the message wrapped around the provided payloads.
func (msg Message) Element(payload ...element.Element) element.Element {
	return element.New("message").
		WithAttr("type", string(msg.Type)).
		WithAttr("id", msg.ID).
		WithAttr("to", msg.To).
		WithAttr("from", msg.From).
		WithChild(payload...)
}
