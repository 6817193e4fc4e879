// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza

import (
	"time"

	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/internal/ns"
)

// Delay can be added to a stanza to indicate that stanza delivery was delayed.
// For example, items published while a subscriber was offline carry a delay
// to indicate when they were originally published.
//
// Stamp is kept exactly as received since not all entities use the timestamp
// format required by XEP-0082; use Time to parse it.
type Delay struct {
	From   string `json:"from,omitempty"`
	Stamp  string `json:"stamp"`
	Reason string `json:"reason,omitempty"`
}

// FindDelay returns the first <delay/> child of parent in any namespace.
// Delays without a stamp are ignored.
func FindDelay(parent element.Element) *Delay {
	el, ok := parent.Child("delay")
	if !ok || el.AttrValue("stamp") == "" {
		return nil
	}
	return &Delay{
		From:   el.AttrValue("from"),
		Stamp:  el.AttrValue("stamp"),
		Reason: el.Text,
	}
}

// Time parses the stamp as an RFC 3339 timestamp.
func (d Delay) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, d.Stamp)
}

// NewDelay returns a delay with the stamp formatted from t.
func NewDelay(from string, t time.Time) Delay {
	return Delay{From: from, Stamp: t.UTC().Format(time.RFC3339Nano)}
}

// Element returns the <delay/> element for d.
func (d Delay) Element() element.Element {
	return element.NewNS(ns.Delay, "delay").
		WithAttr("from", d.From).
		WithAttr("stamp", d.Stamp).
		WithText(d.Reason)
}
