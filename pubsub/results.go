// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"mellium.im/pubsubgw/jid"
)

// PublishResult is the result of a Publish request.
type PublishResult struct {
	// ID is the item id assigned by the service, or the requested id if the
	// service did not return one.
	ID string `json:"id"`
}

// Item is a single item returned by RetrieveItems.
type Item struct {
	ID        string       `json:"id"`
	Entry     interface{}  `json:"entry,omitempty"`
	Publisher *jid.Address `json:"publisher,omitempty"`
}

// Affiliation is an entry in the result of ListAffiliations.
type Affiliation struct {
	Node        string       `json:"node,omitempty"`
	JID         *jid.Address `json:"jid,omitempty"`
	Affiliation string       `json:"affiliation"`
}

// Subscription is an entry in the result of ListSubscriptions.
type Subscription struct {
	Node         string       `json:"node,omitempty"`
	JID          *jid.Address `json:"jid,omitempty"`
	Subscription string       `json:"subscription"`
	ID           string       `json:"id,omitempty"`
}

// SubscribeResult is the result of a Subscribe request.
type SubscribeResult struct {
	Subscription  string                  `json:"subscription"`
	ID            string                  `json:"id,omitempty"`
	Configuration *SubscribeConfiguration `json:"configuration,omitempty"`
}

// SubscribeConfiguration is present on a SubscribeResult if the service
// offers subscription options.
type SubscribeConfiguration struct {
	// Required is true if the subscription options must be configured before
	// the subscription becomes active.
	Required bool `json:"required"`
}
