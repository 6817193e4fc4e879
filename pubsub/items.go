// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"strconv"

	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/form"
	"mellium.im/pubsubgw/paging"
	"mellium.im/pubsubgw/stanza"
)

// Publish publishes an item to a node.
// Content is converted to the item payload by the client's ItemCodec.
// If ID is empty the service assigns one.
// Options, if non-nil, are sent as publish options preconditions.
// On success the callback receives a PublishResult.
type Publish struct {
	To      string
	Node    string
	ID      string
	Content string
	Options []form.Field
}

// Op satisfies Request.
func (Publish) Op() string { return "publish" }

func (r Publish) target() string { return r.To }
func (Publish) iqType() stanza.IQType { return stanza.SetIQ }

func (r Publish) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		check(r.Content != "", descMissingContent),
		wellFormed(r.Options),
	}
}

func (r Publish) payload(e env) (element.Element, error) {
	entry, err := e.items.Encode(r.Content)
	if err != nil {
		return element.Element{}, err
	}
	ps := wrap(NS, element.New("publish").WithAttr("node", r.Node).WithChild(
		element.New("item").WithAttr("id", r.ID).WithChild(entry),
	))
	if r.Options != nil {
		ps = ps.WithChild(element.New("publish-options").WithChild(
			form.Submit(NSPublishOptions, r.Options),
		))
	}
	return ps, nil
}

func (r Publish) parse(_ env, iq element.Element) (interface{}, *paging.Set) {
	pub, _ := pubsubChild(iq).Child("publish")
	item, _ := pub.Child("item")
	id := item.AttrValue("id")
	if id == "" {
		id = r.ID
	}
	return PublishResult{ID: id}, nil
}

// RetrieveItems fetches items from a node.
// If IDs is set only those items are requested, in order.
// MaxItems limits the request to the most recent items if greater than zero.
// On success the callback receives a []Item and, if the service pages the
// results, the current page.
type RetrieveItems struct {
	To       string
	Node     string
	IDs      []string
	MaxItems int
	RSM      paging.Request
}

// Op satisfies Request.
func (RetrieveItems) Op() string { return "items.retrieve" }

func (r RetrieveItems) target() string { return r.To }
func (RetrieveItems) iqType() stanza.IQType { return stanza.GetIQ }

func (r RetrieveItems) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		func() string {
			for _, id := range r.IDs {
				if id == "" {
					return descBadID
				}
			}
			return ""
		},
	}
}

func (r RetrieveItems) payload(env) (element.Element, error) {
	items := element.New("items").WithAttr("node", r.Node)
	if r.MaxItems > 0 {
		items = items.WithAttr("max_items", strconv.Itoa(r.MaxItems))
	}
	for _, id := range r.IDs {
		items = items.WithChild(element.New("item").WithAttr("id", id))
	}
	return withRSM(wrap(NS, items), r.RSM), nil
}

func (RetrieveItems) parse(e env, iq element.Element) (interface{}, *paging.Set) {
	ps := pubsubChild(iq)
	items, _ := ps.Child("items")
	list := []Item{}
	for _, item := range items.ChildrenNamed("item") {
		list = append(list, Item{
			ID:        item.AttrValue("id"),
			Entry:     decodeItem(e, item),
			Publisher: parseAddress(item.AttrValue("publisher")),
		})
	}
	return list, paging.Find(ps)
}

// DeleteItem retracts an item from a node.
// If Notify is set the service notifies subscribers of the retraction.
// On success the callback receives true.
type DeleteItem struct {
	To     string
	Node   string
	ID     string
	Notify bool
}

// Op satisfies Request.
func (DeleteItem) Op() string { return "item.delete" }

func (r DeleteItem) target() string { return r.To }
func (DeleteItem) iqType() stanza.IQType { return stanza.SetIQ }

func (r DeleteItem) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		required("id", r.ID),
	}
}

func (r DeleteItem) payload(env) (element.Element, error) {
	retract := element.New("retract").WithAttr("node", r.Node)
	if r.Notify {
		retract = retract.WithAttr("notify", "true")
	}
	return wrap(NS, retract.WithChild(element.New("item").WithAttr("id", r.ID))), nil
}

func (DeleteItem) parse(env, element.Element) (interface{}, *paging.Set) {
	return true, nil
}
