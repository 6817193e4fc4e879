// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/form"
	"mellium.im/pubsubgw/paging"
	"mellium.im/pubsubgw/stanza"
)

// Subscribe subscribes JID to a node.
// If JID is empty the bare form of the client's own address is used, and the
// request fails validation if the client has no address either.
// On success the callback receives a SubscribeResult.
type Subscribe struct {
	To   string
	Node string
	JID  string
}

// Op satisfies Request.
func (Subscribe) Op() string { return "subscribe" }

func (r Subscribe) target() string { return r.To }
func (Subscribe) iqType() stanza.IQType { return stanza.SetIQ }

func (r Subscribe) rules(e env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		required("jid", orDefault(r.JID, e.own.Bare().String())),
	}
}

func (r Subscribe) payload(e env) (element.Element, error) {
	return wrap(NS, element.New("subscribe").
		WithAttr("node", r.Node).
		WithAttr("jid", orDefault(r.JID, e.own.Bare().String())),
	), nil
}

func (Subscribe) parse(_ env, iq element.Element) (interface{}, *paging.Set) {
	sub, _ := pubsubChild(iq).Child("subscription")
	res := SubscribeResult{
		Subscription: sub.AttrValue("subscription"),
		ID:           sub.AttrValue("subid"),
	}
	if opts, ok := sub.Child("subscribe-options"); ok {
		_, req := opts.Child("required")
		res.Configuration = &SubscribeConfiguration{Required: req}
	}
	return res, nil
}

// Unsubscribe removes the subscription of JID to a node.
// If JID is empty the bare form of the client's own address is used.
// ID selects a single subscription if the entity has more than one.
// On success the callback receives true.
type Unsubscribe struct {
	To   string
	Node string
	JID  string
	ID   string
}

// Op satisfies Request.
func (Unsubscribe) Op() string { return "unsubscribe" }

func (r Unsubscribe) target() string { return r.To }
func (Unsubscribe) iqType() stanza.IQType { return stanza.SetIQ }

func (r Unsubscribe) rules(e env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		required("jid", orDefault(r.JID, e.own.Bare().String())),
	}
}

func (r Unsubscribe) payload(e env) (element.Element, error) {
	return wrap(NS, element.New("unsubscribe").
		WithAttr("node", r.Node).
		WithAttr("jid", orDefault(r.JID, e.own.Bare().String())).
		WithAttr("subid", r.ID),
	), nil
}

func (Unsubscribe) parse(env, element.Element) (interface{}, *paging.Set) {
	return true, nil
}

// ListSubscriptions requests the subscriptions of the entity on the service
// (or to Node if set).
// If Owner is set the subscriptions of all entities to Node are requested
// instead, which requires Node.
// On success the callback receives a []Subscription and, if the service pages
// the results, the current page.
type ListSubscriptions struct {
	To    string
	Node  string
	Owner bool
	RSM   paging.Request
}

// Op satisfies Request.
func (ListSubscriptions) Op() string { return "subscriptions.list" }

func (r ListSubscriptions) target() string { return r.To }
func (ListSubscriptions) iqType() stanza.IQType { return stanza.GetIQ }

func (r ListSubscriptions) rules(env) []rule {
	return []rule{
		required("to", r.To),
		check(!r.Owner || r.Node != "", descOwnerNode),
	}
}

func (r ListSubscriptions) payload(env) (element.Element, error) {
	space := NS
	if r.Owner {
		space = NSOwner
	}
	return withRSM(wrap(space, element.New("subscriptions").WithAttr("node", r.Node)), r.RSM), nil
}

func (r ListSubscriptions) parse(_ env, iq element.Element) (interface{}, *paging.Set) {
	ps := pubsubChild(iq)
	subs, _ := ps.Child("subscriptions")
	parentNode := orDefault(subs.AttrValue("node"), r.Node)
	list := []Subscription{}
	for _, s := range subs.ChildrenNamed("subscription") {
		list = append(list, Subscription{
			Node:         orDefault(s.AttrValue("node"), parentNode),
			JID:          parseAddress(s.AttrValue("jid")),
			Subscription: s.AttrValue("subscription"),
			ID:           s.AttrValue("subid"),
		})
	}
	return list, paging.Find(ps)
}

// GetSubscriptionOptions fetches the subscription options form for JID.
// If JID is empty the full form of the client's own address is used.
// On success the callback receives a *form.Data.
type GetSubscriptionOptions struct {
	To   string
	Node string
	JID  string
}

// Op satisfies Request.
func (GetSubscriptionOptions) Op() string { return "subscription.config.get" }

func (r GetSubscriptionOptions) target() string { return r.To }
func (GetSubscriptionOptions) iqType() stanza.IQType { return stanza.GetIQ }

func (r GetSubscriptionOptions) rules(e env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		required("jid", orDefault(r.JID, e.own.String())),
	}
}

func (r GetSubscriptionOptions) payload(e env) (element.Element, error) {
	return wrap(NS, element.New("options").
		WithAttr("node", r.Node).
		WithAttr("jid", orDefault(r.JID, e.own.String())),
	), nil
}

func (GetSubscriptionOptions) parse(e env, iq element.Element) (interface{}, *paging.Set) {
	return formResult(e, iq, "options"), nil
}

// GetDefaultSubscriptionOptions fetches the default subscription options of
// the service, or of Node if set.
// On success the callback receives a *form.Data.
type GetDefaultSubscriptionOptions struct {
	To   string
	Node string
}

// Op satisfies Request.
func (GetDefaultSubscriptionOptions) Op() string { return "subscription.config.default" }

func (r GetDefaultSubscriptionOptions) target() string { return r.To }
func (GetDefaultSubscriptionOptions) iqType() stanza.IQType { return stanza.GetIQ }

func (r GetDefaultSubscriptionOptions) rules(env) []rule {
	return []rule{required("to", r.To)}
}

func (r GetDefaultSubscriptionOptions) payload(env) (element.Element, error) {
	return wrap(NS, element.New("default").WithAttr("node", r.Node)), nil
}

func (GetDefaultSubscriptionOptions) parse(e env, iq element.Element) (interface{}, *paging.Set) {
	return formResult(e, iq, "default"), nil
}

// SetSubscriptionOptions submits subscription options for JID.
// If JID is empty the full form of the client's own address is used.
// Form must not be nil.
// On success the callback receives true.
type SetSubscriptionOptions struct {
	To   string
	Node string
	JID  string
	Form []form.Field
}

// Op satisfies Request.
func (SetSubscriptionOptions) Op() string { return "subscription.config.set" }

func (r SetSubscriptionOptions) target() string { return r.To }
func (SetSubscriptionOptions) iqType() stanza.IQType { return stanza.SetIQ }

func (r SetSubscriptionOptions) rules(e env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		required("jid", orDefault(r.JID, e.own.String())),
		requiredForm(r.Form),
		wellFormed(r.Form),
	}
}

func (r SetSubscriptionOptions) payload(e env) (element.Element, error) {
	return wrap(NS, element.New("options").
		WithAttr("node", r.Node).
		WithAttr("jid", orDefault(r.JID, e.own.String())).
		// Options are sent as a completed form (XEP-0060 §6.3.5).
		WithChild(form.Submit(NSSubOptions, r.Form)),
	), nil
}

func (SetSubscriptionOptions) parse(env, element.Element) (interface{}, *paging.Set) {
	return true, nil
}

// SetSubscription changes the subscription state of JID to a node that the
// entity owns.
// On success the callback receives true.
type SetSubscription struct {
	To           string
	Node         string
	JID          string
	Subscription string
}

// Op satisfies Request.
func (SetSubscription) Op() string { return "subscription.set" }

func (r SetSubscription) target() string { return r.To }
func (SetSubscription) iqType() stanza.IQType { return stanza.SetIQ }

func (r SetSubscription) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		required("jid", r.JID),
		required("subscription", r.Subscription),
	}
}

func (r SetSubscription) payload(env) (element.Element, error) {
	return wrap(NSOwner, element.New("subscriptions").WithAttr("node", r.Node).WithChild(
		element.New("subscription").
			WithAttr("jid", r.JID).
			WithAttr("subscription", r.Subscription),
	)), nil
}

func (SetSubscription) parse(env, element.Element) (interface{}, *paging.Set) {
	return true, nil
}
