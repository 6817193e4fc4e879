// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/paging"
	"mellium.im/pubsubgw/stanza"
)

// ListAffiliations requests the affiliations of the entity with every node on
// the service (or with Node if set).
// If Owner is set the affiliations of all entities with Node are requested
// instead, which requires Node.
// On success the callback receives a []Affiliation and, if the service pages
// the results, the current page.
type ListAffiliations struct {
	To    string
	Node  string
	Owner bool
	RSM   paging.Request
}

// Op satisfies Request.
func (ListAffiliations) Op() string { return "affiliations.list" }

func (r ListAffiliations) target() string { return r.To }
func (ListAffiliations) iqType() stanza.IQType { return stanza.GetIQ }

func (r ListAffiliations) rules(env) []rule {
	return []rule{
		required("to", r.To),
		check(!r.Owner || r.Node != "", descOwnerNode),
	}
}

func (r ListAffiliations) payload(env) (element.Element, error) {
	space := NS
	if r.Owner {
		space = NSOwner
	}
	return withRSM(wrap(space, element.New("affiliations").WithAttr("node", r.Node)), r.RSM), nil
}

func (r ListAffiliations) parse(_ env, iq element.Element) (interface{}, *paging.Set) {
	ps := pubsubChild(iq)
	affs, _ := ps.Child("affiliations")
	parentNode := orDefault(affs.AttrValue("node"), r.Node)
	list := []Affiliation{}
	for _, a := range affs.ChildrenNamed("affiliation") {
		list = append(list, Affiliation{
			Node:        orDefault(a.AttrValue("node"), parentNode),
			JID:         parseAddress(a.AttrValue("jid")),
			Affiliation: a.AttrValue("affiliation"),
		})
	}
	return list, paging.Find(ps)
}

// SetAffiliation changes the affiliation of JID with a node that the entity
// owns.
// On success the callback receives true.
type SetAffiliation struct {
	To          string
	Node        string
	JID         string
	Affiliation string
}

// Op satisfies Request.
func (SetAffiliation) Op() string { return "affiliation.set" }

func (r SetAffiliation) target() string { return r.To }
func (SetAffiliation) iqType() stanza.IQType { return stanza.SetIQ }

func (r SetAffiliation) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		required("jid", r.JID),
		required("affiliation", r.Affiliation),
	}
}

func (r SetAffiliation) payload(env) (element.Element, error) {
	return wrap(NSOwner, element.New("affiliations").WithAttr("node", r.Node).WithChild(
		element.New("affiliation").
			WithAttr("jid", r.JID).
			WithAttr("affiliation", r.Affiliation),
	)), nil
}

func (SetAffiliation) parse(env, element.Element) (interface{}, *paging.Set) {
	return true, nil
}
