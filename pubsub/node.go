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

// CreateNode creates a new node on the service.
// If Options is non-empty it is sent as the node configuration.
// On success the callback receives true.
type CreateNode struct {
	To      string
	Node    string
	Options []form.Field
}

// Op satisfies Request.
func (CreateNode) Op() string { return "node.create" }

func (r CreateNode) target() string { return r.To }
func (CreateNode) iqType() stanza.IQType { return stanza.SetIQ }

func (r CreateNode) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		wellFormed(r.Options),
	}
}

func (r CreateNode) payload(env) (element.Element, error) {
	ps := wrap(NS, element.New("create").WithAttr("node", r.Node))
	if len(r.Options) > 0 {
		ps = ps.WithChild(element.New("configure").WithChild(form.Submit(NSNodeConfig, r.Options)))
	}
	return ps, nil
}

func (CreateNode) parse(env, element.Element) (interface{}, *paging.Set) {
	return true, nil
}

// DeleteNode deletes a node and all of its items.
// If Redirect is set subscribers are told to use that URI instead.
// On success the callback receives true.
type DeleteNode struct {
	To       string
	Node     string
	Redirect string
}

// Op satisfies Request.
func (DeleteNode) Op() string { return "node.delete" }

func (r DeleteNode) target() string { return r.To }
func (DeleteNode) iqType() stanza.IQType { return stanza.SetIQ }

func (r DeleteNode) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
	}
}

func (r DeleteNode) payload(env) (element.Element, error) {
	del := element.New("delete").WithAttr("node", r.Node)
	if r.Redirect != "" {
		del = del.WithChild(element.New("redirect").WithAttr("uri", r.Redirect))
	}
	return wrap(NSOwner, del), nil
}

func (DeleteNode) parse(env, element.Element) (interface{}, *paging.Set) {
	return true, nil
}

// Purge removes every item from a node.
// On success the callback receives true.
type Purge struct {
	To   string
	Node string
}

// Op satisfies Request.
func (Purge) Op() string { return "purge" }

func (r Purge) target() string { return r.To }
func (Purge) iqType() stanza.IQType { return stanza.SetIQ }

func (r Purge) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
	}
}

func (r Purge) payload(env) (element.Element, error) {
	return wrap(NS, element.New("purge").WithAttr("node", r.Node)), nil
}

func (Purge) parse(env, element.Element) (interface{}, *paging.Set) {
	return true, nil
}

// GetConfig fetches the configuration form of a node.
// On success the callback receives a *form.Data.
type GetConfig struct {
	To   string
	Node string
}

// Op satisfies Request.
func (GetConfig) Op() string { return "config.get" }

func (r GetConfig) target() string { return r.To }
func (GetConfig) iqType() stanza.IQType { return stanza.GetIQ }

func (r GetConfig) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
	}
}

func (r GetConfig) payload(env) (element.Element, error) {
	return wrap(NSOwner, element.New("configure").WithAttr("node", r.Node)), nil
}

func (GetConfig) parse(e env, iq element.Element) (interface{}, *paging.Set) {
	return formResult(e, iq, "configure"), nil
}

// GetDefaultConfig fetches the default configuration form for new nodes.
// On success the callback receives a *form.Data.
type GetDefaultConfig struct {
	To string
}

// Op satisfies Request.
func (GetDefaultConfig) Op() string { return "config.default" }

func (r GetDefaultConfig) target() string { return r.To }
func (GetDefaultConfig) iqType() stanza.IQType { return stanza.GetIQ }

func (r GetDefaultConfig) rules(env) []rule {
	return []rule{required("to", r.To)}
}

func (GetDefaultConfig) payload(env) (element.Element, error) {
	return wrap(NSOwner, element.New("default")), nil
}

func (GetDefaultConfig) parse(e env, iq element.Element) (interface{}, *paging.Set) {
	return formResult(e, iq, "default"), nil
}

// SetConfig submits a new configuration for a node.
// Form must not be nil, but may be empty to submit only the form type.
// On success the callback receives true.
type SetConfig struct {
	To   string
	Node string
	Form []form.Field
}

// Op satisfies Request.
func (SetConfig) Op() string { return "config.set" }

func (r SetConfig) target() string { return r.To }
func (SetConfig) iqType() stanza.IQType { return stanza.SetIQ }

func (r SetConfig) rules(env) []rule {
	return []rule{
		required("to", r.To),
		required("node", r.Node),
		requiredForm(r.Form),
		wellFormed(r.Form),
	}
}

func (r SetConfig) payload(env) (element.Element, error) {
	return wrap(NSOwner, element.New("configure").WithAttr("node", r.Node).WithChild(
		form.Submit(NSNodeConfig, r.Form),
	)), nil
}

func (SetConfig) parse(env, element.Element) (interface{}, *paging.Set) {
	return true, nil
}
