// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/form"
	"mellium.im/pubsubgw/paging"
	"mellium.im/pubsubgw/pubsub"
)

var builderTests = []struct {
	req   pubsub.Request
	typ   string
	space string
	local string
	attrs map[string]string
}{
	{
		req:   pubsub.ListAffiliations{To: service},
		typ:   "get",
		space: pubsub.NS,
		local: "affiliations",
	},
	{
		req:   pubsub.ListAffiliations{To: service, Node: node, Owner: true},
		typ:   "get",
		space: pubsub.NSOwner,
		local: "affiliations",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.SetAffiliation{To: service, Node: node, JID: "romeo@example.com", Affiliation: "publisher"},
		typ:   "set",
		space: pubsub.NSOwner,
		local: "affiliations",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.CreateNode{To: service, Node: node},
		typ:   "set",
		space: pubsub.NS,
		local: "create",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.DeleteNode{To: service, Node: node},
		typ:   "set",
		space: pubsub.NSOwner,
		local: "delete",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.Publish{To: service, Node: node, ID: "item-1", Content: "hello world"},
		typ:   "set",
		space: pubsub.NS,
		local: "publish",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.RetrieveItems{To: service, Node: node, MaxItems: 5},
		typ:   "get",
		space: pubsub.NS,
		local: "items",
		attrs: map[string]string{"node": node, "max_items": "5"},
	},
	{
		req:   pubsub.DeleteItem{To: service, Node: node, ID: "item-1", Notify: true},
		typ:   "set",
		space: pubsub.NS,
		local: "retract",
		attrs: map[string]string{"node": node, "notify": "true"},
	},
	{
		req:   pubsub.Purge{To: service, Node: node},
		typ:   "set",
		space: pubsub.NS,
		local: "purge",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.GetConfig{To: service, Node: node},
		typ:   "get",
		space: pubsub.NSOwner,
		local: "configure",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.GetDefaultConfig{To: service},
		typ:   "get",
		space: pubsub.NSOwner,
		local: "default",
	},
	{
		req:   pubsub.SetConfig{To: service, Node: node, Form: []form.Field{}},
		typ:   "set",
		space: pubsub.NSOwner,
		local: "configure",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.Subscribe{To: service, Node: node, JID: "romeo@example.com"},
		typ:   "set",
		space: pubsub.NS,
		local: "subscribe",
		attrs: map[string]string{"node": node, "jid": "romeo@example.com"},
	},
	{
		req:   pubsub.Unsubscribe{To: service, Node: node, JID: "romeo@example.com", ID: "123456"},
		typ:   "set",
		space: pubsub.NS,
		local: "unsubscribe",
		attrs: map[string]string{"node": node, "jid": "romeo@example.com", "subid": "123456"},
	},
	{
		req:   pubsub.ListSubscriptions{To: service, Node: node},
		typ:   "get",
		space: pubsub.NS,
		local: "subscriptions",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.ListSubscriptions{To: service, Node: node, Owner: true},
		typ:   "get",
		space: pubsub.NSOwner,
		local: "subscriptions",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.GetSubscriptionOptions{To: service, Node: node, JID: "romeo@example.com"},
		typ:   "get",
		space: pubsub.NS,
		local: "options",
		attrs: map[string]string{"node": node, "jid": "romeo@example.com"},
	},
	{
		req:   pubsub.GetDefaultSubscriptionOptions{To: service, Node: node},
		typ:   "get",
		space: pubsub.NS,
		local: "default",
		attrs: map[string]string{"node": node},
	},
	{
		req:   pubsub.SetSubscriptionOptions{To: service, Node: node, JID: "romeo@example.com", Form: []form.Field{}},
		typ:   "set",
		space: pubsub.NS,
		local: "options",
		attrs: map[string]string{"node": node, "jid": "romeo@example.com"},
	},
	{
		req:   pubsub.SetSubscription{To: service, Node: node, JID: "romeo@example.com", Subscription: "subscribed"},
		typ:   "set",
		space: pubsub.NSOwner,
		local: "subscriptions",
		attrs: map[string]string{"node": node},
	},
}

func TestBuilders(t *testing.T) {
	for _, tc := range builderTests {
		t.Run(tc.req.Op(), func(t *testing.T) {
			c, rec := newClient(nil)
			var o outcome
			c.Do(context.Background(), tc.req, o.callback)
			require.Equal(t, 0, o.calls, "unexpected callback: %v", o.err)
			require.Equal(t, 1, rec.Len())

			iq := rec.Last()
			assert.Equal(t, "iq", iq.Name.Local)
			assert.Equal(t, tc.typ, iq.AttrValue("type"))
			assert.Equal(t, service, iq.AttrValue("to"))
			assert.NotEmpty(t, iq.AttrValue("id"))

			op, _ := firstOp(t, iq, tc.space)
			assert.Equal(t, tc.local, op.Name.Local)
			for k, v := range tc.attrs {
				assert.Equal(t, v, op.AttrValue(k), "wrong %s attribute", k)
			}
		})
	}
}

// send returns the stanza sent for req.
func send(t *testing.T, req pubsub.Request) element.Element {
	t.Helper()
	c, rec := newClient(nil)
	var o outcome
	c.Do(context.Background(), req, o.callback)
	require.Equal(t, 1, rec.Len(), "request not sent: %v", o.err)
	return rec.Last()
}

func TestBuildCreateOptions(t *testing.T) {
	iq := send(t, pubsub.CreateNode{To: service, Node: node})
	_, ps := firstOp(t, iq, pubsub.NS)
	assert.Len(t, ps.Children, 1, "configure should be omitted without options")

	iq = send(t, pubsub.CreateNode{To: service, Node: node, Options: []form.Field{
		{Var: "pubsub#title", Value: "A great comedy"},
		{Var: "pubsub#deliver_payloads", Value: false},
	}})
	_, ps = firstOp(t, iq, pubsub.NS)
	require.Len(t, ps.Children, 2)
	assert.Equal(t, "create", ps.Children[0].Name.Local)
	configure := ps.Children[1]
	assert.Equal(t, "configure", configure.Name.Local)

	x, ok := configure.ChildNS(form.NS, "x")
	require.True(t, ok)
	assert.Equal(t, "submit", x.AttrValue("type"))
	fields := x.ChildrenNamed("field")
	require.Len(t, fields, 3)
	assert.Equal(t, "FORM_TYPE", fields[0].AttrValue("var"))
	assert.Equal(t, "hidden", fields[0].AttrValue("type"))
	assert.Equal(t, pubsub.NSNodeConfig, fields[0].ChildText("value"))
	assert.Equal(t, "pubsub#title", fields[1].AttrValue("var"))
	assert.Equal(t, "A great comedy", fields[1].ChildText("value"))
	assert.Equal(t, "false", fields[2].ChildText("value"))
}

func TestBuildPublish(t *testing.T) {
	iq := send(t, pubsub.Publish{
		To:      service,
		Node:    node,
		ID:      "item-1",
		Content: "hello world",
		Options: []form.Field{{Var: "pubsub#access_model", Value: "presence"}},
	})
	pub, ps := firstOp(t, iq, pubsub.NS)
	item, ok := pub.Child("item")
	require.True(t, ok)
	assert.Equal(t, "item-1", item.AttrValue("id"))
	assert.Equal(t, "hello world", item.ChildText("body"))

	opts, ok := ps.Child("publish-options")
	require.True(t, ok)
	x, ok := opts.ChildNS(form.NS, "x")
	require.True(t, ok)
	assert.Equal(t, pubsub.NSPublishOptions, form.FormType(x))

	iq = send(t, pubsub.Publish{To: service, Node: node, Content: "hello world"})
	pub, ps = firstOp(t, iq, pubsub.NS)
	item, _ = pub.Child("item")
	assert.Empty(t, item.AttrValue("id"))
	_, ok = ps.Child("publish-options")
	assert.False(t, ok)
}

func TestBuildPublishXML(t *testing.T) {
	c, rec := newClient(nil, pubsub.Items(pubsub.XMLCodec{}))
	var o outcome
	c.Do(context.Background(), pubsub.Publish{
		To:      service,
		Node:    node,
		Content: `<entry xmlns="http://www.w3.org/2005/Atom"><title>Soliloquy</title></entry>`,
	}, o.callback)
	require.Equal(t, 1, rec.Len())
	pub, _ := firstOp(t, rec.Last(), pubsub.NS)
	item, _ := pub.Child("item")
	entry, ok := item.ChildNS("http://www.w3.org/2005/Atom", "entry")
	require.True(t, ok)
	assert.Equal(t, "Soliloquy", entry.ChildText("title"))
}

func TestBuildRetrieveIDs(t *testing.T) {
	iq := send(t, pubsub.RetrieveItems{To: service, Node: node, IDs: []string{"1", "2", "3", "item-4"}})
	items, _ := firstOp(t, iq, pubsub.NS)
	children := items.ChildrenNamed("item")
	require.Len(t, children, 4)
	for i, id := range []string{"1", "2", "3", "item-4"} {
		assert.Equal(t, id, children[i].AttrValue("id"))
	}
	assert.Empty(t, items.AttrValue("max_items"))
}

func TestBuildRSM(t *testing.T) {
	for _, req := range []pubsub.Request{
		pubsub.ListSubscriptions{To: service, Node: node, RSM: paging.Request{Max: "20", Before: "item-123"}},
		pubsub.ListAffiliations{To: service, RSM: paging.Request{Max: "20", Before: "item-123"}},
		pubsub.RetrieveItems{To: service, Node: node, RSM: paging.Request{Max: "20", Before: "item-123"}},
	} {
		t.Run(req.Op(), func(t *testing.T) {
			iq := send(t, req)
			_, ps := firstOp(t, iq, pubsub.NS)
			set, ok := ps.ChildNS(paging.NS, "set")
			require.True(t, ok, "set must be a child of the pubsub element")
			require.Len(t, set.Children, 2)
			assert.Equal(t, "20", set.ChildText("max"))
			assert.Equal(t, "item-123", set.ChildText("before"))
		})
	}

	iq := send(t, pubsub.ListSubscriptions{To: service})
	_, ps := firstOp(t, iq, pubsub.NS)
	_, ok := ps.ChildNS(paging.NS, "set")
	assert.False(t, ok)
}

func TestBuildDeleteRedirect(t *testing.T) {
	iq := send(t, pubsub.DeleteNode{To: service, Node: node, Redirect: "xmpp:pubsub.marlowe.lit?;node=dido"})
	del, _ := firstOp(t, iq, pubsub.NSOwner)
	redirect, ok := del.Child("redirect")
	require.True(t, ok)
	assert.Equal(t, "xmpp:pubsub.marlowe.lit?;node=dido", redirect.AttrValue("uri"))

	iq = send(t, pubsub.DeleteNode{To: service, Node: node})
	del, _ = firstOp(t, iq, pubsub.NSOwner)
	assert.Empty(t, del.Children)
}

func TestBuildForms(t *testing.T) {
	fields := []form.Field{{Var: "pubsub#deliver", Value: true}}
	for _, tc := range []struct {
		req      pubsub.Request
		space    string
		formType string
	}{
		{pubsub.SetConfig{To: service, Node: node, Form: fields}, pubsub.NSOwner, pubsub.NSNodeConfig},
		{pubsub.SetSubscriptionOptions{To: service, Node: node, JID: "romeo@example.com", Form: fields}, pubsub.NS, pubsub.NSSubOptions},
	} {
		t.Run(tc.req.Op(), func(t *testing.T) {
			iq := send(t, tc.req)
			op, _ := firstOp(t, iq, tc.space)
			x, ok := op.ChildNS(form.NS, "x")
			require.True(t, ok)
			assert.Equal(t, "submit", x.AttrValue("type"))
			data, err := form.Parse(x)
			require.NoError(t, err)
			assert.Equal(t, tc.formType, data.FormType)
			require.Len(t, data.Fields, 1)
			assert.Equal(t, "pubsub#deliver", data.Fields[0].Var)
			v, _ := x.ChildrenNamed("field")[1].Child("value")
			assert.Equal(t, "true", v.Text)
		})
	}
}

func TestBuildOwnerItems(t *testing.T) {
	iq := send(t, pubsub.SetAffiliation{To: service, Node: node, JID: "romeo@example.com", Affiliation: "publisher"})
	affs, _ := firstOp(t, iq, pubsub.NSOwner)
	aff, ok := affs.Child("affiliation")
	require.True(t, ok)
	assert.Equal(t, "romeo@example.com", aff.AttrValue("jid"))
	assert.Equal(t, "publisher", aff.AttrValue("affiliation"))

	iq = send(t, pubsub.SetSubscription{To: service, Node: node, JID: "romeo@example.com", Subscription: "subscribed"})
	subs, _ := firstOp(t, iq, pubsub.NSOwner)
	sub, ok := subs.Child("subscription")
	require.True(t, ok)
	assert.Equal(t, "romeo@example.com", sub.AttrValue("jid"))
	assert.Equal(t, "subscribed", sub.AttrValue("subscription"))
}

func TestBuildDefaultSubscriptionOptions(t *testing.T) {
	iq := send(t, pubsub.GetDefaultSubscriptionOptions{To: service})
	def, _ := firstOp(t, iq, pubsub.NS)
	assert.Equal(t, "default", def.Name.Local)
	assert.Empty(t, def.AttrValue("node"))
}
