// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza_test

import (
	"encoding/xml"
	"strconv"
	"testing"
	"time"

	"mellium.im/pubsubgw/element"
	"mellium.im/pubsubgw/stanza"
)

var _ error = stanza.Error{}

var isTests = [...]struct {
	name xml.Name
	is   bool
}{
	0: {name: xml.Name{Space: "jabber:client", Local: "iq"}, is: true},
	1: {name: xml.Name{Space: "jabber:server", Local: "message"}, is: true},
	2: {name: xml.Name{Local: "presence"}, is: true},
	3: {name: xml.Name{Space: "jabber:client", Local: "body"}},
	4: {name: xml.Name{Space: "urn:example", Local: "iq"}},
}

func TestIs(t *testing.T) {
	for i, tc := range isTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if is := stanza.Is(tc.name); is != tc.is {
				t.Errorf("wrong result for %v: want=%t, got=%t", tc.name, tc.is, is)
			}
		})
	}
}

var envelopeTests = [...]struct {
	in  element.Element
	out string
}{
	0: {
		in:  stanza.IQ{ID: "123", To: "pubsub.shakespeare.lit", Type: stanza.GetIQ}.Element(),
		out: `<iq type="get" id="123" to="pubsub.shakespeare.lit"></iq>`,
	},
	1: {
		in:  stanza.IQ{ID: "1", Type: stanza.SetIQ}.Element(element.NewNS("urn:example", "a")),
		out: `<iq type="set" id="1"><a xmlns="urn:example"></a></iq>`,
	},
	2: {
		in:  stanza.Message{ID: "m", To: "romeo@montague.lit"}.Element(element.New("body").WithText("hi")),
		out: `<message id="m" to="romeo@montague.lit"><body>hi</body></message>`,
	},
	3: {
		in:  stanza.Message{Type: stanza.HeadlineMessage, From: "a"}.Element(),
		out: `<message type="headline" from="a"></message>`,
	},
}

func TestEnvelope(t *testing.T) {
	for i, tc := range envelopeTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if out := tc.in.String(); out != tc.out {
				t.Errorf("wrong output:\nwant=%s,\n got=%s", tc.out, out)
			}
		})
	}
}

func TestParseIQ(t *testing.T) {
	iq, ok := stanza.ParseIQ(element.MustParse(`<iq xmlns="jabber:client" type="result" id="abc" from="pubsub.example.net" to="romeo@example.net/a"/>`))
	if !ok {
		t.Fatal("expected element to be an IQ")
	}
	want := stanza.IQ{ID: "abc", From: "pubsub.example.net", To: "romeo@example.net/a", Type: stanza.ResultIQ}
	if iq != want {
		t.Errorf("wrong IQ: want=%+v, got=%+v", want, iq)
	}
	if !iq.IsResponse() {
		t.Errorf("result IQ should be a response")
	}
	if r := (stanza.IQ{ID: "1", To: "a", From: "b", Type: stanza.GetIQ}).Result(); r != (stanza.IQ{ID: "1", To: "b", From: "a", Type: stanza.ResultIQ}) {
		t.Errorf("wrong result IQ: %+v", r)
	}
	if _, ok := stanza.ParseIQ(element.MustParse(`<message/>`)); ok {
		t.Errorf("message should not parse as an IQ")
	}
	if _, ok := stanza.ParseMessage(element.MustParse(`<iq/>`)); ok {
		t.Errorf("IQ should not parse as a message")
	}
	msg, ok := stanza.ParseMessage(element.MustParse(`<message from="a" id="b" type="normal"/>`))
	if !ok || msg != (stanza.Message{From: "a", ID: "b", Type: stanza.NormalMessage}) {
		t.Errorf("wrong message: %+v", msg)
	}
}

var errorTests = [...]struct {
	in        string
	typ       stanza.ErrorType
	condition stanza.Condition
	text      string
}{
	0: {
		in:        `<iq type="error" id="1"><error type="cancel"><error-condition/></error></iq>`,
		typ:       stanza.Cancel,
		condition: "error-condition",
	},
	1: {
		in:        `<iq type="error"><error type="auth"><text xmlns="urn:ietf:params:xml:ns:xmpp-stanzas">nope</text><forbidden xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/></error></iq>`,
		typ:       stanza.Auth,
		condition: stanza.Forbidden,
		text:      "nope",
	},
	2: {
		in:        `<iq type="error"><error type="modify"><unsupported xmlns="http://jabber.org/protocol/pubsub#errors" feature="x"/><not-acceptable xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/></error></iq>`,
		typ:       stanza.Modify,
		condition: stanza.NotAcceptable,
	},
	3: {
		in:        `<iq type="error"/>`,
		typ:       stanza.Cancel,
		condition: stanza.UndefinedCondition,
	},
	4: {
		in:        `<error type="wait"><resource-constraint xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/></error>`,
		typ:       stanza.Wait,
		condition: stanza.ResourceConstraint,
	},
}

func TestParseError(t *testing.T) {
	for i, tc := range errorTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			se := stanza.ParseError(element.MustParse(tc.in))
			if se.Type != tc.typ {
				t.Errorf("wrong type: want=%q, got=%q", tc.typ, se.Type)
			}
			if se.Condition != tc.condition {
				t.Errorf("wrong condition: want=%q, got=%q", tc.condition, se.Condition)
			}
			if se.Text != tc.text {
				t.Errorf("wrong text: want=%q, got=%q", tc.text, se.Text)
			}
		})
	}
}

func TestErrorElement(t *testing.T) {
	se := stanza.Error{Type: stanza.Cancel, Condition: stanza.ItemNotFound, Text: "gone"}
	const want = `<error type="cancel"><item-not-found xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"></item-not-found><text xmlns="urn:ietf:params:xml:ns:xmpp-stanzas">gone</text></error>`
	if out := se.Element().String(); out != want {
		t.Errorf("wrong output:\nwant=%s,\n got=%s", want, out)
	}
	if se.Error() != "gone" {
		t.Errorf("wrong error string: want=%q, got=%q", "gone", se.Error())
	}
	parsed := stanza.ParseError(se.Element())
	if parsed.Type != se.Type || parsed.Condition != se.Condition || parsed.Text != se.Text {
		t.Errorf("error changed on round trip: want=%+v, got=%+v", se, parsed)
	}
	if s := (stanza.Error{Condition: stanza.Conflict}).Error(); s != "conflict" {
		t.Errorf("wrong error string: want=%q, got=%q", "conflict", s)
	}
}

func TestDelay(t *testing.T) {
	stamp := time.Date(2003, 12, 13, 23, 58, 37, 0, time.UTC)
	parent := element.New("message").WithChild(
		stanza.NewDelay("pubsub.shakespeare.lit", stamp).Element(),
	)
	d := stanza.FindDelay(parent)
	if d == nil {
		t.Fatal("expected to find delay")
	}
	if d.Stamp != "2003-12-13T23:58:37Z" || d.From != "pubsub.shakespeare.lit" {
		t.Errorf("wrong delay: %+v", *d)
	}
	parsed, err := d.Time()
	if err != nil {
		t.Fatalf("error parsing stamp: %v", err)
	}
	if !parsed.Equal(stamp) {
		t.Errorf("wrong time: want=%v, got=%v", stamp, parsed)
	}

	for i, tc := range [...]string{
		0: `<message/>`,
		1: `<message><delay xmlns="urn:xmpp:delay"/></message>`,
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if d := stanza.FindDelay(element.MustParse(tc)); d != nil {
				t.Errorf("expected no delay, got %+v", *d)
			}
		})
	}

	d = stanza.FindDelay(element.MustParse(`<message><delay stamp="2013-06-23 20:00:00+0100">Offline</delay></message>`))
	if d == nil || d.Reason != "Offline" || d.Stamp != "2013-06-23 20:00:00+0100" {
		t.Fatalf("wrong delay: %+v", d)
	}
	if _, err := d.Time(); err == nil {
		t.Errorf("expected error parsing non RFC 3339 stamp")
	}
}
