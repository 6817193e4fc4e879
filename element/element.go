// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package element implements an immutable XML element tree.
//
// Trees are built functionally: every With method returns a new Element and
// leaves its receiver untouched, so partially built trees may be shared
// between stanzas.
// Trees are serialized through a single token stream (see TokenReader) and
// decoded from any xml.TokenReader (see Read).
package element // import "mellium.im/pubsubgw/element"

import (
	"encoding/xml"
	"strings"

	"mellium.im/xmlstream"

	"mellium.im/pubsubgw/internal/attr"
)

// Element is an XML element with its attributes, character data, and ordered
// child elements.
// Character data interleaved with child elements is concatenated into Text.
type Element struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []Element
	Text     string
}

// New returns an element with the given local name and no namespace.
func New(local string) Element {
	return Element{Name: xml.Name{Local: local}}
}

// NewNS returns an element with the given namespace and local name.
func NewNS(space, local string) Element {
	return Element{Name: xml.Name{Space: space, Local: local}}
}

// WithAttr returns a copy of e with the attribute local set to value.
// Empty values are ignored so that optional attributes can be set
// unconditionally.
func (e Element) WithAttr(local, value string) Element {
	if value == "" {
		return e
	}
	e.Attr = attr.Set(e.Attr, local, value)
	return e
}

// WithChild returns a copy of e with the provided children appended.
func (e Element) WithChild(child ...Element) Element {
	children := make([]Element, 0, len(e.Children)+len(child))
	children = append(children, e.Children...)
	e.Children = append(children, child...)
	return e
}

// WithText returns a copy of e with its character data replaced.
func (e Element) WithText(text string) Element {
	e.Text = text
	return e
}

// IsZero reports whether e is the zero Element (eg. the result of a failed
// lookup).
func (e Element) IsZero() bool {
	return e.Name.Local == "" && e.Name.Space == "" && len(e.Attr) == 0 &&
		len(e.Children) == 0 && e.Text == ""
}

// AttrValue returns the value of the first attribute with the given local name
// or the empty string.
func (e Element) AttrValue(local string) string {
	_, v := attr.Get(e.Attr, local)
	return v
}

// Child returns the first child with the given local name in any namespace.
func (e Element) Child(local string) (Element, bool) {
	for _, c := range e.Children {
		if c.Name.Local == local {
			return c, true
		}
	}
	return Element{}, false
}

// ChildNS returns the first child with the given namespace and local name.
func (e Element) ChildNS(space, local string) (Element, bool) {
	for _, c := range e.Children {
		if c.Name.Local == local && c.Name.Space == space {
			return c, true
		}
	}
	return Element{}, false
}

// ChildrenNamed returns every child with the given local name in document
// order.
func (e Element) ChildrenNamed(local string) []Element {
	var out []Element
	for _, c := range e.Children {
		if c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the character data of the first child with the given local
// name or the empty string.
func (e Element) ChildText(local string) string {
	c, _ := e.Child(local)
	return c.Text
}

// First returns the first child element.
func (e Element) First() (Element, bool) {
	if len(e.Children) == 0 {
		return Element{}, false
	}
	return e.Children[0], true
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (e Element) TokenReader() xml.TokenReader {
	inner := make([]xml.TokenReader, 0, len(e.Children)+1)
	if e.Text != "" {
		inner = append(inner, xmlstream.Token(xml.CharData(e.Text)))
	}
	for _, c := range e.Children {
		inner = append(inner, c.TokenReader())
	}
	return xmlstream.Wrap(
		xmlstream.MultiReader(inner...),
		xml.StartElement{Name: e.Name, Attr: e.Attr},
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
func (e Element) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, e.TokenReader())
}

// MarshalXML satisfies the xml.Marshaler interface.
func (e Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	_, err := e.WriteXML(enc)
	if err != nil {
		return err
	}
	return enc.Flush()
}

// String returns the serialized form of e.
// If e cannot be serialized the empty string is returned.
func (e Element) String() string {
	var buf strings.Builder
	enc := xml.NewEncoder(&buf)
	if err := e.MarshalXML(enc, xml.StartElement{}); err != nil {
		return ""
	}
	return buf.String()
}
