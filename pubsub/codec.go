// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"

	"mellium.im/pubsubgw/element"
)

// ItemCodec translates between the content of published items and their
// XML payload.
type ItemCodec interface {
	// Encode returns the payload of an item with the given content.
	Encode(content string) (element.Element, error)

	// Decode returns the entry for the payload elements of an item.
	// Decode is not called for items without a payload.
	Decode(payload []element.Element) (interface{}, error)
}

// Entry is the decoded payload of an item using BodyCodec.
// It maps the local name of each payload element to its text.
type Entry map[string]string

// BodyCodec is the default ItemCodec.
// Content is wrapped in a <body/> element, and payloads decode to an Entry so
// that <body>hello</body> becomes Entry{"body": "hello"}.
type BodyCodec struct{}

// Encode satisfies ItemCodec.
func (BodyCodec) Encode(content string) (element.Element, error) {
	return element.New("body").WithText(content), nil
}

// Decode satisfies ItemCodec.
func (BodyCodec) Decode(payload []element.Element) (interface{}, error) {
	entry := make(Entry, len(payload))
	for _, el := range payload {
		entry[el.Name.Local] = el.Text
	}
	return entry, nil
}

// XMLCodec is an ItemCodec for content that is itself a serialized XML
// element, such as an Atom entry.
// Payloads decode to the serialization of their first element.
type XMLCodec struct{}

// Encode satisfies ItemCodec.
// The content must hold exactly one element, optionally surrounded by
// whitespace, comments or processing instructions.
func (XMLCodec) Encode(content string) (element.Element, error) {
	d := xml.NewDecoder(strings.NewReader(content))
	var el element.Element
	found := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return element.Element{}, errors.Wrap(err, "pubsub: item content is not XML")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if found {
				return element.Element{}, errors.New("pubsub: item content has more than one element")
			}
			el, err = element.Read(d, &t)
			if err != nil {
				return element.Element{}, errors.Wrap(err, "pubsub: item content is not XML")
			}
			found = true
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return element.Element{}, errors.New("pubsub: item content has text outside of the element")
			}
		case xml.Directive:
			return element.Element{}, errors.New("pubsub: item content has a directive")
		}
	}
	if !found {
		return element.Element{}, errors.New("pubsub: item content is not XML")
	}
	return el, nil
}

// Decode satisfies ItemCodec.
func (XMLCodec) Decode(payload []element.Element) (interface{}, error) {
	if len(payload) == 0 {
		return nil, errors.New("pubsub: empty payload")
	}
	return payload[0].String(), nil
}

// decodeItem runs the codec over the child elements of an <item/> and returns
// nil if there is no payload or it cannot be decoded.
func decodeItem(e env, item element.Element) interface{} {
	if len(item.Children) == 0 {
		return nil
	}
	entry, err := e.items.Decode(item.Children)
	if err != nil {
		e.log.Printf("pubsub: could not decode item %q: %v", item.AttrValue("id"), err)
		return nil
	}
	return entry
}
