// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package element

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"

	"mellium.im/pubsubgw/internal/attr"
)

// Read decodes a single element from r.
// If start is nil the first start element read from r (skipping any leading
// whitespace, comments, or processing instructions) is used.
// Otherwise start is taken to be the already consumed start token of the
// element and r must be positioned just after it.
//
// Namespace declarations are dropped from the attribute list since the
// namespace of each element is recorded in its name.
func Read(r xml.TokenReader, start *xml.StartElement) (Element, error) {
	if start == nil {
		for {
			tok, err := r.Token()
			if s, ok := tok.(xml.StartElement); ok {
				start = &s
				break
			}
			switch {
			case err == io.EOF:
				return Element{}, errors.New("element: no start element found")
			case err != nil:
				return Element{}, errors.Wrap(err, "element: reading start token")
			}
		}
	}
	return readElement(r, *start)
}

func readElement(r xml.TokenReader, start xml.StartElement) (Element, error) {
	e := Element{Name: start.Name}
	for _, a := range start.Attr {
		if attr.IsNamespace(a) {
			continue
		}
		e.Attr = append(e.Attr, a)
	}

	var text strings.Builder
	for {
		// Readers may return the final token along with io.EOF.
		tok, err := r.Token()
		switch {
		case tok == nil && err == io.EOF:
			return e, errors.Errorf("element: unexpected EOF in <%s>", start.Name.Local)
		case err != nil && err != io.EOF:
			return e, errors.Wrapf(err, "element: decoding <%s>", start.Name.Local)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := readElement(r, t)
			if err != nil {
				return e, err
			}
			e.Children = append(e.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			e.Text = text.String()
			return e, nil
		}
	}
}

// Parse decodes the first element found in s.
func Parse(s string) (Element, error) {
	return Read(xml.NewDecoder(strings.NewReader(s)), nil)
}

// MustParse is like Parse but panics if s cannot be decoded.
// It simplifies safe initialization of elements from known-good constants.
func MustParse(s string) Element {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}
