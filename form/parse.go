// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package form

import (
	"strings"

	pkgerrors "github.com/pkg/errors"

	"mellium.im/pubsubgw/element"
)

// Parse decodes an <x/> element in the data forms namespace.
//
// The FORM_TYPE field is stored in FormType and is not repeated in Fields.
// Boolean fields decode to a bool ("1" and "true" are true), multi-valued
// field types decode to a []string, and all other fields decode to their
// first value as a string (or nil if they have no value).
// Fields without a type that carry more than one value decode to a []string.
func Parse(el element.Element) (*Data, error) {
	if el.Name.Local != "x" || el.Name.Space != NS {
		return nil, pkgerrors.Wrapf(ErrBadForm, "unexpected element {%s}%s", el.Name.Space, el.Name.Local)
	}
	d := &Data{
		Type:         el.AttrValue("type"),
		Title:        el.ChildText("title"),
		Instructions: el.ChildText("instructions"),
		Fields:       []Field{},
	}
	for _, c := range el.ChildrenNamed("field") {
		f := Field{
			Var:   c.AttrValue("var"),
			Type:  c.AttrValue("type"),
			Label: c.AttrValue("label"),
		}
		var vals []string
		for _, v := range c.ChildrenNamed("value") {
			vals = append(vals, v.Text)
		}
		if f.Var == FormTypeVar {
			if len(vals) > 0 && d.FormType == "" {
				d.FormType = vals[0]
			}
			continue
		}
		f.Value = coerce(f.Type, vals)
		d.Fields = append(d.Fields, f)
	}
	return d, nil
}

// FormType returns the value of the FORM_TYPE field of an <x/> element or the
// empty string.
// Some entities omit the var attribute on the FORM_TYPE field, so the first
// hidden field without a var is also accepted.
func FormType(el element.Element) string {
	if el.Name.Local != "x" {
		return ""
	}
	for _, c := range el.ChildrenNamed("field") {
		v := c.AttrValue("var")
		if v == FormTypeVar || (v == "" && c.AttrValue("type") == TypeHidden) {
			return c.ChildText("value")
		}
	}
	return ""
}

func coerce(typ string, vals []string) interface{} {
	switch {
	case typ == TypeBoolean:
		if len(vals) == 0 {
			return false
		}
		return vals[0] == "1" || vals[0] == "true"
	case strings.HasSuffix(typ, "-multi"):
		return vals
	case len(vals) == 0:
		return nil
	case typ == "" && len(vals) > 1:
		return vals
	}
	return vals[0]
}
