// Copyright 2017 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package form implements sending and submitting data forms as described in
// XEP-0004: Data Forms.
//
// Forms are handled as plain ordered field lists.
// The hidden FORM_TYPE field that identifies the purpose of a form is lifted
// out of the list when parsing and always written first when serializing.
package form // import "mellium.im/pubsubgw/form"

import (
	"errors"
	"strconv"

	"mellium.im/pubsubgw/element"
)

// NS is the data forms namespace.
const NS = "jabber:x:data"

// FormTypeVar is the name of the hidden field that carries the form type.
const FormTypeVar = "FORM_TYPE"

// Form types.
const (
	TypeForm   = "form"
	TypeSubmit = "submit"
	TypeCancel = "cancel"
	TypeResult = "result"
)

// Field types.
const (
	TypeBoolean     = "boolean"
	TypeFixed       = "fixed"
	TypeHidden      = "hidden"
	TypeJIDMulti    = "jid-multi"
	TypeJID         = "jid-single"
	TypeListMulti   = "list-multi"
	TypeList        = "list-single"
	TypeTextMulti   = "text-multi"
	TypeTextPrivate = "text-private"
	TypeText        = "text-single"
)

// ErrBadForm is returned when a field list or form element cannot be
// interpreted.
var ErrBadForm = errors.New("form: badly formatted data form")

// Field is a single form field.
// Value may be a string, a bool, a number, or a []string.
// Booleans are written as "true" and "false".
type Field struct {
	Var   string      `json:"var"`
	Type  string      `json:"type,omitempty"`
	Label string      `json:"label,omitempty"`
	Value interface{} `json:"value"`
}

// Data is a parsed data form.
type Data struct {
	Type         string  `json:"type,omitempty"`
	Title        string  `json:"title,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
	FormType     string  `json:"-"`
	Fields       []Field `json:"fields"`
}

// Field returns the first field with the given variable name.
func (d *Data) Field(v string) (Field, bool) {
	if d == nil {
		return Field{}, false
	}
	for _, f := range d.Fields {
		if f.Var == v {
			return f, true
		}
	}
	return Field{}, false
}

// Element returns the form as an <x/> element.
// If FormType is set a hidden FORM_TYPE field precedes all other fields and
// any FORM_TYPE entry in Fields is skipped.
func (d *Data) Element() element.Element {
	x := element.NewNS(NS, "x").WithAttr("type", d.Type)
	if d.Title != "" {
		x = x.WithChild(element.New("title").WithText(d.Title))
	}
	if d.Instructions != "" {
		x = x.WithChild(element.New("instructions").WithText(d.Instructions))
	}
	if d.FormType != "" {
		x = x.WithChild(fieldElement(Field{
			Var:   FormTypeVar,
			Type:  TypeHidden,
			Value: d.FormType,
		}))
	}
	for _, f := range d.Fields {
		if d.FormType != "" && f.Var == FormTypeVar {
			continue
		}
		x = x.WithChild(fieldElement(f))
	}
	return x
}

// Submit returns a form of type submit with the given form type and fields.
// Fields should be checked with Validate first; values of an unsupported type
// are omitted.
func Submit(formType string, fields []Field) element.Element {
	d := Data{Type: TypeSubmit, FormType: formType, Fields: fields}
	return d.Element()
}

// Validate reports ErrBadForm if fields is nil, if any field is missing its
// variable name, or if any value has an unsupported type.
// An empty, non-nil list is valid.
func Validate(fields []Field) error {
	if fields == nil {
		return ErrBadForm
	}
	for _, f := range fields {
		if f.Var == "" {
			return ErrBadForm
		}
		if _, ok := values(f.Value); !ok {
			return ErrBadForm
		}
	}
	return nil
}

func fieldElement(f Field) element.Element {
	el := element.New("field").
		WithAttr("var", f.Var).
		WithAttr("type", f.Type).
		WithAttr("label", f.Label)
	vals, _ := values(f.Value)
	for _, v := range vals {
		el = el.WithChild(element.New("value").WithText(v))
	}
	return el
}

func values(v interface{}) ([]string, bool) {
	switch v := v.(type) {
	case nil:
		return nil, true
	case string:
		return []string{v}, true
	case bool:
		return []string{strconv.FormatBool(v)}, true
	case []string:
		return v, true
	case int:
		return []string{strconv.Itoa(v)}, true
	case int64:
		return []string{strconv.FormatInt(v, 10)}, true
	case uint:
		return []string{strconv.FormatUint(uint64(v), 10)}, true
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}, true
	}
	return nil, false
}
