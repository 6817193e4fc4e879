// Copyright 2019 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package attr_test

import (
	"encoding/xml"
	"strconv"
	"testing"

	"mellium.im/pubsubgw/internal/attr"
)

var attrTests = [...]struct {
	attr  []xml.Attr
	local string
	out   string
	idx   int
}{
	0: {idx: -1},
	1: {idx: -1, local: "test"},
	2: {idx: -1, attr: []xml.Attr{}},
	3: {idx: -1, attr: []xml.Attr{}, local: "test"},
	4: {
		attr:  []xml.Attr{{Name: xml.Name{Local: "test"}, Value: "test"}},
		local: "test",
		out:   "test",
	},
	5: {
		attr: []xml.Attr{
			{Name: xml.Name{Local: "test"}, Value: "test0"},
			{Name: xml.Name{Local: "test"}, Value: "test1"},
		},
		local: "test",
		out:   "test0",
	},
	6: {
		attr: []xml.Attr{
			{Name: xml.Name{Local: "a"}, Value: "test0"},
			{Name: xml.Name{Local: "b"}, Value: "test1"},
		},
		local: "b",
		out:   "test1",
		idx:   1,
	},
}

func TestAttr(t *testing.T) {
	for i, tc := range attrTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			idx, out := attr.Get(tc.attr, tc.local)
			if out != tc.out {
				t.Errorf("Wrong output: want=%q, got=%q", tc.out, out)
			}
			if idx != tc.idx {
				t.Errorf("Wrong index: want=%d, got=%d", tc.idx, idx)
			}
		})
	}
}

var setTests = [...]struct {
	attr  []xml.Attr
	local string
	value string
	out   []xml.Attr
}{
	0: {
		local: "id",
		value: "123",
		out:   []xml.Attr{{Name: xml.Name{Local: "id"}, Value: "123"}},
	},
	1: {
		attr:  []xml.Attr{{Name: xml.Name{Local: "id"}, Value: "old"}},
		local: "id",
		value: "new",
		out:   []xml.Attr{{Name: xml.Name{Local: "id"}, Value: "new"}},
	},
	2: {
		attr:  []xml.Attr{{Name: xml.Name{Local: "to"}, Value: "a"}},
		local: "id",
		value: "1",
		out: []xml.Attr{
			{Name: xml.Name{Local: "to"}, Value: "a"},
			{Name: xml.Name{Local: "id"}, Value: "1"},
		},
	},
}

func TestSet(t *testing.T) {
	for i, tc := range setTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			var before []xml.Attr
			before = append(before, tc.attr...)
			out := attr.Set(tc.attr, tc.local, tc.value)
			if len(out) != len(tc.out) {
				t.Fatalf("wrong number of attributes: want=%d, got=%d", len(tc.out), len(out))
			}
			for j := range out {
				if out[j] != tc.out[j] {
					t.Errorf("wrong attribute %d: want=%+v, got=%+v", j, tc.out[j], out[j])
				}
			}
			for j := range before {
				if tc.attr[j] != before[j] {
					t.Errorf("input attribute %d was modified", j)
				}
			}
		})
	}
}

func TestIsNamespace(t *testing.T) {
	if !attr.IsNamespace(xml.Attr{Name: xml.Name{Local: "xmlns"}}) {
		t.Errorf("default namespace declaration not detected")
	}
	if !attr.IsNamespace(xml.Attr{Name: xml.Name{Space: "xmlns", Local: "stream"}}) {
		t.Errorf("prefixed namespace declaration not detected")
	}
	if attr.IsNamespace(xml.Attr{Name: xml.Name{Local: "node"}}) {
		t.Errorf("plain attribute detected as namespace declaration")
	}
}
