// Copyright 2014 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jid

import (
	"bytes"
	"encoding/xml"
	"errors"
	"net"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/text/secure/precis"
)

// Errors returned when splitting or validating an address.
var (
	ErrEmptyLocalpart    = errors.New("jid: the localpart must be larger than 0 bytes")
	ErrEmptyResourcepart = errors.New("jid: the resourcepart must be larger than 0 bytes")
	ErrInvalidUTF8       = errors.New("jid: address contains invalid UTF-8")
	ErrForbiddenLocal    = errors.New("jid: localpart contains forbidden characters")
	ErrLongLocalpart     = errors.New("jid: the localpart must be smaller than 1024 bytes")
	ErrLongResourcepart  = errors.New("jid: the resourcepart must be smaller than 1024 bytes")
	ErrDomainLength      = errors.New("jid: the domainpart must be between 1 and 1023 bytes")
	ErrBadIPv6           = errors.New("jid: domainpart is not a valid IPv6 address")
)

// JID represents an XMPP address comprising a localpart, domainpart, and
// resourcepart.
// All parts are valid UTF-8 in their canonical form so that octet comparison
// of two JIDs is meaningful.
type JID struct {
	locallen  int
	domainlen int
	data      []byte
}

// Parse constructs a new JID from the given string representation.
func Parse(s string) (*JID, error) {
	localpart, domainpart, resourcepart, err := SplitString(s)
	if err != nil {
		return nil, err
	}
	return New(localpart, domainpart, resourcepart)
}

// MustParse is like Parse but panics if the JID cannot be parsed.
// It simplifies safe initialization of JIDs from known-good constant strings.
func MustParse(s string) *JID {
	j, err := Parse(s)
	if err != nil {
		if strconv.CanBackquote(s) {
			s = "`" + s + "`"
		} else {
			s = strconv.Quote(s)
		}
		panic(`jid: Parse(` + s + `): ` + err.Error())
	}
	return j
}

// New constructs a new JID from the given localpart, domainpart, and
// resourcepart.
//
// The domainpart is converted to U-labels (RFC 7622 §3.2.1), the localpart is
// enforced with the UsernameCaseMapped profile, and the resourcepart with the
// OpaqueString profile.
func New(localpart, domainpart, resourcepart string) (*JID, error) {
	if !utf8.ValidString(localpart) || !utf8.ValidString(resourcepart) {
		return nil, ErrInvalidUTF8
	}

	var err error
	domainpart, err = idna.ToUnicode(domainpart)
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(domainpart) {
		return nil, ErrInvalidUTF8
	}

	var lenlocal int
	data := make([]byte, 0, len(localpart)+len(domainpart)+len(resourcepart))
	if localpart != "" {
		data, err = precis.UsernameCaseMapped.Append(data, []byte(localpart))
		if err != nil {
			return nil, err
		}
		lenlocal = len(data)
	}
	data = append(data, domainpart...)
	if resourcepart != "" {
		data, err = precis.OpaqueString.Append(data, []byte(resourcepart))
		if err != nil {
			return nil, err
		}
	}

	if err := check(data[:lenlocal], domainpart, data[lenlocal+len(domainpart):]); err != nil {
		return nil, err
	}
	return &JID{
		locallen:  lenlocal,
		domainlen: len(domainpart),
		data:      data,
	}, nil
}

// Bare returns a copy of the JID without a resourcepart.
func (j *JID) Bare() *JID {
	if j == nil {
		return nil
	}
	return &JID{
		locallen:  j.locallen,
		domainlen: j.domainlen,
		data:      j.data[:j.domainlen+j.locallen],
	}
}

// Localpart gets the localpart of a JID (eg "username").
func (j *JID) Localpart() string {
	if j == nil {
		return ""
	}
	return string(j.data[:j.locallen])
}

// Domainpart gets the domainpart of a JID (eg. "example.net").
func (j *JID) Domainpart() string {
	if j == nil {
		return ""
	}
	return string(j.data[j.locallen : j.locallen+j.domainlen])
}

// Resourcepart gets the resourcepart of a JID.
func (j *JID) Resourcepart() string {
	if j == nil {
		return ""
	}
	return string(j.data[j.locallen+j.domainlen:])
}

// Address returns the structured form of j.
func (j *JID) Address() Address {
	return Address{
		User:     j.Localpart(),
		Domain:   j.Domainpart(),
		Resource: j.Resourcepart(),
	}
}

// String converts a JID to its string representation.
func (j *JID) String() string {
	if j == nil {
		return ""
	}
	return j.Address().String()
}

// Equal performs an octet-for-octet comparison with the given JID.
func (j *JID) Equal(j2 *JID) bool {
	if j == nil || j2 == nil {
		return j == j2
	}
	return j.locallen == j2.locallen && j.domainlen == j2.domainlen &&
		bytes.Equal(j.data, j2.data)
}

// MarshalXMLAttr satisfies the xml.MarshalerAttr interface and marshals the JID
// as an XML attribute.
func (j *JID) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if j == nil {
		return xml.Attr{}, nil
	}
	return xml.Attr{Name: name, Value: j.String()}, nil
}

// UnmarshalXMLAttr satisfies the xml.UnmarshalerAttr interface and unmarshals
// an XML attribute into a valid JID (or returns an error).
func (j *JID) UnmarshalXMLAttr(attr xml.Attr) error {
	if attr.Value == "" {
		return nil
	}
	parsed, err := Parse(attr.Value)
	if err != nil {
		return err
	}
	*j = *parsed
	return nil
}

// SplitString splits out the localpart, domainpart, and resourcepart from a
// string representation of a JID.
// The separators are matched before any transformation is applied (RFC 7622
// §3.1), so the parts are not guaranteed to be valid.
// A trailing label separator on the domainpart is stripped.
func SplitString(s string) (localpart, domainpart, resourcepart string, err error) {
	if sep := strings.IndexByte(s, '/'); sep != -1 {
		if sep == len(s)-1 {
			return "", "", "", ErrEmptyResourcepart
		}
		resourcepart = s[sep+1:]
		s = s[:sep]
	}

	switch sep := strings.IndexByte(s, '@'); sep {
	case -1:
		domainpart = s
	case 0:
		return "", "", "", ErrEmptyLocalpart
	default:
		localpart = s[:sep]
		domainpart = s[sep+1:]
	}

	return localpart, strings.TrimSuffix(domainpart, "."), resourcepart, nil
}

func check(localpart []byte, domainpart string, resourcepart []byte) error {
	if len(localpart) > 1023 {
		return ErrLongLocalpart
	}
	// RFC 7622 §3.3.1 characters that the UsernameCaseMapped profile allows but
	// localparts must not contain.
	if bytes.ContainsAny(localpart, `"&'/:<>@`) {
		return ErrForbiddenLocal
	}
	if len(resourcepart) > 1023 {
		return ErrLongResourcepart
	}
	if l := len(domainpart); l < 1 || l > 1023 {
		return ErrDomainLength
	}
	if l := len(domainpart); l > 2 && domainpart[0] == '[' && domainpart[l-1] == ']' {
		if ip := net.ParseIP(domainpart[1 : l-1]); ip == nil || ip.To4() != nil {
			return ErrBadIPv6
		}
	}
	return nil
}
