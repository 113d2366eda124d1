package script

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// MetaID is the id carried by the metadata record at the head of a script.
const MetaID = "_meta"

// DefaultHomebrewPrefix marks a string element as a homebrew reference.
const DefaultHomebrewPrefix = "bgw-"

// Kind classifies a script element.
type Kind int

const (
	KindMeta Kind = iota
	KindCharacter
	KindReference
	KindBuiltin
)

func (k Kind) String() string {
	switch k {
	case KindMeta:
		return "meta"
	case KindCharacter:
		return "character"
	case KindReference:
		return "reference"
	case KindBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Element is one entry of a script array, kept as its raw JSON text.
type Element struct {
	Raw json.RawMessage
}

// Classify decides the element kind from its shape and the homebrew prefix.
func (e Element) Classify(prefix string) Kind {
	v := gjson.ParseBytes(e.Raw)
	if v.Type == gjson.String {
		if strings.HasPrefix(v.Str, prefix) {
			return KindReference
		}
		return KindBuiltin
	}
	if v.IsObject() {
		if id := v.Get("id"); id.Type == gjson.String && id.Str == MetaID {
			return KindMeta
		}
	}
	return KindCharacter
}

// String returns the element's string value, or "" if it is not a string.
func (e Element) String() string {
	v := gjson.ParseBytes(e.Raw)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// Character is a character record. ID is empty when the record is not an
// object with a string "id", in which case it can never match a reference.
type Character struct {
	ID  string
	Raw json.RawMessage
}

func newCharacter(raw json.RawMessage) Character {
	c := Character{Raw: raw}
	v := gjson.ParseBytes(raw)
	if v.IsObject() {
		if id := v.Get("id"); id.Type == gjson.String {
			c.ID = id.Str
		}
	}
	return c
}

// Meta holds the fields of a script's metadata record.
type Meta struct {
	Name   string
	Author string
}

// Script is an ordered list of elements. Elements[0] is the metadata record.
type Script struct {
	Source   string
	Elements []Element
}

// Meta reads name and author from the first element.
func (s Script) Meta() Meta {
	if len(s.Elements) == 0 {
		return Meta{}
	}
	v := gjson.ParseBytes(s.Elements[0].Raw)
	return Meta{
		Name:   v.Get("name").String(),
		Author: v.Get("author").String(),
	}
}

// JSON returns the script as compact JSON text, elements in order.
func (s Script) JSON() []byte {
	out := []byte{'['}
	for i, el := range s.Elements {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, pretty.Ugly(el.Raw)...)
	}
	return append(out, ']')
}
