// Package eol defines the records returned by the endoflife.date API and the
// decoding rules applied at the fetch boundary.
//
// Decoding is lenient: fields that are missing, null or of an
// unexpected JSON type are treated as absent and fall back to documented
// defaults. Only a body that is not a JSON object (optionally wrapped in a
// top-level "result" envelope) is rejected.
package eol

import (
	"bytes"
	"encoding/json"
	"time"
)

// Release holds the release-level data for a single product cycle.
//
// String fields are empty when the API omitted them. Boolean flags are nil
// when absent; use the accessor methods to read them with their defaults.
type Release struct {
	Name        string
	Label       string
	ReleaseDate string
	Latest      string
	EOLFrom     string

	IsLTS          *bool
	IsEOL          *bool
	IsDiscontinued *bool
	IsMaintained   *bool

	// Custom is the raw "custom" value. Only its first entry is surfaced.
	Custom Custom
}

// LTS reports whether the release has long-term support. Defaults to false.
func (r Release) LTS() bool { return boolOr(r.IsLTS, false) }

// EOL reports whether the release has reached end of life. Defaults to false.
func (r Release) EOL() bool { return boolOr(r.IsEOL, false) }

// Discontinued reports whether the release is discontinued. Defaults to false.
func (r Release) Discontinued() bool { return boolOr(r.IsDiscontinued, false) }

// Maintained reports whether the release is still maintained. Defaults to true.
func (r Release) Maintained() bool { return boolOr(r.IsMaintained, true) }

// UnmarshalJSON implements json.Unmarshaler.
//
// "latest" may be a plain string or a {"name": ...} object.
func (r *Release) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Release{
		Name:           looseString(raw["name"]),
		Label:          looseString(raw["label"]),
		ReleaseDate:    looseString(raw["releaseDate"]),
		Latest:         latestName(raw["latest"]),
		EOLFrom:        looseString(raw["eolFrom"]),
		IsLTS:          looseBool(raw["isLts"]),
		IsEOL:          looseBool(raw["isEol"]),
		IsDiscontinued: looseBool(raw["isDiscontinued"]),
		IsMaintained:   looseBool(raw["isMaintained"]),
	}
	if c, ok := raw["custom"]; ok {
		r.Custom = Custom(bytes.Clone(c))
	}
	return nil
}

// Links holds the product-level links.
type Links struct {
	HTML          string
	Icon          string
	ReleasePolicy string
}

// Product holds the product-level data shared by all releases.
type Product struct {
	Name  string
	Label string
	Links Links
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Product{
		Name:  looseString(raw["name"]),
		Label: looseString(raw["label"]),
	}

	var links map[string]json.RawMessage
	if err := json.Unmarshal(raw["links"], &links); err == nil {
		p.Links = Links{
			HTML:          looseString(links["html"]),
			Icon:          looseString(links["icon"]),
			ReleasePolicy: looseString(links["releasePolicy"]),
		}
	}
	return nil
}

// Snapshot is one complete, successful fetch: both records plus the time
// they were retrieved. A Snapshot is never partially populated.
type Snapshot struct {
	Release   Release
	Product   Product
	FetchedAt time.Time
}

// Custom is the raw JSON of a release's "custom" field.
type Custom json.RawMessage

// First returns the first value of the custom mapping in document order.
//
// ok is false when the value is absent, not an object, or empty. String
// values are returned verbatim, null as "", anything else as compact JSON.
func (c Custom) First() (value string, ok bool) {
	dec := json.NewDecoder(bytes.NewReader(c))

	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	if d, isDelim := tok.(json.Delim); !isDelim || d != '{' {
		return "", false
	}
	if !dec.More() {
		return "", false
	}
	if _, err := dec.Token(); err != nil { // key
		return "", false
	}

	var v json.RawMessage
	if err := dec.Decode(&v); err != nil {
		return "", false
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, true
	}
	if bytes.Equal(v, []byte("null")) {
		return "", true
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return "", false
	}
	return buf.String(), true
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// looseString returns the string value of raw, or "" when raw is absent or
// not a JSON string.
func looseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// looseBool returns a pointer to the boolean value of raw, or nil when raw is
// absent or not a JSON boolean.
func looseBool(raw json.RawMessage) *bool {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil
	}
	return &b
}

// latestName accepts both "latest": "1.2.3" and "latest": {"name": "1.2.3"}.
func latestName(raw json.RawMessage) string {
	if s := looseString(raw); s != "" {
		return s
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	return looseString(obj["name"])
}
