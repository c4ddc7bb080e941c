package eol

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// errNotObject is returned when a body is not a JSON object.
var errNotObject = errors.New("body is not a JSON object")

// DecodeRelease decodes a release body, accepting either a bare object or a
// {"result": {...}} envelope.
func DecodeRelease(body []byte) (Release, error) {
	obj, err := unwrapEnvelope(body)
	if err != nil {
		return Release{}, err
	}
	var r Release
	if err := json.Unmarshal(obj, &r); err != nil {
		return Release{}, fmt.Errorf("failed to decode release: %w", err)
	}
	return r, nil
}

// DecodeProduct decodes a product body, accepting either a bare object or a
// {"result": {...}} envelope.
func DecodeProduct(body []byte) (Product, error) {
	obj, err := unwrapEnvelope(body)
	if err != nil {
		return Product{}, err
	}
	var p Product
	if err := json.Unmarshal(obj, &p); err != nil {
		return Product{}, fmt.Errorf("failed to decode product: %w", err)
	}
	return p, nil
}

// unwrapEnvelope returns the object under a top-level "result" key, or the
// body itself when there is no such key.
func unwrapEnvelope(body []byte) (json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if top == nil {
		return nil, errNotObject
	}

	inner, ok := top["result"]
	if !ok {
		return body, nil
	}

	var check map[string]json.RawMessage
	if err := json.Unmarshal(inner, &check); err != nil || check == nil {
		return nil, fmt.Errorf("result envelope: %w", errNotObject)
	}
	return inner, nil
}

// ProductURI derives the product resource from a release resource by
// dropping the last two path segments, e.g.
//
//	https://endoflife.date/api/v1/products/ubuntu/releases/22.04
//	-> https://endoflife.date/api/v1/products/ubuntu
//
// Trailing slashes are ignored. Query and fragment are dropped.
func ProductURI(releaseURI string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(releaseURI))
	if err != nil {
		return "", fmt.Errorf("invalid identifier %q: %w", releaseURI, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("identifier %q must be an absolute URI", releaseURI)
	}

	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return "", fmt.Errorf("identifier %q has no path segments", releaseURI)
	}
	segments := strings.Split(trimmed, "/")
	if len(segments) < 2 {
		return "", fmt.Errorf("identifier %q needs at least two path segments", releaseURI)
	}

	u.Path = "/" + strings.Join(segments[:len(segments)-2], "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/"), nil
}
