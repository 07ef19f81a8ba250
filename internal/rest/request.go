package rest

import (
	"net/url"
	"strings"
)

// Header is one (name, value) pair. Duplicates are allowed and insertion
// order is preserved on the wire.
type Header struct {
	Name  string
	Value string
}

// Param is one (name, value) query parameter pair.
type Param struct {
	Name  string
	Value string
}

// Request captures everything needed for a single call. Immutable once
// constructed; requests are never reused.
type Request struct {
	URL     string
	Body    string
	Headers []Header
	Params  []Param
}

const contentTypeJSON = "application/json"

// defaultHeaders injects a JSON content type unless one is already present,
// matching case-insensitively. Explicit content types are never duplicated or
// overridden.
func defaultHeaders(headers []Header) []Header {
	for _, h := range headers {
		if strings.EqualFold(h.Name, "content-type") {
			return headers
		}
	}
	out := make([]Header, 0, len(headers)+1)
	out = append(out, headers...)
	return append(out, Header{Name: "Content-Type", Value: contentTypeJSON})
}

// queryString joins params as key=value pairs with &, preserving order and
// performing no escaping.
func queryString(params []Param) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// joinQuery appends params to a raw URL string.
func joinQuery(rawURL string, params []Param) string {
	if len(params) == 0 {
		return rawURL
	}
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + queryString(params)
}

// buildURL assembles the target through net/url. It must produce the same
// string joinQuery produces for the same input.
func buildURL(rawURL string, params []Param) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	query := queryString(params)
	if parsed.RawQuery != "" {
		parsed.RawQuery += "&" + query
	} else {
		parsed.RawQuery = query
	}
	return parsed.String(), nil
}
