package scheme

import (
	"fmt"
	"net/url"
	"strings"
)

// Request is the parsed form of a dispatched URL. It is built once per
// dispatch and never mutated afterwards.
type Request struct {
	// Scheme is the URL scheme, e.g. "app".
	Scheme string

	// Authority names the handler that owns the request.
	Authority string

	// Path is the part of the URL below the authority, e.g. "/data".
	Path string

	query url.Values
}

// QueryValue returns the value of a query parameter. When a key repeats,
// the first occurrence wins.
func (r *Request) QueryValue(key string) string {
	return r.query.Get(key)
}

// HasQuery reports whether the query string carries the given key at all.
func (r *Request) HasQuery(key string) bool {
	_, ok := r.query[key]
	return ok
}

// URL reconstructs the canonical display form of the request.
func (r *Request) URL() string {
	u := url.URL{
		Scheme:   r.Scheme,
		Host:     r.Authority,
		Path:     r.Path,
		RawQuery: r.query.Encode(),
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// Canonicalize parses raw into a Request, detecting the "scheme:name"
// shorthand on the way.
//
// A URL like "app:help" is split by the parser as scheme plus path, not
// scheme plus host. When the path would form a valid authority, a
// *RedirectError carrying the canonical "app://help/" form is returned and
// the caller must re-dispatch on it. The rewrite is deterministic and the
// canonical form never triggers it again, so a single hop always suffices.
// When the path is not authority-shaped the original split stands and
// lookup later fails with NotFound.
func Canonicalize(raw string) (*Request, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", raw, err)
	}

	path := u.Path
	if u.Opaque != "" {
		path = u.Opaque
	}

	if path != "" && u.Host == "" {
		if host := authorityFromPath(path); host != "" {
			canonical := url.URL{Scheme: u.Scheme, Host: host, Path: "/"}
			return nil, &RedirectError{URL: canonical.String()}
		}
	}

	return &Request{
		Scheme:    u.Scheme,
		Authority: u.Host,
		Path:      u.Path,
		query:     u.Query(),
	}, nil
}

// authorityFromPath turns the first path segment into a host name, or ""
// when the segment cannot be one.
func authorityFromPath(path string) string {
	segment := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}

	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return ""
	}

	host := strings.ToLower(decoded)
	if !validHost(host) {
		return ""
	}
	return host
}

func validHost(host string) bool {
	if host == "" {
		return false
	}
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}
