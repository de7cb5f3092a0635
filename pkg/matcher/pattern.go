package matcher

import (
	"net/url"
	"strings"
)

type kind int

const (
	// kindDomain matches the domain itself and any subdomain. Both the bare
	// form (example.com) and the wildcard form (*.example.com) compile to it.
	kindDomain kind = iota
	// kindLabel matches a host containing the label followed by at least one
	// more label (google. matches www.google.co.uk but not googleads.com).
	kindLabel
)

// Pattern is a compiled domain pattern.
type Pattern struct {
	raw  string
	kind kind
	host string
	path string
}

// Compile parses a domain pattern. Accepted forms:
//
//	example.com          example.com and *.example.com hosts
//	*.example.com        same as above
//	.example             any host under the .example suffix (TLD lists)
//	brand.               any host with a "brand" label that is not the last one
//	*.example.com/tr/    host match plus a path prefix
//
// The second return value is false for empty or unusable patterns.
func Compile(raw string) (Pattern, bool) {
	p := strings.ToLower(strings.TrimSpace(raw))
	if p == "" {
		return Pattern{}, false
	}
	if i := strings.Index(p, "://"); i >= 0 {
		p = p[i+3:]
	}
	var pat Pattern
	if i := strings.IndexByte(p, '/'); i >= 0 {
		pat.path = p[i:]
		p = p[:i]
	}
	p = strings.TrimPrefix(p, "*")
	switch {
	case strings.HasSuffix(p, ".") && !strings.HasPrefix(p, "."):
		pat.kind = kindLabel
		pat.host = strings.TrimSuffix(p, ".")
	default:
		pat.kind = kindDomain
		pat.host = strings.Trim(p, ".")
	}
	if pat.host == "" || strings.ContainsAny(pat.host, " *") {
		return Pattern{}, false
	}
	pat.raw = pat.host
	if pat.kind == kindLabel {
		pat.raw += "."
	}
	pat.raw += pat.path
	return pat, true
}

func (p Pattern) String() string {
	return p.raw
}

// HasPath reports whether the pattern also constrains the URL path.
func (p Pattern) HasPath() bool {
	return p.path != ""
}

// MatchHost matches a normalized hostname, ignoring any path constraint.
func (p Pattern) MatchHost(host string) bool {
	if host == "" {
		return false
	}
	switch p.kind {
	case kindLabel:
		prefix := p.host + "."
		return strings.HasPrefix(host, prefix) || strings.Contains(host, "."+prefix)
	default:
		return host == p.host || strings.HasSuffix(host, "."+p.host)
	}
}

// Match matches a normalized hostname and path.
func (p Pattern) Match(host, path string) bool {
	if !p.MatchHost(host) {
		return false
	}
	if p.path == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(path), p.path)
}

// Matches reports whether hostname matches pattern. Inputs that cannot be
// interpreted as a hostname never match.
func Matches(hostname, pattern string) bool {
	host, ok := NormalizeHost(hostname)
	if !ok {
		return false
	}
	p, ok := Compile(pattern)
	if !ok {
		return false
	}
	return p.MatchHost(host)
}

// NormalizeHost lowercases a hostname and strips port and trailing dot.
func NormalizeHost(hostname string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(hostname))
	if h == "" || strings.ContainsAny(h, " /?#@") {
		return "", false
	}
	if strings.HasPrefix(h, "[") {
		end := strings.IndexByte(h, ']')
		if end < 0 {
			return "", false
		}
		return h[1:end], true
	}
	if i := strings.LastIndexByte(h, ':'); i >= 0 {
		h = h[:i]
	}
	h = strings.TrimSuffix(h, ".")
	if h == "" {
		return "", false
	}
	return h, true
}

// ParseURL parses an absolute URL. It returns false when the input has no
// scheme or no host.
func ParseURL(raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return nil, false
	}
	host, ok := NormalizeHost(u.Hostname())
	if !ok {
		return nil, false
	}
	u.Host = host
	if port := u.Port(); port != "" {
		u.Host = host + ":" + port
	}
	return u, true
}
