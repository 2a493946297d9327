package assistant

import (
	"fmt"
	"net/url"

	"github.com/gobwas/glob"
)

// PolicyViolation reports a navigation refused by the deny list.
type PolicyViolation struct {
	Host    string
	Pattern string
}

func (e *PolicyViolation) Error() string {
	return fmt.Sprintf("navigation to %s blocked by policy pattern %q", e.Host, e.Pattern)
}

// NavigationPolicy decides whether the assistant may load a URL.
// Deny patterns are hostname globs compiled with '.' as the separator,
// so "*.internal.corp" matches "wiki.internal.corp" but not
// "internal.corp" itself.
type NavigationPolicy struct {
	denied   []glob.Glob
	patterns []string
}

// NewNavigationPolicy compiles the deny patterns. An empty pattern
// list allows everything.
func NewNavigationPolicy(patterns []string) (*NavigationPolicy, error) {
	p := &NavigationPolicy{patterns: patterns}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid deny pattern %q: %w", pattern, err)
		}
		p.denied = append(p.denied, g)
	}
	return p, nil
}

// Check returns a *PolicyViolation when the URL's hostname matches a
// denied pattern. URLs without a parseable hostname pass; the deny
// list is about destinations, not about input hygiene.
func (p *NavigationPolicy) Check(rawURL string) error {
	if p == nil || len(p.denied) == 0 {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return nil
	}

	host := u.Hostname()
	for i, g := range p.denied {
		if g.Match(host) {
			return &PolicyViolation{Host: host, Pattern: p.patterns[i]}
		}
	}
	return nil
}
