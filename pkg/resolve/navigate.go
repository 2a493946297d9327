package resolve

import (
	"net/url"
	"regexp"
	"strings"
)

// SitePair maps a spoken keyword to a canonical base URL.
type SitePair struct {
	Keyword string
	URL     string
}

// defaultSites is an ordered list, not a map: the first keyword
// contained in the input wins, so more specific entries ("google
// drive") must precede their prefixes ("google").
var defaultSites = []SitePair{
	{"youtube", "https://www.youtube.com"},
	{"gmail", "https://mail.google.com"},
	{"google drive", "https://drive.google.com"},
	{"google maps", "https://maps.google.com"},
	{"google docs", "https://docs.google.com"},
	{"google", "https://www.google.com"},
	{"github", "https://github.com"},
	{"gitlab", "https://gitlab.com"},
	{"stack overflow", "https://stackoverflow.com"},
	{"stackoverflow", "https://stackoverflow.com"},
	{"hacker news", "https://news.ycombinator.com"},
	{"reddit", "https://www.reddit.com"},
	{"twitter", "https://twitter.com"},
	{"facebook", "https://www.facebook.com"},
	{"instagram", "https://www.instagram.com"},
	{"linkedin", "https://www.linkedin.com"},
	{"amazon", "https://www.amazon.com"},
	{"netflix", "https://www.netflix.com"},
	{"spotify", "https://open.spotify.com"},
	{"wikipedia", "https://www.wikipedia.org"},
	{"twitch", "https://www.twitch.tv"},
	{"slack", "https://slack.com"},
	{"discord", "https://discord.com"},
	{"notion", "https://www.notion.so"},
	{"figma", "https://www.figma.com"},
	{"chatgpt", "https://chat.openai.com"},
}

var (
	// domainPattern recognizes typed-out domains: word characters, a
	// dot, and a 2+ character label ("example.org", "news.ycombinator.com").
	domainPattern = regexp.MustCompile(`^\w+\.\w{2,}`)

	// tldPattern is the broader last-chance domain check for inputs
	// the stricter pattern rejects (hyphenated hosts, subdomains).
	tldPattern = regexp.MustCompile(`\.(com|org|net|io|ai|dev)$`)
)

// NavigationURL maps a spoken destination phrase to a concrete
// absolute URL. It never fails: anything that is not a URL, a domain,
// or a known site keyword becomes a search-engine query.
func (r *Resolver) NavigationURL(input string) string {
	in := strings.TrimSpace(input)

	// 1. Already an absolute http(s) URL: hand it back untouched.
	if u, err := url.Parse(in); err == nil && u.Host != "" &&
		(u.Scheme == "http" || u.Scheme == "https") {
		return in
	}

	// 2. Looks like a typed domain.
	if strings.HasPrefix(in, "www.") || domainPattern.MatchString(in) {
		return "https://" + in
	}

	// 3. Known site keyword, first containment wins in table order.
	lower := strings.ToLower(in)
	for _, site := range r.sites {
		if strings.Contains(lower, site.Keyword) {
			return site.URL
		}
	}

	// 4. Broader domain-suffix check. Whitespace disqualifies the
	// input from being a host at all.
	if !strings.ContainsAny(in, " \t") && tldPattern.MatchString(strings.ToLower(in)) {
		return "https://" + in
	}

	// 5. Universal fallback: search for it.
	return r.searchURL + url.QueryEscape(in)
}
