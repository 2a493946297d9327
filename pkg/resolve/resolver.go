package resolve

// DefaultThreshold is the minimum score a tab must reach to be
// considered a match. Below it the resolver reports ErrNoMatch and the
// caller is expected to announce failure instead of guessing.
const DefaultThreshold = 30

// DefaultSearchURL is the search-engine fallback for navigation input
// that resolves to nothing more specific. The query is appended
// URL-encoded.
const DefaultSearchURL = "https://www.google.com/search?q="

// Resolver resolves spoken queries against open tabs and navigation
// destinations. It is read-only after construction and safe for
// concurrent use.
type Resolver struct {
	threshold float64
	sites     []SitePair
	searchURL string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold sets the minimum tab-selection score. Default: 30.
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// WithSites prepends extra keyword/URL entries to the site table.
// Prepended entries win over the built-in ones because the first
// keyword contained in the input is taken.
func WithSites(extra ...SitePair) Option {
	return func(r *Resolver) {
		r.sites = append(append([]SitePair{}, extra...), r.sites...)
	}
}

// WithSearchURL sets the search-engine base used as the universal
// navigation fallback.
func WithSearchURL(base string) Option {
	return func(r *Resolver) {
		r.searchURL = base
	}
}

// New creates a Resolver with the built-in site table and defaults.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		threshold: DefaultThreshold,
		sites:     defaultSites,
		searchURL: DefaultSearchURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
