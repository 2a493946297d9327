package browser

// SessionOptions configures the assistant's browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window.
	// The assistant defaults to headed so the user can see tabs move.
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// StartURL is loaded in the first tab once the session is up
	StartURL string

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// Default values for session and navigation behavior
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultStartURL       = "https://www.google.com"
	DefaultWaitUntil      = "load"
)

// validWaitUntil reports whether s is a navigation wait state
// Playwright accepts.
func validWaitUntil(s string) bool {
	switch s {
	case "load", "domcontentloaded", "networkidle":
		return true
	}
	return false
}
