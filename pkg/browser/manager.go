package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Manager owns the Playwright lifecycle and the assistant's browser
// session. Unlike a general automation harness, the assistant drives a
// single session whose pages are the user's tabs.
type Manager struct {
	mu          sync.Mutex
	pw          *playwright.Playwright
	session     *Session
	initialized bool
}

// NewManager creates an uninitialized manager. Call Initialize before
// starting a session.
func NewManager() *Manager {
	return &Manager{}
}

// Initialize installs (if needed) and starts the Playwright driver.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Discard driver output so it does not interfere with the TUI.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.pw = pw
	m.initialized = true
	return nil
}

// StartSession launches the browser and opens the session's first tab.
func (m *Manager) StartSession(opts SessionOptions) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil, fmt.Errorf("browser manager not initialized")
	}
	if m.session != nil {
		return nil, fmt.Errorf("session already started")
	}

	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.StartURL == "" {
		opts.StartURL = DefaultStartURL
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	}
	b, err := m.pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	}
	context, err := b.NewContext(contextOpts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	context.SetDefaultTimeout(opts.Timeout)

	session, err := newSession(b, context, opts)
	if err != nil {
		context.Close()
		b.Close()
		return nil, err
	}

	m.session = session
	return session, nil
}

// Session returns the active session.
func (m *Manager) Session() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, fmt.Errorf("no active session")
	}
	return m.session, nil
}

// Close shuts down the session and the Playwright driver.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	if m.session != nil {
		if err := m.session.close(); err != nil {
			firstErr = err
		}
		m.session = nil
	}
	if m.pw != nil {
		if err := m.pw.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.pw = nil
	}
	m.initialized = false
	return firstErr
}
