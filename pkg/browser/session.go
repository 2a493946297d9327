package browser

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/voxpilot/voxpilot/pkg/resolve"
)

// Session wraps a browser context whose pages are the assistant's
// tabs. Tab IDs are page indexes within the context at snapshot time;
// a snapshot and the activation that follows it belong to the same
// voice command, so churn in between is not a practical concern.
type Session struct {
	mu       sync.Mutex
	browser  playwright.Browser
	context  playwright.BrowserContext
	windowID string
	active   int

	Headless   bool
	CreatedAt  time.Time
	LastUsedAt time.Time
}

func newSession(b playwright.Browser, context playwright.BrowserContext, opts SessionOptions) (*Session, error) {
	page, err := context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if _, err := page.Goto(opts.StartURL); err != nil {
		return nil, fmt.Errorf("failed to load start page: %w", err)
	}

	now := time.Now()
	return &Session{
		browser:    b,
		context:    context,
		windowID:   uuid.New().String()[:8],
		Headless:   opts.Headless,
		CreatedAt:  now,
		LastUsedAt: now,
	}, nil
}

// Tabs returns a snapshot of all open tabs. The snapshot is taken once
// per resolution; tabs opened or closed afterwards are not observed.
func (s *Session) Tabs() ([]resolve.Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	pages := s.context.Pages()
	tabs := make([]resolve.Tab, 0, len(pages))
	for i, page := range pages {
		title, err := page.Title()
		if err != nil {
			title = ""
		}
		tabs = append(tabs, resolve.Tab{
			ID:       strconv.Itoa(i),
			Title:    title,
			URL:      page.URL(),
			WindowID: s.windowID,
		})
	}
	return tabs, nil
}

// ActivateTab brings the tab with the given snapshot ID to the front.
func (s *Session) ActivateTab(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	page, idx, err := s.pageByID(id)
	if err != nil {
		return err
	}

	if err := page.BringToFront(); err != nil {
		return fmt.Errorf("failed to activate tab %s: %w", id, err)
	}
	s.active = idx
	return nil
}

// NavigateActive loads url in the currently active tab.
func (s *Session) NavigateActive(rawURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	pages := s.context.Pages()
	if len(pages) == 0 {
		return fmt.Errorf("no open tabs")
	}
	if s.active >= len(pages) {
		s.active = len(pages) - 1
	}

	return gotoURL(pages[s.active], rawURL, NavigateOptions{WaitUntil: DefaultWaitUntil})
}

// NavigateTab loads url in the tab with the given snapshot ID.
func (s *Session) NavigateTab(id, rawURL string, opts NavigateOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	page, idx, err := s.pageByID(id)
	if err != nil {
		return err
	}

	if err := gotoURL(page, rawURL, opts); err != nil {
		return err
	}
	s.active = idx
	return nil
}

// OpenTab opens a new tab on url and makes it active.
func (s *Session) OpenTab(rawURL string) (resolve.Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	page, err := s.context.NewPage()
	if err != nil {
		return resolve.Tab{}, fmt.Errorf("failed to open tab: %w", err)
	}

	if err := gotoURL(page, rawURL, NavigateOptions{WaitUntil: DefaultWaitUntil}); err != nil {
		page.Close()
		return resolve.Tab{}, err
	}

	pages := s.context.Pages()
	s.active = len(pages) - 1

	title, err := page.Title()
	if err != nil {
		title = ""
	}
	return resolve.Tab{
		ID:       strconv.Itoa(s.active),
		Title:    title,
		URL:      page.URL(),
		WindowID: s.windowID,
	}, nil
}

// WindowID identifies the session's window in tab snapshots.
func (s *Session) WindowID() string {
	return s.windowID
}

func (s *Session) pageByID(id string) (playwright.Page, int, error) {
	idx, err := strconv.Atoi(id)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid tab id %q: %w", id, err)
	}

	pages := s.context.Pages()
	if idx < 0 || idx >= len(pages) {
		return nil, 0, fmt.Errorf("tab %s no longer exists", id)
	}
	return pages[idx], idx, nil
}

func gotoURL(page playwright.Page, rawURL string, opts NavigateOptions) error {
	if opts.WaitUntil == "" {
		opts.WaitUntil = DefaultWaitUntil
	}
	if !validWaitUntil(opts.WaitUntil) {
		return fmt.Errorf("invalid wait_until value: %s", opts.WaitUntil)
	}

	gotoOpts := playwright.PageGotoOptions{}
	waitUntil := playwright.WaitUntilState(opts.WaitUntil)
	gotoOpts.WaitUntil = &waitUntil
	if opts.Timeout > 0 {
		gotoOpts.Timeout = &opts.Timeout
	}

	if _, err := page.Goto(rawURL, gotoOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (s *Session) touch() {
	s.LastUsedAt = time.Now()
}

func (s *Session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.context.Close(); err != nil {
		return fmt.Errorf("failed to close context: %w", err)
	}
	if err := s.browser.Close(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}
