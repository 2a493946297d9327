// Package browser drives the assistant's Chromium instance through
// Playwright.
//
// A Manager owns the Playwright lifecycle and a single Session. The
// Session's pages are the user's tabs: it can snapshot them as
// resolve.Tab values, bring one to the front, load a URL in the active
// tab, or open a new one. The resolver never sees this package; the
// dispatcher feeds it snapshots and performs the returned effects here.
package browser
