// Package resolve turns transcribed voice input into concrete browser
// targets: an open tab to focus, or an absolute URL to load.
//
// The package is pure decision logic. It never touches the browser;
// callers enumerate tabs, hand the snapshot to a Resolver, and perform
// the activation or navigation effect themselves using the returned
// identifiers. Every call is stateless and idempotent given identical
// inputs and an identical tab list.
//
// Tab selection can fail (ErrNoMatch) when nothing scores above the
// threshold; URL resolution is total and degrades to a search-engine
// query rather than failing.
package resolve
