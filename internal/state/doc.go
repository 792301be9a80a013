// Package state provides thread-safe state shared between the background
// poller and the UI.
//
// # Overview
//
// The report server can re-render the results table at any time, for example
// when new rows arrive. The poller refetches the table partial on a timer and
// records it here; the UI picks up new versions and swaps them into its
// document, which triggers the same synchronization pass as a user-initiated
// swap.
//
//	Producer (Poller):               Consumer (UI):
//	┌──────────────────┐            ┌──────────────────┐
//	│ store.Source()   │            │                  │
//	│ FetchFragment()  │            │                  │
//	│ store.Update()   │───────────→│ store.Snapshot() │
//	│ repeat...        │  (mutex)   │ swap if Version  │
//	└──────────────────┘            │ changed          │
//	                                └──────────────────┘
//
// # Source Binding
//
// The UI calls SetSource whenever it asks for a different table, such as after
// a sort change. Update ignores results for any other source, so a poll that
// was in flight during the change can never put an unsorted table back.
//
// # Update Semantics
//
//	store.Update(src, markup, nil)
//	→ Markup replaced, Version bumped if the markup differs
//	→ LastError cleared, ConsecutiveFailures reset
//
//	store.Update(src, "", err)
//	→ Markup kept
//	→ LastError = err, ConsecutiveFailures++
//
// IsOffline reports true after two consecutive failures.
//
// Snapshot returns a value copy; the error is wrapped so callers never share
// the stored instance.
package state
