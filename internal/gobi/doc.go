// Package gobi talks to a GoBI report server and plays the part of the page
// replacement library on the client side.
//
// # Architecture
//
//   - client.go: HTTP client for full report pages and table partials
//   - swap.go: Swapper, which queues fetch requests, swaps returned markup
//     into the live document and notifies listeners
//
// # Client Usage
//
//	client, err := gobi.NewClient("127.0.0.1:8080")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	// Full page, as on first load or reload
//	page, err := client.FetchPage(ctx, "/report?id=3")
//
//	// Table partial, as requested after a sort change
//	table, err := client.FetchFragment(ctx, "/report?id=3&sort=name:ASC", "results-table-container")
//
// Partial requests carry the HX-Request and HX-Target headers. A server
// honouring them answers with the table markup only.
//
// # Swap Lifecycle
//
// Swapper.Request never blocks. It records the request and returns; the UI
// drains pending requests, runs the fetch off the event loop with Fetch, and
// hands the Response back to Swap on the loop. Each target keeps the sequence
// number of its newest request, and Swap drops responses to older ones so a
// slow response can never overwrite a newer table.
//
// Listeners registered with On are keyed by name. Registering a name twice
// replaces the earlier listener, so rebinding after every swap never fires a
// handler more than once.
package gobi
