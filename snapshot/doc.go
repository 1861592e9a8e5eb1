// Package snapshot keeps a commit history of catalog states in an
// in-memory git repository.
//
// Capture serializes the whole catalog into a git tree and commits it;
// Restore rebuilds a fresh catalog from any commit in the history. The
// repository lives entirely in process memory, so the history is an
// audit and undo mechanism, not durable storage.
//
// # Layout
//
// Each snapshot commit holds one tree:
//
//	<database>.database          database marker
//	<database>/<table>.table     schema and index definitions
//	<database>/<table>/rows      all rows, insertion order
//
// Rows keep their RowIDs through a capture/restore round trip.
package snapshot
