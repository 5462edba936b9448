// Package watch provides change notification functionality for follow
// streams. It enables monitoring a key prefix for newly appearing records.
package watch

import "github.com/surgelove/aia-utilities/record"

// Event represents one newly observed record from a follow stream.
type Event struct {
	// Key is the key the record appeared under.
	Key []byte
	// Record is the decoded record.
	Record record.Record
}
