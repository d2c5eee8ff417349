package types

import "errors"

var (
	// ErrSnapshotNotFound means no snapshot document could be located; the
	// operator must run the collection step before a report can be built.
	ErrSnapshotNotFound = errors.New("snapshot data file not found. Run 'finops-report --collect' first to collect the data")

	// ErrSnapshotMalformed means a document was found but could not be
	// parsed into the expected structure.
	ErrSnapshotMalformed = errors.New("snapshot data file is malformed")
)
