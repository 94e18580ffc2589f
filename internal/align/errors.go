package align

import "fmt"

// CoordError reports hit coordinates that cannot be reconciled into a
// full-length alignment.
type CoordError struct {
	// QueryID and SubjectID name the offending hit
	QueryID   string
	SubjectID string

	// Reason describes the inconsistency
	Reason string
}

func (e *CoordError) Error() string {
	return fmt.Sprintf("inconsistent hit coordinates for %s vs %s: %s", e.QueryID, e.SubjectID, e.Reason)
}

func newCoordError(queryID, subjectID, reason string) *CoordError {
	return &CoordError{QueryID: queryID, SubjectID: subjectID, Reason: reason}
}

// MissingSeqError reports a sequence id whose full sequence could not be
// found or fetched during hit extension.
type MissingSeqError struct {
	// ID is the sequence id that was looked up
	ID string

	// Err is the underlying lookup failure, if any
	Err error
}

func (e *MissingSeqError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to find sequence %s: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("failed to find sequence %s", e.ID)
}

func (e *MissingSeqError) Unwrap() error {
	return e.Err
}
