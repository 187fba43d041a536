package types

import "errors"

var (
	// ErrUnknownRecordType is returned when a record-type selector is neither "pa" nor "mda".
	ErrUnknownRecordType = errors.New("unknown record type")

	// ErrNotFound is returned when no record matches a company id.
	ErrNotFound = errors.New("record not found")
)
