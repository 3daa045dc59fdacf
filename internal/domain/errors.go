package domain

import "errors"

var (
	// ErrMalformedEvent indicates the webhook payload matches neither known shape
	// or lacks the record identifier its event type requires.
	ErrMalformedEvent = errors.New("malformed webhook event")

	// ErrMalformedRecord indicates a fetched record is missing a required field.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidRecordID indicates a record identifier is empty.
	ErrInvalidRecordID = errors.New("invalid record id")

	// ErrInvalidNumber indicates a numeric field value could not be coerced to a number.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrUpstream indicates the kintone API was unreachable or answered with a non-2xx status.
	ErrUpstream = errors.New("upstream request failed")
)
