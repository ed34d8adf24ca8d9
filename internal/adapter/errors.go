package adapter

import "errors"

// Errors returned by notifiers. Mail API responses are classified into the
// status-based sentinels by mapMailAPIError.
var (
	ErrEmptyRecipient = errors.New("mail has no recipient")

	ErrMailRejected = errors.New("mail API rejected the mail")
	ErrUnauthorized = errors.New("mail API rejected the credentials")
	ErrNotFound     = errors.New("mail API endpoint not found")
	ErrRateLimited  = errors.New("mail API rate limit exceeded")
	ErrUnavailable  = errors.New("mail API unavailable")
)
