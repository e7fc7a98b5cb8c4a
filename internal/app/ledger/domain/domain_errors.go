package domain

import "errors"

// Domain errors as sentinel values
var (
	// Event errors
	ErrInvalidResourceType = errors.New("resource type must be PAYMENT or REFUND")
	ErrMissingExternalID   = errors.New("resource external id cannot be empty")
	ErrMissingEventType    = errors.New("event type cannot be empty")
	ErrMissingEventDate    = errors.New("event date cannot be zero")
	ErrMalformedPayload    = errors.New("event payload must be a JSON object")

	// Digest errors
	ErrEmptyEventList = errors.New("cannot build a digest from an empty event list")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnknownState        = errors.New("unknown transaction state")

	// Policy errors
	ErrInvalidPolicy = errors.New("invalid metadata policy")
)
