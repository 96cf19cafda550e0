package service

import "errors"

// Business errors. Handlers map these to response codes with errors.Is, so
// every violated precondition gets its own sentinel.
var (
	// Auth.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")

	// Documents.
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document already exists")

	// Status transitions.
	ErrDocumentNotEligible  = errors.New("document is not eligible for this transition")
	ErrSubInventoryNotFound = errors.New("subinventory does not exist for this suppadd")
	ErrLocatorNotFound      = errors.New("locator does not exist for this subinventory")
	ErrReceivedQtyInvalid   = errors.New("received quantity must be at least 1")
	ErrReceivedByRequired   = errors.New("received by is required")
	ErrSuppAddMissing       = errors.New("document has no suppadd assigned")
	ErrEmptyBatch           = errors.New("request batch is empty")
)
