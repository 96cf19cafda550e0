package api

import "github.com/rogtrack/rog-api/internal/provider"

// Handler serves the receipt-tracking API.
type Handler struct {
	*provider.Container
}

// New creates the API handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
