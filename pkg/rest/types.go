// Package rest holds the JSON envelopes of the public API.
package rest

// Listing is the envelope of the provider map: the filtered page together
// with the facet values of the whole snapshot.
type Listing[T, F any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
	Filters F      `json:"filters"`
}

// Collection is the envelope of list endpoints without facets.
type Collection[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
}

// Item is the envelope of single resource endpoints.
type Item[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// Error is the failure envelope of every endpoint.
type Error struct {
	Success bool `json:"success"`

	// Message is shown to the user.
	Message string `json:"message"`

	// Error is "Server error" unless debug is on.
	Error string `json:"error"`
}
