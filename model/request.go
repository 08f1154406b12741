package model

import "time"

// Request is an open ask for an item that does not exist in the catalog yet.
// Items fulfilling it carry its id in their requestId column; there is no
// stored fulfillment state.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requesterId"`
	Created     time.Time `json:"created"`
}

// RequestView is the wire form of a request annotated with the items that
// fulfill it.
type RequestView struct {
	Request
	Items []Item `json:"items"`
}
