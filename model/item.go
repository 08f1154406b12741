package model

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemPatch carries the fields of a partial item update. A nil field means
// the caller did not send it, so the stored value is kept.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemBookingView is the short booking form attached to an item detail when
// the viewer owns the item.
type ItemBookingView struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemView is the wire form of an item: the item itself, its comments, and
// (for the owner only) the most recent past and nearest future approved
// bookings.
type ItemView struct {
	Item
	LastBooking *ItemBookingView `json:"lastBooking,omitempty"`
	NextBooking *ItemBookingView `json:"nextBooking,omitempty"`
	Comments    []Comment        `json:"comments"`
}
