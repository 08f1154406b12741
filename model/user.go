package model

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserPatch carries the fields of a partial user update. A nil field means
// the caller did not send it, so the stored value is kept.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
