package gateway

import "time"

// Gateway DTOs only check shape; the server re-derives everything from the
// raw body it receives.

type bookItemReq struct {
	ItemID int64      `json:"itemId" validate:"required,gt=0"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type createItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

type createUserReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type commentReq struct {
	Text string `json:"text" validate:"required"`
}

type createRequestReq struct {
	Description string `json:"description" validate:"required"`
}
