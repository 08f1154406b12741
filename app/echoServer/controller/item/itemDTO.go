package item

type CreateItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type AddCommentReq struct {
	Text string `json:"text"`
}
