package transfer

type DribbbleShotRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Published   bool   `json:"published"`
}

type DribbbleShotResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
