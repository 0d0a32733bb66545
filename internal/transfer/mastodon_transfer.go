package transfer

type MastodonMediaResponse struct {
	ID      string `json:"id"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MastodonStatusRequest struct {
	Status     string   `json:"status"`
	Visibility string   `json:"visibility"`
	MediaIDs   []string `json:"media_ids,omitempty"`
}

type MastodonStatusResponse struct {
	ID      string `json:"id"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
