package transfer

type PinterestBoard struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PinterestBoardsResponse struct {
	Items   []PinterestBoard `json:"items"`
	Message string           `json:"message"`
}

type PinterestMediaSource struct {
	SourceType string `json:"source_type"`
	URL        string `json:"url"`
}

type PinterestPinRequest struct {
	BoardID     string               `json:"board_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	MediaSource PinterestMediaSource `json:"media_source"`
}

type PinterestPinResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
