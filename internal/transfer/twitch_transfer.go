package transfer

type TwitchUsersResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Login string `json:"login"`
	} `json:"data"`
	Message string `json:"message"`
}

type TwitchStreamsResponse struct {
	Data []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"data"`
}

type TwitchClipRequest struct {
	BroadcasterID string `json:"broadcaster_id"`
	HasDelay      bool   `json:"has_delay"`
}

type TwitchClipsResponse struct {
	Data []struct {
		ID      string `json:"id"`
		EditURL string `json:"edit_url"`
	} `json:"data"`
	Message string `json:"message"`
}

type TwitchChannelUpdateRequest struct {
	Title string `json:"title"`
}
