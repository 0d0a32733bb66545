package transfer

type TwitterMediaUploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

type TweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type TweetRequest struct {
	Text  string      `json:"text"`
	Media *TweetMedia `json:"media,omitempty"`
}

type TweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Detail string `json:"detail"`
	Title  string `json:"title"`
}
