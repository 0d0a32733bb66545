package transfer

type VimeoUpload struct {
	Approach string `json:"approach"`
	Link     string `json:"link"`
}

type VimeoPrivacy struct {
	View string `json:"view"`
}

type VimeoVideoRequest struct {
	Upload      VimeoUpload  `json:"upload"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Privacy     VimeoPrivacy `json:"privacy"`
}

type VimeoVideoResponse struct {
	URI   string `json:"uri"`
	Error string `json:"error"`
}
