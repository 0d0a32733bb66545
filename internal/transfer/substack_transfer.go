package transfer

type SubstackPublication struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SubstackPostRequest struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Body        string `json:"body"`
	IsDraft     bool   `json:"is_draft"`
	SendEmail   bool   `json:"send_email"`
	PublishedAt string `json:"published_at"`
}

type SubstackPostResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
