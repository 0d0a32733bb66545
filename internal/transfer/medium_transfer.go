package transfer

type MediumUserResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type MediumPostRequest struct {
	Title         string `json:"title"`
	ContentFormat string `json:"contentFormat"`
	Content       string `json:"content"`
	PublishStatus string `json:"publishStatus"`
}

type MediumPostResponse struct {
	Data struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Message string `json:"message"`
}
