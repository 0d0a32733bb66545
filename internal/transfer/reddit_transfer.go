package transfer

type RedditSubmitResponse struct {
	JSON struct {
		Errors [][]string `json:"errors"`
		Data   struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"data"`
	} `json:"json"`
}
