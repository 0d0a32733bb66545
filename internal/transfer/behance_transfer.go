package transfer

type BehanceUserResponse struct {
	User struct {
		ID int64 `json:"id"`
	} `json:"user"`
}

type BehanceModule struct {
	Type  string `json:"type"`
	Src   string `json:"src"`
	Title string `json:"title"`
}

type BehanceProjectRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Modules     []BehanceModule `json:"modules"`
}

type BehanceProjectResponse struct {
	Project struct {
		ID int64 `json:"id"`
	} `json:"project"`
	Messages []string `json:"messages"`
}
