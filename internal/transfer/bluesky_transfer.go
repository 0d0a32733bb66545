package transfer

import "encoding/json"

type BlueskySessionRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type BlueskySessionResponse struct {
	DID       string `json:"did"`
	AccessJwt string `json:"accessJwt"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

type BlueskyBlobResponse struct {
	Blob    json.RawMessage `json:"blob"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type BlueskyImage struct {
	Alt   string          `json:"alt"`
	Image json.RawMessage `json:"image"`
}

type BlueskyEmbed struct {
	Type   string         `json:"$type"`
	Images []BlueskyImage `json:"images"`
}

type BlueskyPostRecord struct {
	Text      string        `json:"text"`
	CreatedAt string        `json:"createdAt"`
	Embed     *BlueskyEmbed `json:"embed,omitempty"`
}

type BlueskyCreateRecordRequest struct {
	Repo       string            `json:"repo"`
	Collection string            `json:"collection"`
	Record     BlueskyPostRecord `json:"record"`
}

type BlueskyCreateRecordResponse struct {
	URI     string `json:"uri"`
	CID     string `json:"cid"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
