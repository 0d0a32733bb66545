package transfer

// GraphError is the Facebook Graph API error envelope, shared by the
// Facebook and Instagram surfaces.
type GraphError struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

type GraphPhotoUploadResponse struct {
	ID string `json:"id"`
	GraphError
}

type GraphAttachedMedia struct {
	MediaFbid string `json:"media_fbid"`
}

type GraphFeedRequest struct {
	Message       string               `json:"message"`
	AttachedMedia []GraphAttachedMedia `json:"attached_media,omitempty"`
	AccessToken   string               `json:"access_token"`
}

type GraphFeedResponse struct {
	ID string `json:"id"`
	GraphError
}
