package transfer

type LinkedinRegisterUploadRequest struct {
	RegisterUploadRequest struct {
		Owner                string                        `json:"owner"`
		Recipes              []string                      `json:"recipes"`
		ServiceRelationships []LinkedinServiceRelationship `json:"serviceRelationships"`
	} `json:"registerUploadRequest"`
}

type LinkedinServiceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

type LinkedinRegisterUploadResponse struct {
	Value struct {
		Asset           string `json:"asset"`
		UploadMechanism struct {
			MediaUploadHTTPRequest struct {
				UploadURL string `json:"uploadUrl"`
			} `json:"com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"`
		} `json:"uploadMechanism"`
	} `json:"value"`
	Message string `json:"message"`
}

type LinkedinShareCommentary struct {
	Text string `json:"text"`
}

type LinkedinShareMedia struct {
	Status string `json:"status"`
	Media  string `json:"media"`
}

type LinkedinShareContent struct {
	ShareCommentary    LinkedinShareCommentary `json:"shareCommentary"`
	ShareMediaCategory string                  `json:"shareMediaCategory"`
	Media              []LinkedinShareMedia    `json:"media,omitempty"`
}

type LinkedinUGCPostRequest struct {
	Author          string                          `json:"author"`
	LifecycleState  string                          `json:"lifecycleState"`
	SpecificContent map[string]LinkedinShareContent `json:"specificContent"`
	Visibility      map[string]string               `json:"visibility"`
}

type LinkedinUGCPostResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
