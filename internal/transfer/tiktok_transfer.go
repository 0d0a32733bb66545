package transfer

type TiktokError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	LogID   string `json:"log_id"`
}

type TiktokPostInfo struct {
	Title                 string `json:"title"`
	PrivacyLevel          string `json:"privacy_level"`
	DisableDuet           bool   `json:"disable_duet"`
	DisableComment        bool   `json:"disable_comment"`
	DisableStitch         bool   `json:"disable_stitch"`
	VideoCoverTimestampMs int    `json:"video_cover_timestamp_ms"`
}

type TiktokSourceInfo struct {
	Source          string `json:"source"`
	VideoSize       int64  `json:"video_size"`
	ChunkSize       int64  `json:"chunk_size"`
	TotalChunkCount int    `json:"total_chunk_count"`
}

type TiktokUploadInitRequest struct {
	PostInfo   TiktokPostInfo   `json:"post_info"`
	SourceInfo TiktokSourceInfo `json:"source_info"`
}

type TiktokUploadInitResponse struct {
	Data struct {
		PublishID string `json:"publish_id"`
		UploadURL string `json:"upload_url"`
	} `json:"data"`
	Error TiktokError `json:"error"`
}

type TiktokCreateRequest struct {
	PublishID string         `json:"publish_id"`
	PostInfo  TiktokPostInfo `json:"post_info"`
}

type TiktokCreateResponse struct {
	Data struct {
		ShareID string `json:"share_id"`
	} `json:"data"`
	Error TiktokError `json:"error"`
}
