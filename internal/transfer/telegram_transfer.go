package transfer

type TelegramSendRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text,omitempty"`
	Photo     string `json:"photo,omitempty"`
	Video     string `json:"video,omitempty"`
	Document  string `json:"document,omitempty"`
	Caption   string `json:"caption,omitempty"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type TelegramResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
	Description string `json:"description"`
}
