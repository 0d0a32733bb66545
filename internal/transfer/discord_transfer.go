package transfer

type DiscordGuild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DiscordChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

type DiscordEmbedImage struct {
	URL string `json:"url"`
}

type DiscordEmbed struct {
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Image       *DiscordEmbedImage `json:"image,omitempty"`
	Color       int                `json:"color,omitempty"`
	Timestamp   string             `json:"timestamp,omitempty"`
}

type DiscordMessageRequest struct {
	Content string         `json:"content"`
	Embeds  []DiscordEmbed `json:"embeds,omitempty"`
}

type DiscordMessageResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
