package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

const discordEmbedColor = 0x5865F2

type discordPublisher struct {
	client  *http.Client
	baseURL string
}

func NewDiscordPublisher(client *http.Client) Publisher {
	return &discordPublisher{
		client:  client,
		baseURL: "https://discord.com/api/v10",
	}
}

func (p *discordPublisher) Platform() string {
	return "discord"
}

func (p *discordPublisher) Publish(ctx context.Context, accessToken string, post *models.Post, account *models.SocialAccount, mediaURLs []string) transfer.PlatformResult {
	channelID, err := p.findTextChannel(ctx, accessToken)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}

	message := transfer.DiscordMessageRequest{Content: post.Content}
	if len(mediaURLs) > 0 {
		message.Content = ""
		message.Embeds = []transfer.DiscordEmbed{{
			Title:       "CreatorFlow Post",
			Description: post.Content,
			Image:       &transfer.DiscordEmbedImage{URL: mediaURLs[0]},
			Color:       discordEmbedColor,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}}
	}

	req, err := newJSONRequest(ctx, http.MethodPost, p.baseURL+"/channels/"+channelID+"/messages", message)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	req.Header.Set("Authorization", "Bot "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(p.Platform(), err.Error())
	}
	defer resp.Body.Close()

	var msgResp transfer.DiscordMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return failure(p.Platform(), err.Error())
	}
	if msgResp.ID == "" {
		msg := msgResp.Message
		if msg == "" {
			msg = "message send failed with status " + resp.Status
		}
		return failure(p.Platform(), msg)
	}

	return success(p.Platform(), msgResp.ID)
}

// findTextChannel picks the first text channel of the user's first guild.
// Guild listing uses the user's OAuth token, channel listing and posting use
// the bot token.
func (p *discordPublisher) findTextChannel(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/users/@me/guilds", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var guilds []transfer.DiscordGuild
	if err := json.NewDecoder(resp.Body).Decode(&guilds); err != nil {
		return "", err
	}
	if len(guilds) == 0 {
		return "", errors.New("No Discord servers found. Please join a server first.")
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/guilds/"+guilds[0].ID+"/channels", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bot "+accessToken)

	chResp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer chResp.Body.Close()

	var channels []transfer.DiscordChannel
	if err := json.NewDecoder(chResp.Body).Decode(&channels); err != nil {
		return "", err
	}
	for _, ch := range channels {
		if ch.Type == 0 {
			return ch.ID, nil
		}
	}

	return "", errors.New("No text channels found in the server.")
}
