package publisher

import (
	"net/http"
	"strings"

	config "github.com/creatorflow/creatorflow-api/configs"
)

// Registry maps platform names to their adapters. Lookups are case
// insensitive and follow aliases, so "Threads" publishes through the
// Instagram adapter.
type Registry struct {
	publishers map[string]Publisher
	aliases    map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		publishers: make(map[string]Publisher),
		aliases:    make(map[string]string),
	}
}

func (r *Registry) Register(p Publisher) {
	r.publishers[strings.ToLower(p.Platform())] = p
}

func (r *Registry) Alias(alias, target string) {
	r.aliases[strings.ToLower(alias)] = strings.ToLower(target)
}

func (r *Registry) Lookup(platform string) (Publisher, bool) {
	name := strings.ToLower(platform)
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	p, ok := r.publishers[name]
	return p, ok
}

func (r *Registry) Platforms() []string {
	names := make([]string, 0, len(r.publishers))
	for name := range r.publishers {
		names = append(names, name)
	}
	return names
}

// NewDefaultRegistry wires every supported platform adapter against the
// given HTTP client.
func NewDefaultRegistry(cfg *config.Config, client *http.Client) *Registry {
	r := NewRegistry()

	r.Register(NewTwitterPublisher(client))
	r.Register(NewLinkedinPublisher(client))
	r.Register(NewFacebookPublisher(client))
	r.Register(NewInstagramPublisher())
	r.Register(NewTiktokPublisher(client))
	r.Register(NewYoutubePublisher(client))
	r.Register(NewTelegramPublisher(client))
	r.Register(NewDiscordPublisher(client))
	r.Register(NewRedditPublisher(client))
	r.Register(NewMastodonPublisher(client, cfg.MastodonInstance))
	r.Register(NewBlueskyPublisher(client))
	r.Register(NewPinterestPublisher(client))
	r.Register(NewMediumPublisher(client))
	r.Register(NewSubstackPublisher(client))
	r.Register(NewTwitchPublisher(client, cfg.Twitch.ClientID))
	r.Register(NewVimeoPublisher(client))
	r.Register(NewBehancePublisher(client))
	r.Register(NewDribbblePublisher(client))

	r.Alias("threads", "instagram")
	r.Alias("messenger", "facebook")

	return r
}
