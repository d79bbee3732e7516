package render

import (
	"github.com/google/go-github/v57/github"
	"github.com/mywio/guilded-relay/pkg/guilded"
	"github.com/mywio/guilded-relay/pkg/webhook"
)

// result is what an event rule contributes to the message. The renderer owns
// the common parts: author, footer, limits, reactions and immersive layout.
type result struct {
	suppress string

	title       string
	url         string
	description string
	color       int
	fields      []guilded.EmbedField

	// author overrides the event sender, e.g. with the comment author.
	author    *github.User
	reactions *github.Reactions
	immersive *immersive
}

// immersive is user-written text that can be promoted in an immersive mode.
type immersive struct {
	title  string
	url    string
	body   string
	author *github.User
}

func suppressed(reason string) result {
	return result{suppress: reason}
}

// Renderer turns validated webhooks into Guilded messages. It holds no
// per-request state and is safe for concurrent use.
type Renderer struct {
	identity Identity
	rules    map[webhook.EventType]rule
}

// New returns a renderer posting as identity unless a message is rendered
// under its author.
func New(identity Identity) *Renderer {
	return &Renderer{identity: identity, rules: defaultRules()}
}

// Render never fails: every envelope yields Send or Suppress.
func (r *Renderer) Render(env *webhook.Envelope, opts Options) Decision {
	if env == nil {
		return Suppress("empty envelope")
	}
	apply, ok := r.rules[env.Type]
	if !ok {
		return Suppress("no rule for event type " + env.Type.String())
	}
	res := apply(env, opts)
	if res.suppress != "" {
		return Suppress(res.suppress)
	}

	embed := guilded.Embed{Color: ColorNeutral}
	author := env.Sender
	if res.author != nil {
		author = res.author
	}
	embed.Author = embedAuthor(author)
	if env.Repo != nil && env.Repo.GetFullName() != "" {
		embed.Footer = &guilded.EmbedFooter{Text: truncate(env.Repo.GetFullName(), guilded.MaxFooter)}
	}
	if res.color != 0 {
		embed.Color = res.color
	}
	embed.Title = truncate(res.title, guilded.MaxTitle)
	embed.URL = res.url
	embed.Description = truncate(res.description, guilded.MaxDescription)
	for _, f := range res.fields {
		if f.Value == "" {
			continue
		}
		embed.Fields = append(embed.Fields, guilded.EmbedField{
			Name:   truncate(f.Name, guilded.MaxFieldName),
			Value:  truncate(f.Value, guilded.MaxFieldValue),
			Inline: f.Inline,
		})
	}

	msg := guilded.Message{
		Username:  r.identity.Name,
		AvatarURL: r.identity.AvatarURL,
	}

	if im := res.immersive; im != nil && opts.Immersive != ImmersiveNone {
		body := rewriteMentions(im.body)
		if im.title != "" {
			embed.Title = truncate(im.title, guilded.MaxTitle)
		}
		if im.url != "" {
			embed.URL = im.url
		}
		switch opts.Immersive {
		case ImmersiveChat:
			msg.Content = truncate(body, guilded.MaxContent)
			embed.Description = ""
			if im.author != nil {
				msg.Username = im.author.GetLogin()
				msg.AvatarURL = avatarURL(im.author)
			}
		case ImmersiveEmbeds:
			embed.Description = truncate(body, guilded.MaxDescription)
		}
	}

	msg.Embeds = []guilded.Embed{embed}
	if opts.ShowReactions {
		if line := reactionsLine(res.reactions); line != "" {
			msg.Embeds = append(msg.Embeds, guilded.Embed{Description: line, Color: embed.Color})
		}
	}
	return Send(msg)
}
