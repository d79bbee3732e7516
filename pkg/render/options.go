package render

import "strings"

// Immersive selects an alternate layout for events that carry user-written
// text such as comments and reviews.
type Immersive string

const (
	ImmersiveNone Immersive = ""
	// ImmersiveChat posts the text as message content under the author's
	// name and avatar, keeping the embeds as context.
	ImmersiveChat Immersive = "chat"
	// ImmersiveEmbeds keeps the bot identity and puts the text in the embed.
	ImmersiveEmbeds Immersive = "embeds"
)

// ParseImmersive maps a query value to a mode. Unknown values disable the mode.
func ParseImmersive(s string) Immersive {
	switch Immersive(strings.ToLower(strings.TrimSpace(s))) {
	case ImmersiveChat:
		return ImmersiveChat
	case ImmersiveEmbeds:
		return ImmersiveEmbeds
	default:
		return ImmersiveNone
	}
}

// Options are the per-request rendering switches.
type Options struct {
	ShowReactions bool
	ShowDrafts    bool
	Immersive     Immersive
}

// DefaultOptions shows reactions and hides drafts.
func DefaultOptions() Options {
	return Options{ShowReactions: true}
}

// Identity is the display name and avatar messages are posted under.
type Identity struct {
	Name      string
	AvatarURL string
}
