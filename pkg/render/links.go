package render

import (
	"fmt"

	"github.com/google/go-github/v57/github"
	"github.com/mywio/guilded-relay/pkg/guilded"
)

func avatarURL(u *github.User) string {
	if u.GetAvatarURL() != "" {
		return u.GetAvatarURL()
	}
	return fmt.Sprintf("https://avatars.githubusercontent.com/u/%d?v=4", u.GetID())
}

func profileURL(u *github.User) string {
	if u.GetHTMLURL() != "" {
		return u.GetHTMLURL()
	}
	return "https://github.com/" + u.GetLogin()
}

func embedAuthor(u *github.User) *guilded.EmbedAuthor {
	if u == nil || u.GetLogin() == "" {
		return nil
	}
	return &guilded.EmbedAuthor{
		Name:    u.GetLogin(),
		URL:     profileURL(u),
		IconURL: avatarURL(u),
	}
}

func repoURL(r *github.Repository) string {
	return "https://github.com/" + r.GetFullName()
}
