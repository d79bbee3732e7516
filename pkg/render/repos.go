package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/mywio/guilded-relay/pkg/guilded"
	"github.com/mywio/guilded-relay/pkg/webhook"
)

func refKind(refType string) string {
	if refType == "tag" {
		return "Tag"
	}
	return "Branch"
}

func createRef(env *webhook.Envelope, e *github.CreateEvent, _ Options) result {
	url := fmt.Sprintf("%s/tree/%s", repoURL(env.Repo), e.GetRef())
	if e.GetRefType() == "tag" {
		url = fmt.Sprintf("%s/releases/tag/%s", repoURL(env.Repo), e.GetRef())
	}
	return result{
		title: fmt.Sprintf("%s created: %s", refKind(e.GetRefType()), e.GetRef()),
		url:   url,
		color: ColorSuccess,
	}
}

func deleteRef(_ *webhook.Envelope, e *github.DeleteEvent, _ Options) result {
	return result{
		title: fmt.Sprintf("%s deleted: %s", refKind(e.GetRefType()), e.GetRef()),
		color: ColorFailure,
	}
}

func fork(_ *webhook.Envelope, e *github.ForkEvent, _ Options) result {
	forkee := e.GetForkee()
	url := forkee.GetHTMLURL()
	if url == "" {
		url = repoURL(forkee)
	}
	return result{
		title: "Forked to " + forkee.GetFullName(),
		url:   url,
	}
}

func meta(_ *webhook.Envelope, e *github.MetaEvent, _ Options) result {
	return result{
		title:  "Webhook deleted",
		color:  ColorFailure,
		fields: []guilded.EmbedField{{Name: "Hook", Value: strconv.FormatInt(e.GetHookID(), 10), Inline: true}},
	}
}

func ping(_ *webhook.Envelope, e *github.PingEvent, _ Options) result {
	return result{
		title:       "Ping",
		description: e.GetZen(),
	}
}

func release(_ *webhook.Envelope, e *github.ReleaseEvent, opts Options) result {
	rel := e.GetRelease()
	if rel.GetDraft() && !opts.ShowDrafts {
		return suppressed("draft release")
	}
	kind := "Release"
	if rel.GetDraft() {
		kind = "Draft"
	}
	name := rel.GetName()
	if name == "" {
		name = rel.GetTagName()
	}

	res := result{
		title:  fmt.Sprintf("%s %s - %s", kind, e.GetAction(), name),
		url:    rel.GetHTMLURL(),
		fields: []guilded.EmbedField{{Name: "Tag", Value: rel.GetTagName(), Inline: true}},
	}
	switch e.GetAction() {
	case "created", "published", "released":
		res.color = ColorSuccess
		if rel.GetDraft() {
			res.color = ColorPending
		}
		res.description = rel.GetBody()
	case "deleted", "unpublished":
		res.color = ColorFailure
	}
	return res
}

func repository(env *webhook.Envelope, e *github.RepositoryEvent, _ Options) result {
	repo := e.GetRepo()
	if repo == nil {
		repo = env.Repo
	}
	res := result{title: "Repository " + e.GetAction()}
	if e.GetOrg() != nil || strings.EqualFold(repo.GetOwner().GetType(), "Organization") || e.GetAction() == "created" {
		res.title += ": " + repo.GetFullName()
	}
	switch e.GetAction() {
	case "created":
		res.color = ColorSuccess
	case "deleted":
		res.color = ColorFailure
	}
	if e.GetAction() != "deleted" {
		res.url = repoURL(repo)
	}
	return res
}

func star(env *webhook.Envelope, e *github.StarEvent, _ Options) result {
	res := result{
		url:    repoURL(env.Repo),
		fields: []guilded.EmbedField{{Name: "Stars", Value: strconv.Itoa(env.Repo.GetStargazersCount()), Inline: true}},
	}
	if e.GetAction() == "deleted" {
		res.title = "Star removed"
		res.color = ColorFailure
	} else {
		res.title = "Star added"
		res.color = ColorGold
	}
	return res
}

func status(_ *webhook.Envelope, e *github.StatusEvent, _ Options) result {
	var color int
	switch e.GetState() {
	case "success":
		color = ColorSuccess
	case "failure", "error":
		color = ColorFailure
	case "pending":
		color = ColorPending
	default:
		return suppressed("status " + e.GetState())
	}
	return result{
		title:       fmt.Sprintf("Status updated for commit %s: %s", shortSHA(e.GetSHA()), e.GetState()),
		url:         e.GetTargetURL(),
		color:       color,
		description: e.GetDescription(),
		fields:      []guilded.EmbedField{{Name: "Context", Value: e.GetContext(), Inline: true}},
	}
}
