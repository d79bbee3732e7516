package render

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/mywio/guilded-relay/pkg/guilded"
	"github.com/mywio/guilded-relay/pkg/webhook"
)

func issues(env *webhook.Envelope, e *github.IssuesEvent, _ Options) result {
	issue := e.GetIssue()
	n := issue.GetNumber()
	res := result{
		title:     fmt.Sprintf("Issue %s (#%d) - %s", e.GetAction(), n, issue.GetTitle()),
		url:       fmt.Sprintf("%s/issues/%d", repoURL(env.Repo), n),
		reactions: issue.GetReactions(),
	}

	switch e.GetAction() {
	case "opened":
		res.color = ColorSuccess
		res.description = issue.GetBody()
		res.fields = labelsField(issue.Labels)
	case "closed":
		res.color = ColorFailure
		res.description = issue.GetBody()
	case "locked":
		res.color = ColorFailure
		if reason := issue.GetActiveLockReason(); reason != "" {
			res.title = fmt.Sprintf("Issue #%d locked as %s", n, reason)
		}
	}
	return res
}

func labelsField(labels []*github.Label) []guilded.EmbedField {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.GetName() != "" {
			names = append(names, l.GetName())
		}
	}
	if len(names) == 0 {
		return nil
	}
	return []guilded.EmbedField{{Name: "Labels", Value: strings.Join(names, ", "), Inline: true}}
}

func pathField(path string) []guilded.EmbedField {
	if path == "" {
		return nil
	}
	return []guilded.EmbedField{{Name: "File", Value: "`" + path + "`", Inline: true}}
}
