package render

import (
	"fmt"

	"github.com/google/go-github/v57/github"
	"github.com/mywio/guilded-relay/pkg/guilded"
	"github.com/mywio/guilded-relay/pkg/webhook"
)

func pullRequest(env *webhook.Envelope, e *github.PullRequestEvent, _ Options) result {
	pr := e.GetPullRequest()
	n := e.GetNumber()
	if n == 0 {
		n = pr.GetNumber()
	}
	url := pr.GetHTMLURL()
	if url == "" {
		url = fmt.Sprintf("%s/pull/%d", repoURL(env.Repo), n)
	}

	res := result{
		title: fmt.Sprintf("Pull request #%d %s - %s", n, e.GetAction(), pr.GetTitle()),
		url:   url,
	}
	switch e.GetAction() {
	case "opened":
		res.color = ColorSuccess
		res.description = pr.GetBody()
		res.fields = []guilded.EmbedField{{
			Name:   "Branch",
			Value:  fmt.Sprintf("%s → %s", pr.GetHead().GetRef(), pr.GetBase().GetRef()),
			Inline: true,
		}}
	case "closed", "locked":
		res.color = ColorFailure
	}
	return res
}

func pullRequestReview(env *webhook.Envelope, e *github.PullRequestReviewEvent, _ Options) result {
	if e.GetAction() != "submitted" {
		return suppressed("review " + e.GetAction())
	}
	review, pr := e.GetReview(), e.GetPullRequest()
	n := pr.GetNumber()
	url := review.GetHTMLURL()
	if url == "" {
		url = fmt.Sprintf("%s/pull/%d", repoURL(env.Repo), n)
	}

	res := result{
		title:       fmt.Sprintf("Review submitted on pull request #%d", n),
		url:         url,
		color:       ColorSuccess,
		description: review.GetBody(),
		author:      review.GetUser(),
		fields:      []guilded.EmbedField{{Name: "State", Value: review.GetState(), Inline: true}},
	}
	if review.GetBody() != "" {
		res.immersive = &immersive{
			title:  fmt.Sprintf("#%d %s", n, pr.GetTitle()),
			url:    url,
			body:   review.GetBody(),
			author: review.GetUser(),
		}
	}
	return res
}
