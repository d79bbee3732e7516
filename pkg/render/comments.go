package render

import (
	"fmt"

	"github.com/google/go-github/v57/github"
	"github.com/mywio/guilded-relay/pkg/webhook"
)

func commitComment(env *webhook.Envelope, e *github.CommitCommentEvent, _ Options) result {
	c := e.GetComment()
	url := c.GetHTMLURL()
	if url == "" {
		url = fmt.Sprintf("%s/commit/%s#commitcomment-%d", repoURL(env.Repo), c.GetCommitID(), c.GetID())
	}
	return result{
		title:       "Commit comment created",
		url:         url,
		description: c.GetBody(),
		author:      c.GetUser(),
		reactions:   c.GetReactions(),
		fields:      pathField(c.GetPath()),
		immersive: &immersive{
			title:  "Commit " + shortSHA(c.GetCommitID()),
			url:    url,
			body:   c.GetBody(),
			author: c.GetUser(),
		},
	}
}

func issueComment(env *webhook.Envelope, e *github.IssueCommentEvent, _ Options) result {
	issue, c := e.GetIssue(), e.GetComment()
	n := issue.GetNumber()

	noun, segment := "issue", "issues"
	if issue.IsPullRequest() {
		noun, segment = "pull request", "pull"
	}
	url := fmt.Sprintf("%s/%s/%d#issuecomment-%d", repoURL(env.Repo), segment, n, c.GetID())

	return commentResult(e.GetAction(), result{
		title:       fmt.Sprintf("Comment %s on %s #%d", e.GetAction(), noun, n),
		url:         url,
		description: c.GetBody(),
		author:      c.GetUser(),
		reactions:   c.GetReactions(),
		immersive: &immersive{
			title:  fmt.Sprintf("#%d %s", n, issue.GetTitle()),
			url:    url,
			body:   c.GetBody(),
			author: c.GetUser(),
		},
	})
}

func pullRequestReviewComment(env *webhook.Envelope, e *github.PullRequestReviewCommentEvent, _ Options) result {
	pr, c := e.GetPullRequest(), e.GetComment()
	n := pr.GetNumber()

	url := c.GetHTMLURL()
	if url == "" {
		url = fmt.Sprintf("%s/pull/%d#discussion_r%d", repoURL(env.Repo), n, c.GetID())
	}

	return commentResult(e.GetAction(), result{
		title:       fmt.Sprintf("Comment %s on pull request #%d", e.GetAction(), n),
		url:         url,
		description: c.GetBody(),
		author:      c.GetUser(),
		reactions:   c.GetReactions(),
		fields:      pathField(c.GetPath()),
		immersive: &immersive{
			title:  fmt.Sprintf("#%d %s", n, pr.GetTitle()),
			url:    url,
			body:   c.GetBody(),
			author: c.GetUser(),
		},
	})
}

// commentResult colors a comment by action. Edits are not relayed.
func commentResult(action string, res result) result {
	switch action {
	case "created":
		res.color = ColorSuccess
	case "deleted":
		res.color = ColorFailure
	default:
		return suppressed("comment " + action)
	}
	return res
}
