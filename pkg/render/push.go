package render

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/mywio/guilded-relay/pkg/guilded"
	"github.com/mywio/guilded-relay/pkg/webhook"
)

const commitSubjectLimit = 50

func push(env *webhook.Envelope, e *github.PushEvent, _ Options) result {
	if len(e.Commits) == 0 {
		return suppressed("push without commits")
	}
	noun := "commits"
	if len(e.Commits) == 1 {
		noun = "commit"
	}
	url := e.GetCompare()
	if url == "" {
		url = e.GetHeadCommit().GetURL()
	}
	return result{
		title:       fmt.Sprintf("[%s] %d new %s", shortRef(e.GetRef()), len(e.Commits), noun),
		url:         url,
		description: commitList(e.Commits, guilded.MaxDescription),
	}
}

// shortRef strips the refs/heads/ or refs/tags/ prefix.
func shortRef(ref string) string {
	for _, prefix := range []string{"refs/heads/", "refs/tags/"} {
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix)
		}
	}
	return ref
}

func commitLine(c *github.HeadCommit) string {
	author := c.GetAuthor().GetLogin()
	if author == "" {
		author = c.GetAuthor().GetName()
	}
	return fmt.Sprintf("[`%s`](%s) %s - %s", shortSHA(c.GetID()), c.GetURL(), truncate(firstLine(c.GetMessage()), commitSubjectLimit), author)
}

func moreMarker(n int) string {
	return fmt.Sprintf("…and %d more", n)
}

// commitList joins commit lines without exceeding limit runes. A line is only
// taken while the marker for the commits after it still fits, so whenever
// commits are left out the list ends with "…and N more".
func commitList(commits []*github.HeadCommit, limit int) string {
	var b strings.Builder
	used := 0
	taken := 0
	for i, c := range commits {
		line := commitLine(c)
		cost := runeLen(line)
		if taken > 0 {
			cost++
		}
		reserve := 0
		if rest := len(commits) - i - 1; rest > 0 {
			reserve = 1 + runeLen(moreMarker(rest))
		}
		if used+cost+reserve > limit {
			break
		}
		if taken > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		used += cost
		taken++
	}

	if omitted := len(commits) - taken; omitted > 0 {
		marker := moreMarker(omitted)
		if taken > 0 {
			marker = "\n" + marker
		}
		if used+runeLen(marker) <= limit {
			b.WriteString(marker)
		}
	}
	return b.String()
}
