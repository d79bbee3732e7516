package render

import (
	"strconv"
	"strings"

	"github.com/google/go-github/v57/github"
)

type reactionKind struct {
	emoji string
	count func(*github.Reactions) int
}

// Display order of reaction kinds.
var reactionKinds = []reactionKind{
	{"👍", (*github.Reactions).GetPlusOne},
	{"👎", (*github.Reactions).GetMinusOne},
	{"😕", (*github.Reactions).GetConfused},
	{"👀", (*github.Reactions).GetEyes},
	{"❤️", (*github.Reactions).GetHeart},
	{"🎉", (*github.Reactions).GetHooray},
	{"😆", (*github.Reactions).GetLaugh},
	{"🚀", (*github.Reactions).GetRocket},
}

// reactionsLine renders nonzero counts as "👍 3 • ❤️ 1". It is empty when
// there is nothing to show.
func reactionsLine(r *github.Reactions) string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(reactionKinds))
	for _, k := range reactionKinds {
		if n := k.count(r); n > 0 {
			parts = append(parts, k.emoji+" "+strconv.Itoa(n))
		}
	}
	return strings.Join(parts, " • ")
}
