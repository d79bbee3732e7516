package render

import (
	"github.com/mywio/guilded-relay/pkg/webhook"
)

// rule renders one event type. Rules are pure.
type rule func(env *webhook.Envelope, opts Options) result

// on adapts a rule written against the typed payload E.
func on[E any](fn func(env *webhook.Envelope, e E, opts Options) result) rule {
	return func(env *webhook.Envelope, opts Options) result {
		e, ok := webhook.As[E](env)
		if !ok {
			return suppressed("payload does not match " + env.Type.String())
		}
		return fn(env, e, opts)
	}
}

// never suppresses an accepted event type that has no message.
func never(reason string) rule {
	return func(*webhook.Envelope, Options) result {
		return suppressed(reason)
	}
}

func defaultRules() map[webhook.EventType]rule {
	return map[webhook.EventType]rule{
		webhook.EventCheckRun:                 never("check runs are not relayed"),
		webhook.EventCommitComment:            on(commitComment),
		webhook.EventCreate:                   on(createRef),
		webhook.EventDelete:                   on(deleteRef),
		webhook.EventFork:                     on(fork),
		webhook.EventIssueComment:             on(issueComment),
		webhook.EventIssues:                   on(issues),
		webhook.EventMeta:                     on(meta),
		webhook.EventPing:                     on(ping),
		webhook.EventPublic:                   never("visibility changes are not relayed"),
		webhook.EventPullRequest:              on(pullRequest),
		webhook.EventPullRequestReview:        on(pullRequestReview),
		webhook.EventPullRequestReviewComment: on(pullRequestReviewComment),
		webhook.EventPullRequestReviewThread:  never("review threads are not relayed"),
		webhook.EventPush:                     on(push),
		webhook.EventRelease:                  on(release),
		webhook.EventRepository:               on(repository),
		webhook.EventStar:                     on(star),
		webhook.EventStatus:                   on(status),
		webhook.EventWatch:                    never("watch events duplicate stars"),
	}
}
